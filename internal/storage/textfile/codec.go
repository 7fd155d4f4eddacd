// Package textfile stores the roster in a line-oriented text file.
//
// FILE LAYOUT:
// ────────────
// The first line is the informational nextId counter. Every record
// then takes exactly five lines, in store order:
//
//	1001
//	CS101a
//	Asha Rao
//	20
//	Computer Science
//	8.5
//
// Nothing is escaped. A name or course containing a newline shifts
// every following line and corrupts the file on the next load; this is
// a constraint of the format.
package textfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/aanand-mishra/roster/internal/storage"
	"github.com/aanand-mishra/roster/internal/types"
)

// linesPerRecord is the size of one record group.
const linesPerRecord = 5

var (
	// ErrMalformed is returned when a numeric line cannot be parsed or
	// a gpa is not a finite number. Decode still returns every record
	// read before the bad line.
	ErrMalformed = errors.New("malformed roster file")

	// ErrTruncated is returned when the input ends in the middle of a
	// record group. Decode still returns every complete record.
	ErrTruncated = errors.New("roster file ends with an incomplete record")
)

// Encode writes snap to w: the counter line, then five lines per record.
func Encode(w io.Writer, snap storage.Snapshot) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%d\n", snap.NextID)
	for _, s := range snap.Students {
		fmt.Fprintf(bw, "%s\n%s\n%d\n%s\n%s\n",
			s.ID,
			s.Name,
			s.Age,
			s.Course,
			strconv.FormatFloat(s.GPA, 'f', -1, 64),
		)
	}

	// bufio.Writer keeps the first write error and returns it here.
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("textfile.Encode: %w", err)
	}
	return nil
}

// Decode reads a snapshot written by Encode.
//
// Empty input yields storage.Empty(). A trailing group with fewer than
// five lines is dropped: Decode returns the complete records together
// with an error wrapping ErrTruncated so callers may keep them. A bad
// age or gpa line stops decoding the same way, with ErrMalformed.
func Decode(r io.Reader) (storage.Snapshot, error) {
	lines, err := readLines(r)
	if err != nil {
		return storage.Empty(), fmt.Errorf("textfile.Decode: read: %w", err)
	}
	if len(lines) == 0 {
		return storage.Empty(), nil
	}

	snap := storage.Empty()
	snap.NextID, err = strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return storage.Empty(), fmt.Errorf("textfile.Decode: line 1: counter %q: %w", lines[0], ErrMalformed)
	}

	body := lines[1:]
	for start := 0; start < len(body); start += linesPerRecord {
		if start+linesPerRecord > len(body) {
			return snap, fmt.Errorf("textfile.Decode: %d trailing line(s) after record %d: %w",
				len(body)-start, len(snap.Students), ErrTruncated)
		}

		// +2: one for the counter line, one for 1-based numbering.
		s, err := decodeRecord(body[start:start+linesPerRecord], start+2)
		if err != nil {
			return snap, err
		}
		snap.Students = append(snap.Students, s)
	}

	return snap, nil
}

// decodeRecord builds one Student from a five-line group.
// first is the file line number of group[0], used in error messages.
func decodeRecord(group []string, first int) (types.Student, error) {
	age, err := strconv.Atoi(strings.TrimSpace(group[2]))
	if err != nil {
		return types.Student{}, fmt.Errorf("textfile.Decode: line %d: age %q: %w", first+2, group[2], ErrMalformed)
	}

	gpa, err := strconv.ParseFloat(strings.TrimSpace(group[4]), 64)
	if err != nil || math.IsNaN(gpa) || math.IsInf(gpa, 0) {
		return types.Student{}, fmt.Errorf("textfile.Decode: line %d: gpa %q: %w", first+4, group[4], ErrMalformed)
	}

	return types.Student{
		ID:     strings.TrimSpace(group[0]),
		Name:   group[1],
		Age:    age,
		Course: group[3],
		GPA:    gpa,
	}, nil
}

// readLines splits r on newlines. A final line without a trailing
// newline still counts; a trailing "\r" is stripped so files edited on
// Windows load the same way.
func readLines(r io.Reader) ([]string, error) {
	var lines []string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
