// Package roster owns the ordered collection of student records.
//
// The Store is the only place records are created, changed, or removed.
// Every successful mutation is written through to the storage backend
// before the method returns — no batching, no background flush.
//
// If that write fails the in-memory change is kept and the returned
// error wraps ErrPersistence; memory and disk stay out of sync until
// the next successful write.
package roster

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aanand-mishra/roster/internal/storage"
	"github.com/aanand-mishra/roster/internal/types"
	"github.com/aanand-mishra/roster/internal/validation"
)

var (
	// ErrDuplicateID is returned by Add when the id is already taken.
	ErrDuplicateID = errors.New("student id already exists")

	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("student not found")

	// ErrUnknownField is returned by UpdateField for a field that
	// cannot be changed.
	ErrUnknownField = errors.New("unknown field")

	// ErrPersistence marks a failed write-through. The in-memory
	// mutation that triggered it has already been applied.
	ErrPersistence = errors.New("persistence write failed")
)

// Store is the in-memory roster. It is not safe for concurrent use;
// the application is single-threaded.
type Store struct {
	backend  storage.Storage
	log      *slog.Logger
	nextID   int
	students []types.Student
}

// New returns an empty Store bound to backend. Call Load to read the
// persisted roster.
func New(backend storage.Storage, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		backend:  backend,
		log:      log,
		nextID:   storage.DefaultNextID,
		students: make([]types.Student, 0),
	}
}

// Load replaces the in-memory roster with the backend's contents.
//
// Load never fails the caller: an unreadable or corrupt backend is
// logged and the store starts empty. If the backend returned complete
// records alongside its error (a truncated text file, or one with a bad
// line part way through) those are kept, so the next save does not
// discard them.
func (s *Store) Load() {
	snap, err := s.backend.Load()
	if err != nil {
		s.log.Warn("could not load roster, continuing with what was readable",
			slog.String("error", err.Error()),
			slog.Int("records", len(snap.Students)))
	}

	s.nextID = snap.NextID
	if s.nextID == 0 {
		s.nextID = storage.DefaultNextID
	}

	// A damaged file may repeat an id; keep the first so the
	// uniqueness invariant holds from the start.
	s.students = make([]types.Student, 0, len(snap.Students))
	for _, st := range snap.Students {
		if _, dup := s.FindByID(st.ID); dup {
			s.log.Warn("dropping duplicate id from stored roster", slog.String("id", st.ID))
			continue
		}
		s.students = append(s.students, st)
	}

	s.log.Debug("roster loaded", slog.Int("records", len(s.students)))
}

// Add validates st and appends it to the roster.
func (s *Store) Add(st types.Student) error {
	if err := validation.Student(st); err != nil {
		return fmt.Errorf("Add: %w", err)
	}
	if _, exists := s.FindByID(st.ID); exists {
		return fmt.Errorf("Add: %w: %q", ErrDuplicateID, st.ID)
	}

	s.students = append(s.students, st)
	s.log.Info("student added", slog.String("id", st.ID))

	return s.save("Add")
}

// FindByID returns the index of the record with id.
// It is a linear scan; rosters are small.
func (s *Store) FindByID(id string) (int, bool) {
	for i := range s.students {
		if s.students[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// Get returns a copy of the record with id.
func (s *Store) Get(id string) (types.Student, error) {
	i, ok := s.FindByID(id)
	if !ok {
		return types.Student{}, fmt.Errorf("Get: %w: %q", ErrNotFound, id)
	}
	return s.students[i], nil
}

// UpdateField changes a single attribute of the record with id.
// value is the raw text entered by the caller; age and gpa are parsed
// and range-checked before anything is written.
func (s *Store) UpdateField(id string, field types.Field, value string) error {
	i, ok := s.FindByID(id)
	if !ok {
		return fmt.Errorf("UpdateField: %w: %q", ErrNotFound, id)
	}

	updated := s.students[i]
	switch field {
	case types.FieldName:
		updated.Name = value
	case types.FieldCourse:
		updated.Course = value
	case types.FieldAge:
		age, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("UpdateField: age %q: %w", value, validation.ErrInvalidRange)
		}
		if err := validation.Age(age); err != nil {
			return fmt.Errorf("UpdateField: %w", err)
		}
		updated.Age = age
	case types.FieldGPA:
		gpa, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("UpdateField: gpa %q: %w", value, validation.ErrInvalidRange)
		}
		if err := validation.GPA(gpa); err != nil {
			return fmt.Errorf("UpdateField: %w", err)
		}
		updated.GPA = gpa
	default:
		return fmt.Errorf("UpdateField: %w: %q", ErrUnknownField, field)
	}

	s.students[i] = updated
	s.log.Info("student updated", slog.String("id", id), slog.String("field", string(field)))

	return s.save("UpdateField")
}

// Update replaces every non-id field of the record with id using the
// values in changes. changes.ID is ignored; id and position are kept.
func (s *Store) Update(id string, changes types.Student) error {
	i, ok := s.FindByID(id)
	if !ok {
		return fmt.Errorf("Update: %w: %q", ErrNotFound, id)
	}

	changes.ID = id
	if err := validation.Student(changes); err != nil {
		return fmt.Errorf("Update: %w", err)
	}

	s.students[i] = changes
	s.log.Info("student updated", slog.String("id", id), slog.String("field", "all"))

	return s.save("Update")
}

// Delete removes the record with id, keeping the relative order of the
// rest. The store does not ask for confirmation; callers must.
func (s *Store) Delete(id string) error {
	i, ok := s.FindByID(id)
	if !ok {
		return fmt.Errorf("Delete: %w: %q", ErrNotFound, id)
	}

	s.students = append(s.students[:i:i], s.students[i+1:]...)
	s.log.Info("student deleted", slog.String("id", id))

	return s.save("Delete")
}

// List returns a copy of the roster in insertion order.
func (s *Store) List() []types.Student {
	out := make([]types.Student, len(s.students))
	copy(out, s.students)
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.students)
}

// NextID returns the stored counter.
func (s *Store) NextID() int {
	return s.nextID
}

// Snapshot returns the state handed to the backend on every write.
func (s *Store) Snapshot() storage.Snapshot {
	return storage.Snapshot{NextID: s.nextID, Students: s.List()}
}

// save writes the full roster through to the backend.
func (s *Store) save(op string) error {
	if err := s.backend.Save(s.Snapshot()); err != nil {
		s.log.Error("failed to save roster",
			slog.String("op", op),
			slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
	}
	return nil
}
