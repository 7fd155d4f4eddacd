// Package student contains the CLI commands for roster records.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// cobra runs a command through its RunE field:
//
//	func(cmd *cobra.Command, args []string) error
//
// That signature has no room for extra parameters like the store.
// To inject dependencies each factory:
//  1. Accepts dependencies (the store)
//  2. Returns a *cobra.Command whose RunE closes over them
//
//	app.Add(student.New(store))
package student

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/roster/internal/cli"
	"github.com/aanand-mishra/roster/internal/roster"
	"github.com/aanand-mishra/roster/internal/types"
	"github.com/aanand-mishra/roster/internal/utils/response"
	"github.com/aanand-mishra/roster/internal/validation"
)

// ErrNotConfirmed is returned by Delete when --yes is missing.
var ErrNotConfirmed = errors.New("delete not confirmed: pass --yes to delete")

// Store is the part of *roster.Store the handlers use.
type Store interface {
	Add(s types.Student) error
	Get(id string) (types.Student, error)
	List() []types.Student
	Update(id string, changes types.Student) error
	UpdateField(id string, field types.Field, value string) error
	Delete(id string) error
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles: add ID NAME AGE COURSE GPA
//
// Success output:
//
//	{ "status": "ok", "data": { "id": "a1", "name": "Asha", ... } }
//
// Errors: usage (wrong argument count), invalid id, duplicate id,
// out-of-range age/gpa.
// ─────────────────────────────────────────────────────────────────────────────
func New(store Store) *cobra.Command {
	return &cobra.Command{
		Use:   "add ID NAME AGE COURSE GPA",
		Short: "Add a student",
		Args:  cli.Args(cobra.ExactArgs(5)),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := parseStudent(args[0], args[1:])
			if err != nil {
				return err
			}

			return writeMutation(cmd.OutOrStdout(), st, store.Add(st))
		},
	}
}

// GetList handles: list
func GetList(store Store) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every student in insertion order",
		Args:  cli.Args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			students := store.List()
			if len(students) == 0 {
				return response.WriteJSON(cmd.OutOrStdout(), response.Empty("no student records available"))
			}
			return response.WriteJSON(cmd.OutOrStdout(), response.OK(students))
		},
	}
}

// GetByID handles: find ID
func GetByID(store Store) *cobra.Command {
	return &cobra.Command{
		Use:   "find ID",
		Short: "Show one student",
		Args:  cli.Args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Get(args[0])
			if err != nil {
				return err
			}
			return response.WriteJSON(cmd.OutOrStdout(), response.OK(st))
		},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles both update modes:
//
//	update ID FIELD VALUE                    — one of name, age, course, gpa
//	update --all ID NAME AGE COURSE GPA      — replace every field but the id
//
// The updated record is echoed back so the caller sees what is stored.
// ─────────────────────────────────────────────────────────────────────────────
func Update(store Store) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "update ID FIELD VALUE | update --all ID NAME AGE COURSE GPA",
		Short: "Change one field, or every field but the id",
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			var err error
			switch {
			case all && len(args) == 5:
				id = args[0]
				var changes types.Student
				changes, err = parseStudent(id, args[1:])
				if err != nil {
					return err
				}
				err = store.Update(id, changes)

			case !all && len(args) == 3:
				id = args[0]
				field, ok := types.ParseField(strings.ToLower(args[1]))
				if !ok {
					return fmt.Errorf("%w: %q (want name, age, course or gpa)", roster.ErrUnknownField, args[1])
				}
				err = store.UpdateField(id, field, args[2])

			default:
				return cli.Usagef("%s", cmd.Use)
			}

			if err != nil && !errors.Is(err, roster.ErrPersistence) {
				return err
			}

			st, getErr := store.Get(id)
			if getErr != nil {
				return getErr
			}
			return writeMutation(cmd.OutOrStdout(), st, err)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "replace name, age, course and gpa")

	return cmd
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles: delete --yes ID
//
// The store never asks for confirmation, so this handler does: without
// --yes nothing is removed.
// ─────────────────────────────────────────────────────────────────────────────
func Delete(store Store) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete --yes ID",
		Short: "Delete a student",
		Args:  cli.Args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			// Look the record up first so a missing id is reported even
			// without confirmation.
			st, err := store.Get(id)
			if err != nil {
				return err
			}
			if !yes {
				return ErrNotConfirmed
			}

			return writeMutation(cmd.OutOrStdout(), map[string]string{"deleted": st.ID}, store.Delete(id))
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")

	return cmd
}

// parseStudent builds a record from NAME AGE COURSE GPA.
// Non-numeric age or gpa is reported as an out-of-range value.
func parseStudent(id string, fields []string) (types.Student, error) {
	age, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return types.Student{}, fmt.Errorf("%w: age %q is not a whole number", validation.ErrInvalidRange, fields[1])
	}

	gpa, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
	if err != nil {
		return types.Student{}, fmt.Errorf("%w: gpa %q is not a number", validation.ErrInvalidRange, fields[3])
	}

	return types.Student{
		ID:     id,
		Name:   fields[0],
		Age:    age,
		Course: fields[2],
		GPA:    gpa,
	}, nil
}

// writeMutation reports the outcome of a store mutation. A failed
// write-through is a warning: the change is in memory but not on disk.
func writeMutation(w io.Writer, data any, err error) error {
	switch {
	case err == nil:
		return response.WriteJSON(w, response.OK(data))
	case errors.Is(err, roster.ErrPersistence):
		return response.WriteJSON(w, response.Unsaved(data, err))
	default:
		return err
	}
}
