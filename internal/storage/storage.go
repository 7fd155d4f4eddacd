// Package storage defines the Storage interface — the persistence port
// that any backend must satisfy to hold the roster between runs.
//
// WHY AN INTERFACE?
// ─────────────────
// The roster store should not know or care whether its records end up
// in a line-oriented text file or an embedded SQLite database. By
// depending only on this interface:
//
//   - Switching backends = implement the interface, change one line in
//     main.go. Zero store changes.
//
//   - Writing tests = pass a fake that satisfies the interface.
//     No real file needed for unit tests.
package storage

import "github.com/aanand-mishra/roster/internal/types"

// DefaultNextID is the counter value written when no prior data exists.
const DefaultNextID = 1001

// Snapshot is the complete persisted state: the informational counter
// and every record in store order.
type Snapshot struct {
	// NextID is carried for compatibility with the stored format.
	// It is never used to generate IDs.
	NextID   int
	Students []types.Student
}

// Empty returns a snapshot with no records and the default counter.
func Empty() Snapshot {
	return Snapshot{NextID: DefaultNextID, Students: make([]types.Student, 0)}
}

// Storage is the persistence contract.
//
// Save is always a full rewrite: implementations must never append or
// diff, so the stored state after Save equals the snapshot passed in.
type Storage interface {
	// Load returns the persisted state.
	// A backend with nothing stored yet returns Empty() and a nil error.
	Load() (Snapshot, error)

	// Save replaces everything stored with snap.
	Save(snap Snapshot) error

	// Close releases any resources held by the backend.
	Close() error
}

// Unavailable returns a Storage whose Load yields an empty roster and
// whose Save always fails with err. It stands in for a backend that
// could not be opened at startup.
func Unavailable(err error) Storage {
	return unavailable{err: err}
}

type unavailable struct {
	err error
}

func (u unavailable) Load() (Snapshot, error) { return Empty(), nil }

func (u unavailable) Save(Snapshot) error { return u.err }

func (u unavailable) Close() error { return nil }
