package roster

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/roster/internal/storage"
	"github.com/aanand-mishra/roster/internal/storage/textfile"
	"github.com/aanand-mishra/roster/internal/types"
	"github.com/aanand-mishra/roster/internal/validation"
)

// fakeBackend records every saved snapshot and can be told to fail.
type fakeBackend struct {
	loaded  storage.Snapshot
	loadErr error
	saveErr error
	saves   []storage.Snapshot
}

func (f *fakeBackend) Load() (storage.Snapshot, error) { return f.loaded, f.loadErr }

func (f *fakeBackend) Save(snap storage.Snapshot) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves = append(f.saves, snap)
	return nil
}

func (f *fakeBackend) Close() error { return nil }

func (f *fakeBackend) last() storage.Snapshot { return f.saves[len(f.saves)-1] }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStore(t *testing.T, seed ...types.Student) (*Store, *fakeBackend) {
	t.Helper()

	backend := &fakeBackend{loaded: storage.Empty()}
	s := New(backend, quietLogger())
	s.Load()
	for _, st := range seed {
		require.NoError(t, s.Add(st))
	}
	backend.saves = nil
	return s, backend
}

var (
	asha = types.Student{ID: "a1", Name: "Asha", Age: 20, Course: "CS", GPA: 8.5}
	ravi = types.Student{ID: "b2", Name: "Ravi", Age: 22, Course: "Maths", GPA: 4.5}
	zoe  = types.Student{ID: "c3", Name: "Zoe", Age: 21, Course: "CS", GPA: 6}
)

func TestAdd(t *testing.T) {
	t.Run("added record is found", func(t *testing.T) {
		s, backend := newStore(t)

		require.NoError(t, s.Add(asha))

		got, err := s.Get("a1")
		require.NoError(t, err)
		assert.Equal(t, asha, got)

		require.Len(t, backend.saves, 1)
		assert.Equal(t, []types.Student{asha}, backend.last().Students)
	})

	t.Run("duplicate id is rejected and store unchanged", func(t *testing.T) {
		s, backend := newStore(t, asha)

		dup := ravi
		dup.ID = asha.ID
		err := s.Add(dup)

		assert.ErrorIs(t, err, ErrDuplicateID)
		assert.Equal(t, []types.Student{asha}, s.List())
		assert.Empty(t, backend.saves)
	})

	t.Run("invalid id is rejected", func(t *testing.T) {
		s, backend := newStore(t)

		bad := asha
		bad.ID = "abc"
		assert.ErrorIs(t, s.Add(bad), validation.ErrInvalidID)
		assert.Zero(t, s.Len())
		assert.Empty(t, backend.saves)
	})

	t.Run("out of range gpa is rejected", func(t *testing.T) {
		s, _ := newStore(t)

		bad := asha
		bad.GPA = 10
		assert.ErrorIs(t, s.Add(bad), validation.ErrInvalidRange)
		assert.Zero(t, s.Len())
	})

	t.Run("insertion order is kept", func(t *testing.T) {
		s, _ := newStore(t, zoe, asha, ravi)
		assert.Equal(t, []types.Student{zoe, asha, ravi}, s.List())
	})

	t.Run("save failure keeps the mutation", func(t *testing.T) {
		s, backend := newStore(t)
		backend.saveErr = errors.New("disk full")

		err := s.Add(asha)
		assert.ErrorIs(t, err, ErrPersistence)
		assert.Contains(t, err.Error(), "disk full")
		assert.Equal(t, 1, s.Len())
	})
}

func TestFindByID(t *testing.T) {
	s, _ := newStore(t, asha, ravi)

	i, ok := s.FindByID("b2")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	i, ok = s.FindByID("zz9")
	assert.False(t, ok)
	assert.Equal(t, -1, i)
}

func TestUpdateField(t *testing.T) {
	tests := []struct {
		name    string
		field   types.Field
		value   string
		want    types.Student
		wantErr error
	}{
		{name: "name", field: types.FieldName, value: "Asha R", want: types.Student{ID: "a1", Name: "Asha R", Age: 20, Course: "CS", GPA: 8.5}},
		{name: "empty name", field: types.FieldName, value: "", want: types.Student{ID: "a1", Age: 20, Course: "CS", GPA: 8.5}},
		{name: "course", field: types.FieldCourse, value: "Physics", want: types.Student{ID: "a1", Name: "Asha", Age: 20, Course: "Physics", GPA: 8.5}},
		{name: "age", field: types.FieldAge, value: "35", want: types.Student{ID: "a1", Name: "Asha", Age: 35, Course: "CS", GPA: 8.5}},
		{name: "gpa", field: types.FieldGPA, value: "9.75", want: types.Student{ID: "a1", Name: "Asha", Age: 20, Course: "CS", GPA: 9.75}},
		{name: "age too high", field: types.FieldAge, value: "101", wantErr: validation.ErrInvalidRange},
		{name: "age not a number", field: types.FieldAge, value: "old", wantErr: validation.ErrInvalidRange},
		{name: "gpa at ceiling", field: types.FieldGPA, value: "10", wantErr: validation.ErrInvalidRange},
		{name: "gpa negative", field: types.FieldGPA, value: "-1", wantErr: validation.ErrInvalidRange},
		{name: "unknown field", field: types.Field("id"), value: "x9", wantErr: ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, backend := newStore(t, asha, ravi)

			err := s.UpdateField("a1", tt.field, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, []types.Student{asha, ravi}, s.List())
				assert.Empty(t, backend.saves)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, []types.Student{tt.want, ravi}, s.List())
			require.Len(t, backend.saves, 1)
		})
	}

	t.Run("missing id", func(t *testing.T) {
		s, _ := newStore(t, asha)
		assert.ErrorIs(t, s.UpdateField("zz9", types.FieldName, "x"), ErrNotFound)
	})

	t.Run("save failure keeps the mutation", func(t *testing.T) {
		s, backend := newStore(t, asha)
		backend.saveErr = errors.New("disk full")

		err := s.UpdateField("a1", types.FieldGPA, "9")
		assert.ErrorIs(t, err, ErrPersistence)

		got, err := s.Get("a1")
		require.NoError(t, err)
		assert.Equal(t, 9.0, got.GPA)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("replaces all fields in place", func(t *testing.T) {
		s, backend := newStore(t, asha, ravi, zoe)

		err := s.Update("b2", types.Student{ID: "ignored1", Name: "Ravi K", Age: 23, Course: "Physics", GPA: 7})
		require.NoError(t, err)

		want := types.Student{ID: "b2", Name: "Ravi K", Age: 23, Course: "Physics", GPA: 7}
		assert.Equal(t, []types.Student{asha, want, zoe}, s.List())
		require.Len(t, backend.saves, 1)
	})

	t.Run("same gpa window as add", func(t *testing.T) {
		s, _ := newStore(t, asha)

		require.NoError(t, s.Update("a1", types.Student{Name: "Asha", Age: 20, Course: "CS", GPA: 9.5}))
		assert.ErrorIs(t, s.Update("a1", types.Student{Name: "Asha", Age: 20, Course: "CS", GPA: 10}), validation.ErrInvalidRange)
	})

	t.Run("invalid values leave record untouched", func(t *testing.T) {
		s, _ := newStore(t, asha)

		err := s.Update("a1", types.Student{Name: "New", Age: 0, Course: "New", GPA: 5})
		assert.ErrorIs(t, err, validation.ErrInvalidRange)
		assert.Equal(t, []types.Student{asha}, s.List())
	})

	t.Run("missing id", func(t *testing.T) {
		s, _ := newStore(t)
		assert.ErrorIs(t, s.Update("a1", asha), ErrNotFound)
	})

	t.Run("save failure keeps the mutation", func(t *testing.T) {
		s, backend := newStore(t, asha)
		backend.saveErr = errors.New("disk full")

		changes := types.Student{Name: "Asha R", Age: 21, Course: "Physics", GPA: 7}
		assert.ErrorIs(t, s.Update("a1", changes), ErrPersistence)

		changes.ID = "a1"
		assert.Equal(t, []types.Student{changes}, s.List())
	})
}

func TestDelete(t *testing.T) {
	t.Run("removes and keeps relative order", func(t *testing.T) {
		s, backend := newStore(t, asha, ravi, zoe)

		require.NoError(t, s.Delete("b2"))
		assert.Equal(t, []types.Student{asha, zoe}, s.List())
		require.Len(t, backend.saves, 1)
		assert.Equal(t, []types.Student{asha, zoe}, backend.last().Students)
	})

	t.Run("missing id leaves store unchanged", func(t *testing.T) {
		s, backend := newStore(t, asha, ravi)

		assert.ErrorIs(t, s.Delete("zz9"), ErrNotFound)
		assert.Equal(t, []types.Student{asha, ravi}, s.List())
		assert.Empty(t, backend.saves)
	})

	t.Run("deleted id can be added again", func(t *testing.T) {
		s, _ := newStore(t, asha)

		require.NoError(t, s.Delete("a1"))
		assert.NoError(t, s.Add(asha))
	})

	t.Run("save failure keeps the mutation", func(t *testing.T) {
		s, backend := newStore(t, asha, ravi)
		backend.saveErr = errors.New("disk full")

		assert.ErrorIs(t, s.Delete("a1"), ErrPersistence)
		assert.Equal(t, []types.Student{ravi}, s.List())
	})
}

func TestList(t *testing.T) {
	s, _ := newStore(t, asha)

	list := s.List()
	list[0].Name = "changed"

	got, err := s.Get("a1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.Name)
}

func TestLoad(t *testing.T) {
	t.Run("load error starts empty", func(t *testing.T) {
		backend := &fakeBackend{loadErr: errors.New("permission denied")}
		s := New(backend, quietLogger())
		s.Load()

		assert.Zero(t, s.Len())
		assert.Equal(t, storage.DefaultNextID, s.NextID())
	})

	t.Run("partial snapshot is kept", func(t *testing.T) {
		backend := &fakeBackend{
			loaded:  storage.Snapshot{NextID: 1007, Students: []types.Student{asha}},
			loadErr: textfile.ErrTruncated,
		}
		s := New(backend, quietLogger())
		s.Load()

		assert.Equal(t, []types.Student{asha}, s.List())
		assert.Equal(t, 1007, s.NextID())
	})

	t.Run("duplicate stored ids keep the first", func(t *testing.T) {
		second := ravi
		second.ID = asha.ID
		backend := &fakeBackend{loaded: storage.Snapshot{NextID: 1001, Students: []types.Student{asha, second}}}
		s := New(backend, quietLogger())
		s.Load()

		assert.Equal(t, []types.Student{asha}, s.List())
	})
}

func TestPersistenceAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.txt")

	first := New(textfile.New(path), quietLogger())
	first.Load()
	require.NoError(t, first.Add(asha))
	require.NoError(t, first.Add(ravi))
	require.NoError(t, first.UpdateField("b2", types.FieldGPA, "5.5"))
	require.NoError(t, first.Add(zoe))
	require.NoError(t, first.Delete("a1"))

	second := New(textfile.New(path), quietLogger())
	second.Load()

	assert.Equal(t, first.List(), second.List())
	assert.Equal(t, first.NextID(), second.NextID())
}

func TestMalformedFileKeepsReadableRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.txt")
	content := "1001\n" +
		"a1\nAsha\n20\nCS\n8.5\n" +
		"b2\nRavi\n22\nMaths\n4.5\n" +
		"c3\nZoe\n21\nCS\nseven\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	first := New(textfile.New(path), quietLogger())
	first.Load()
	assert.Equal(t, []types.Student{asha, ravi}, first.List())

	d4 := types.Student{ID: "d4", Name: "Lee", Age: 30, Course: "CS", GPA: 7}
	require.NoError(t, first.Add(d4))

	second := New(textfile.New(path), quietLogger())
	second.Load()
	assert.Equal(t, []types.Student{asha, ravi, d4}, second.List())
}
