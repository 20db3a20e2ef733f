package library

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/logo"
	"github.com/zephyrtronium/logo/testutils"
)

func openTest(t *testing.T) *Library {
	t.Helper()
	l, err := Open(context.Background(), ":memory:", testutils.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

// tick returns a clock that advances one second per call.
func tick() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestMigrate(t *testing.T) {
	l := openTest(t)
	v, err := l.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
	// Migrating again is a no-op.
	require.NoError(t, Migrate(context.Background(), l.db))
}

func TestSaveGet(t *testing.T) {
	ctx := context.Background()
	l := openTest(t)
	l.now = tick()

	require.NoError(t, l.Save(ctx, "Square", "to square\nend"))
	e, err := l.Get(ctx, "SQUARE")
	require.NoError(t, err)
	assert.Equal(t, "square", e.Name)
	assert.Equal(t, "to square\nend", e.Text)
	assert.Equal(t, e.Created, e.Updated)

	// Same text keeps the timestamps.
	require.NoError(t, l.Save(ctx, "square", "to square\nend"))
	again, err := l.Get(ctx, "square")
	require.NoError(t, err)
	assert.Equal(t, e.Updated, again.Updated)

	// New text updates them.
	require.NoError(t, l.Save(ctx, "square", "to square\n  fd 1\nend"))
	again, err = l.Get(ctx, "square")
	require.NoError(t, err)
	assert.Equal(t, "to square\n  fd 1\nend", again.Text)
	assert.Equal(t, e.Created, again.Created)
	assert.True(t, again.Updated.After(e.Updated))

	_, err = l.Get(ctx, "circle")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListDelete(t *testing.T) {
	ctx := context.Background()
	l := openTest(t)
	l.now = tick()
	for _, name := range []string{"b", "c", "a"} {
		require.NoError(t, l.Save(ctx, name, "to "+name+"\nend"))
	}
	entries, err := l.List(ctx)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)

	require.NoError(t, l.Delete(ctx, "B"))
	require.NoError(t, l.Delete(ctx, "nothing"))
	entries, err = l.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	erased, err := l.Erased(ctx)
	require.NoError(t, err)
	require.Len(t, erased, 1)
	assert.Equal(t, "b", erased[0].Name)
	assert.Equal(t, "to b\nend", erased[0].Text)
}

func TestSaverHook(t *testing.T) {
	ctx := context.Background()
	l := openTest(t)
	s := testutils.NewSession(t, "", logo.WithSaver(l))
	require.NoError(t, s.Run(ctx, "to double :x\noutput :x * 2\nend\nto half :x\noutput :x / 2\nend"))
	require.NoError(t, s.Run(ctx, `erase "half`))

	entries, err := l.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "double", entries[0].Name)
	assert.Equal(t, "to double :x\n  output :x * 2\nend", entries[0].Text)

	// A new session gets the stored procedures back.
	fresh := testutils.NewSession(t, "")
	n, err := l.Load(ctx, fresh.Interp)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	v, err := fresh.Eval(ctx, "double 21")
	require.NoError(t, err)
	assert.True(t, logo.Equal(logo.NewNumber(42), v))
}

func TestLoadSkipsBroken(t *testing.T) {
	ctx := context.Background()
	l := openTest(t)
	require.NoError(t, l.Save(ctx, "bad", "to bad\nprint 1"))
	require.NoError(t, l.Save(ctx, "good", "to good\noutput 1\nend"))
	s := testutils.NewSession(t, "")
	n, err := l.Load(ctx, s.Interp)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, ok := s.Procedure("good")
	assert.True(t, ok)
	_, ok = s.Procedure("bad")
	assert.False(t, ok)
}

func newMock(t *testing.T) (*Library, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	l := New(db, testutils.NewTestLogger(t))
	l.now = func() time.Time { return time.UnixMilli(1000) }
	return l, mock
}

func TestSaveError(t *testing.T) {
	l, mock := newMock(t)
	mock.ExpectExec("INSERT INTO procedures").
		WithArgs("f", "to f\nend", int64(1000), int64(1000)).
		WillReturnError(errors.New("disk I/O error"))
	err := l.Save(context.Background(), "F", "to f\nend")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save f")
}

func TestDeleteErrors(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(mock sqlmock.Sqlmock)
		errMsg string
	}{
		{
			name: "begin",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("locked"))
			},
			errMsg: "failed to delete f",
		},
		{
			name: "archive",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO erasures").WillReturnError(errors.New("full"))
				mock.ExpectRollback()
			},
			errMsg: "failed to archive f",
		},
		{
			name: "delete",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO erasures").WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("DELETE FROM procedures").WithArgs("f").WillReturnError(errors.New("full"))
				mock.ExpectRollback()
			},
			errMsg: "failed to delete f",
		},
		{
			name: "commit",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO erasures").WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("DELETE FROM procedures").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit().WillReturnError(errors.New("busy"))
			},
			errMsg: "failed to delete f",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, mock := newMock(t)
			tt.setup(mock)
			err := l.Delete(context.Background(), "f")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestListScanError(t *testing.T) {
	l, mock := newMock(t)
	rows := sqlmock.NewRows([]string{"name", "text", "created_at", "updated_at"}).
		AddRow("f", "to f\nend", int64(1), int64(2)).
		AddRow("g", "to g\nend", "yesterday", int64(2))
	mock.ExpectQuery("SELECT name, text, created_at, updated_at FROM procedures").WillReturnRows(rows)
	_, err := l.List(context.Background())
	assert.Error(t, err)
}

func TestListRowError(t *testing.T) {
	l, mock := newMock(t)
	rows := sqlmock.NewRows([]string{"name", "text", "created_at", "updated_at"}).
		AddRow("f", "to f\nend", int64(1), int64(2)).
		RowError(0, driver.ErrBadConn)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)
	_, err := l.List(context.Background())
	assert.Error(t, err)
}

func TestGetError(t *testing.T) {
	l, mock := newMock(t)
	mock.ExpectQuery("SELECT").WithArgs("f").WillReturnError(errors.New("gone"))
	_, err := l.Get(context.Background(), "F")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
