package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBusy = errors.New("database is locked (5) (SQLITE_BUSY)")

// fakeConn is a driver connection whose first busy calls fail with
// SQLITE_BUSY. It records every statement it executes.
type fakeConn struct {
	busy     int
	failExec string
	execs    []string
	begins   int
	queries  int
	closed   bool
}

func (c *fakeConn) takeBusy() bool {
	if c.busy > 0 {
		c.busy--
		return true
	}
	return false
}

func (c *fakeConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("prepare unsupported") }
func (c *fakeConn) Begin() (driver.Tx, error)           { return nil, errors.New("begin unsupported") }
func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

func (c *fakeConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	c.begins++
	if c.takeBusy() {
		return nil, errBusy
	}
	return fakeTx{}, nil
}

func (c *fakeConn) ExecContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Result, error) {
	if query == c.failExec {
		return nil, errors.New(`near "PRAGMA": syntax error`)
	}
	if c.takeBusy() {
		return nil, errBusy
	}
	c.execs = append(c.execs, query)
	return driver.RowsAffected(0), nil
}

func (c *fakeConn) QueryContext(context.Context, string, []driver.NamedValue) (driver.Rows, error) {
	c.queries++
	if c.takeBusy() {
		return nil, errBusy
	}
	return fakeRows{}, nil
}

type fakeTx struct{}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

type fakeRows struct{}

func (fakeRows) Columns() []string         { return []string{"id"} }
func (fakeRows) Close() error              { return nil }
func (fakeRows) Next([]driver.Value) error { return io.EOF }

type fakeConnector struct {
	conn *fakeConn
}

func (fc *fakeConnector) Connect(context.Context) (driver.Conn, error) { return fc.conn, nil }
func (fc *fakeConnector) Driver() driver.Driver                        { return nil }

func TestIsBusyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"modernc busy", errors.New("database is locked (5) (SQLITE_BUSY)"), true},
		{"modernc table locked", errors.New("database table is locked (6) (SQLITE_LOCKED)"), true},
		{"mattn busy", errors.New("database is locked"), true},
		{"unique violation", errors.New("UNIQUE constraint failed: genres.search_name"), false},
		{"foreign key violation", errors.New("FOREIGN KEY constraint failed (787)"), false},
		{"missing table", errors.New("no such table: venue_genres"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isBusyError(tt.err))
		})
	}
}

func TestRetryWithBackoff(t *testing.T) {
	t.Run("retries busy errors until success", func(t *testing.T) {
		attempts := 0
		err := retryWithBackoff(context.Background(), 5, func() error {
			attempts++
			if attempts < 3 {
				return errBusy
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("returns other errors at once", func(t *testing.T) {
		attempts := 0
		err := retryWithBackoff(context.Background(), 5, func() error {
			attempts++
			return errors.New("FOREIGN KEY constraint failed")
		})
		require.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		attempts := 0
		err := retryWithBackoff(context.Background(), 2, func() error {
			attempts++
			return errBusy
		})
		require.ErrorIs(t, err, errBusy)
		assert.Equal(t, 3, attempts)
	})

	t.Run("stops when the context is done", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		attempts := 0
		err := retryWithBackoff(ctx, 10, func() error {
			attempts++
			return errBusy
		})
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, attempts, 10)
	})
}

func TestRetryConnector_RunsPragmasOnConnect(t *testing.T) {
	conn := &fakeConn{busy: 1}
	pragmas := []string{"PRAGMA foreign_keys = ON", "PRAGMA busy_timeout = 5000"}
	rc := newRetryConnector(&fakeConnector{conn: conn}, 3, pragmas)

	c, err := rc.Connect(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &retryConn{}, c)
	// the busy first attempt is retried
	assert.Equal(t, pragmas, conn.execs)
	assert.False(t, conn.closed)
}

func TestRetryConnector_ClosesConnOnPragmaFailure(t *testing.T) {
	conn := &fakeConn{failExec: "PRAGMA busy_timeout = 5000"}
	rc := newRetryConnector(&fakeConnector{conn: conn}, 3, []string{"PRAGMA foreign_keys = ON", "PRAGMA busy_timeout = 5000"})

	_, err := rc.Connect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `running "PRAGMA busy_timeout = 5000"`)
	assert.True(t, conn.closed)
}

func TestRetryConn_RetriesBusyCalls(t *testing.T) {
	ctx := context.Background()

	t.Run("BeginTx", func(t *testing.T) {
		conn := &fakeConn{busy: 2}
		rconn := &retryConn{Conn: conn, maxRetries: 3}

		tx, err := rconn.BeginTx(ctx, driver.TxOptions{})
		require.NoError(t, err)
		assert.NotNil(t, tx)
		assert.Equal(t, 3, conn.begins)
	})

	t.Run("QueryContext", func(t *testing.T) {
		conn := &fakeConn{busy: 1}
		rconn := &retryConn{Conn: conn, maxRetries: 3}

		rows, err := rconn.QueryContext(ctx, "SELECT id FROM venues", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"id"}, rows.Columns())
		assert.Equal(t, 2, conn.queries)
	})

	t.Run("QueryContext gives up", func(t *testing.T) {
		conn := &fakeConn{busy: 5}
		rconn := &retryConn{Conn: conn, maxRetries: 1}

		_, err := rconn.QueryContext(ctx, "SELECT id FROM venues", nil)
		require.ErrorIs(t, err, errBusy)
		assert.Equal(t, 2, conn.queries)
	})

	t.Run("ExecContext", func(t *testing.T) {
		conn := &fakeConn{busy: 1}
		rconn := &retryConn{Conn: conn, maxRetries: 3}

		_, err := rconn.ExecContext(ctx, "DELETE FROM shows", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"DELETE FROM shows"}, conn.execs)
	})
}
