// Package dialect generates provider-specific SQL fragments for the three
// supported database back-ends. All functions are pure: they assemble query
// text from their arguments and perform no I/O.
package dialect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnsupportedDriver is returned when a driver name or value is not one of
// the three recognized back-ends.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Driver identifies a supported database back-end.
type Driver int

const (
	SQLite Driver = iota
	MySQL
	Postgres
)

// ParseDriver resolves a configured driver name, case-insensitively, to a
// Driver value.
func ParseDriver(name string) (Driver, error) {
	switch strings.ToLower(name) {
	case "sqlite":
		return SQLite, nil
	case "mysql":
		return MySQL, nil
	case "postgresql":
		return Postgres, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedDriver, name)
	}
}

// String returns the configuration-facing name of the driver.
func (d Driver) String() string {
	switch d {
	case SQLite:
		return "sqlite"
	case MySQL:
		return "mysql"
	case Postgres:
		return "postgresql"
	default:
		return "unknown"
	}
}

// valid reports whether d is one of the recognized drivers. The zero value is
// SQLite, so only values outside the enum range are rejected.
func (d Driver) valid() bool {
	return d == SQLite || d == MySQL || d == Postgres
}

// PaginationQuery appends a LIMIT/OFFSET clause to baseQuery. Page is
// 1-based. All three back-ends accept the same syntax, but an unrecognized
// driver value still fails fast.
func (d Driver) PaginationQuery(baseQuery string, page, pageSize int) (string, error) {
	if !d.valid() {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedDriver, int(d))
	}
	return fmt.Sprintf("%s LIMIT %d OFFSET %d", baseQuery, pageSize, (page-1)*pageSize), nil
}

// InsertStatement builds a bare parameterized INSERT for the table and
// columns, using the driver's placeholder style. It carries no id-returning
// suffix; callers that need the generated id in the same round trip should use
// InsertQuery.
func (d Driver) InsertStatement(tableName string, columns []string) (string, error) {
	if !d.valid() {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedDriver, int(d))
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = d.placeholder(i + 1)
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		tableName,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	), nil
}

// InsertQuery builds an INSERT that yields the newly generated id to the
// caller in one round trip: RETURNING for Postgres, a trailing last-insert-id
// SELECT for MySQL and SQLite.
func (d Driver) InsertQuery(tableName string, columns []string) (string, error) {
	stmt, err := d.InsertStatement(tableName, columns)
	if err != nil {
		return "", err
	}

	switch d {
	case MySQL:
		return stmt + "; SELECT LAST_INSERT_ID();", nil
	case Postgres:
		return stmt + " RETURNING Id;", nil
	default:
		return stmt + "; SELECT last_insert_rowid();", nil
	}
}

// LastInsertIDQuery returns the standalone fetch-last-id statement for the
// driver. On Postgres this is session-sequence-based (lastval()) and can
// diverge from InsertQuery's RETURNING clause when inserts interleave on one
// connection; prefer the value produced by the insert itself.
func (d Driver) LastInsertIDQuery() (string, error) {
	switch d {
	case MySQL:
		return "SELECT LAST_INSERT_ID();", nil
	case Postgres:
		return "SELECT lastval();", nil
	case SQLite:
		return "SELECT last_insert_rowid();", nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnsupportedDriver, int(d))
	}
}

// ReturnsInsertedID reports whether InsertQuery's statement itself yields the
// generated id as a result row, rather than requiring a follow-up statement.
func (d Driver) ReturnsInsertedID() bool {
	return d == Postgres
}

// Rebind rewrites a query written with ? placeholders into the driver's
// native placeholder style. MySQL and SQLite use ? as-is; Postgres uses
// ordinal $n markers.
func (d Driver) Rebind(query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			b.WriteByte(query[i])
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

func (d Driver) placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}
