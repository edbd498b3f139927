// Released under an MIT license. See LICENSE.

//go:build sqlite

package commands

import (
	"database/sql"
	"fmt"
	"time"

	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/interface/literal"
	"github.com/michaelmacinnis/ply/internal/common/type/boolean"
	"github.com/michaelmacinnis/ply/internal/common/type/dict"
	"github.com/michaelmacinnis/ply/internal/common/type/kw"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
	"github.com/michaelmacinnis/ply/internal/common/type/null"
	"github.com/michaelmacinnis/ply/internal/common/type/num"
	"github.com/michaelmacinnis/ply/internal/common/type/str"
	"github.com/michaelmacinnis/ply/internal/common/type/sym"
	"github.com/michaelmacinnis/ply/internal/common/type/vec"
	"github.com/michaelmacinnis/ply/internal/common/validate"
)

// A db is an open SQLite database handle.
type db struct {
	*sql.DB
	path string
}

func database(r *native.Registry) {
	r.Plain("db/close", 1, 1, func(args []cell.I) (cell.I, error) {
		return null.Nil, toDB(args[0]).Close()
	})
	r.Aware("db/exec", 2, -1, exec)
	r.Plain("db/open", 1, 1, func(args []cell.I) (cell.I, error) {
		path := validate.String(args[0])

		h, err := sql.Open("sqlite3", path)
		if err != nil {
			return nil, err
		}

		return &db{DB: h, path: path}, nil
	})
	r.Aware("db/query", 2, -1, query)
}

// exec runs a statement and returns the number of rows it affected.
func exec(c native.Caller, args []cell.I) (cell.I, error) {
	h, stmt := toDB(args[0]), validate.String(args[1])

	res, err := h.ExecContext(c.Context(), stmt, parameters(args[2:])...)
	if err != nil {
		return nil, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}

	return num.NewInt(n), nil
}

// query runs a statement and returns a vector with a map per row. Each map
// is keyed by the column names as keywords.
func query(c native.Caller, args []cell.I) (cell.I, error) {
	h, stmt := toDB(args[0]), validate.String(args[1])

	rows, err := h.QueryContext(c.Context(), stmt, parameters(args[2:])...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	keys := make([]cell.I, len(columns))
	for i, name := range columns {
		keys[i] = kw.New(name)
	}

	result := []cell.I{}

	for rows.Next() {
		values := make([]any, len(columns))
		targets := make([]any, len(columns))

		for i := range values {
			targets[i] = &values[i]
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}

		kvs := make([]cell.I, 0, 2*len(columns)) //nolint:gomnd
		for i, v := range values {
			kvs = append(kvs, keys[i], fromSQL(v))
		}

		result = append(result, dict.New(kvs...))
	}

	return vec.New(result...), rows.Err()
}

func fromSQL(v any) cell.I {
	switch v := v.(type) {
	case nil:
		return null.Nil
	case bool:
		return boolean.Bool(v)
	case []byte:
		return str.New(string(v))
	case float64:
		return num.NewFloat(v)
	case int64:
		return num.NewInt(v)
	case string:
		return str.New(v)
	case time.Time:
		return str.New(v.Format(time.RFC3339Nano))
	}

	return str.New(fmt.Sprint(v))
}

func parameters(args []cell.I) []any {
	ps := make([]any, len(args))

	for i, a := range args {
		ps[i] = toSQL(a)
	}

	return ps
}

func toDB(c cell.I) *db {
	h, ok := c.(*db)
	validate.Expect(ok, "database", c)

	return h
}

func toSQL(c cell.I) any {
	switch {
	case null.Is(c):
		return nil
	case boolean.Is(c):
		return boolean.To(c).Bool()
	case num.IsInt(c):
		return num.ToInt(c)
	case num.IsFloat(c):
		return num.ToFloat(c)
	case str.Is(c):
		return str.To(c).String()
	case kw.Is(c):
		return kw.To(c).Text()
	case sym.Is(c):
		return sym.To(c).String()
	}

	return literal.String(c)
}

// Equal returns true if c is the same database handle.
func (d *db) Equal(c cell.I) bool {
	o, ok := c.(*db)

	return ok && o == d
}

// Literal returns the literal representation of the database handle d.
func (d *db) Literal() string {
	return "#<database " + d.path + ">"
}

// Name returns the name of the database type.
func (*db) Name() string {
	return "database"
}
