// Package sqlrepo implements the repository interfaces on database/sql.
// One implementation serves both the PostgreSQL and the SQLite backend;
// only the placeholder format differs.
package sqlrepo

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
)

// Dialect selects the SQL placeholder style
type Dialect int

const (
	// SQLite uses ? placeholders
	SQLite Dialect = iota
	// Postgres uses $n placeholders
	Postgres
)

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// Repo is the shared base of the squirrel repositories
type Repo struct {
	DB *sql.DB
	SQ sq.StatementBuilderType
}

// NewRepo creates a base repository for the given dialect
func NewRepo(db *sql.DB, dialect Dialect) *Repo {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Question)
	if dialect == Postgres {
		builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return &Repo{DB: db, SQ: builder}
}
