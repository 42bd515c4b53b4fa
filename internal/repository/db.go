package repository

import "database/sql"

// DBTX is the query surface shared by *sql.DB and *sql.Tx. Repositories
// hold a DBTX so a caller-managed transaction can span several of them.
type DBTX interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}
