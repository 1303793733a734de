package postgres

import "database/sql"

// Queryer é a superfície de consulta que os repositórios dependem. É
// satisfeita por *Connection e também por *sql.Tx, o que permite reusar os
// mesmos helpers dentro de transações.
type Queryer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}
