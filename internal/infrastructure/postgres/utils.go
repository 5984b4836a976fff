package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgErrCode extrae el código SQLSTATE del error, o "" si no es un error de Postgres.
func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation detecta violaciones de constraint único (23505), incluido
// el índice parcial de origen en gastos/ingresos automáticos.
func isUniqueViolation(err error) bool {
	return pgErrCode(err) == "23505"
}
