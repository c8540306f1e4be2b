package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica se um erro é violação de constraint única (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isForeignKeyViolation verifica se um erro é violação de chave estrangeira (23503).
// É o que o banco devolve ao tentar apagar um cliente ainda referenciado por cobranças.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// nullIfEmpty converte string vazia em NULL para colunas opcionais.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
