package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/retail-inventario/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"serializacion", &pgconn.PgError{Code: "40001"}, domain.ErrConflict},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, domain.ErrConflict},
		{"check stock >= 0", &pgconn.PgError{Code: "23514"}, domain.ErrInvalidQuantity},
		{"fk", &pgconn.PgError{Code: "23503"}, domain.ErrNotFound},
		{"uuid invalido", &pgconn.PgError{Code: "22P02"}, domain.ErrInvalidInput},
		{"conexion perdida", &pgconn.PgError{Code: "08006"}, domain.ErrStoreUnavailable},
		{"demasiadas conexiones", &pgconn.PgError{Code: "53300"}, domain.ErrStoreUnavailable},
		{"timeout", fmt.Errorf("query: %w", context.DeadlineExceeded), domain.ErrStoreUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify("op", tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err, "conserva la causa original")
		})
	}
}

func TestClassify_Desconocido(t *testing.T) {
	cause := errors.New("boom")
	got := classify("get stock", cause)
	assert.ErrorIs(t, got, cause)
	assert.Equal(t, domain.CodeInternal, domain.Code(got))
	assert.Equal(t, "get stock: boom", got.Error())

	got = classify("x", &pgconn.PgError{Code: "42P01"})
	assert.Equal(t, domain.CodeInternal, domain.Code(got))

	assert.NoError(t, classify("x", nil))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("23505 en el texto no cuenta")))
}
