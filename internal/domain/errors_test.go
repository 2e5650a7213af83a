package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/retail-inventario/internal/domain"
)

func TestCode_ResuelveErroresEnvueltos(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{fmt.Errorf("%w: articulo_id requerido", domain.ErrInvalidInput), domain.CodeValidation},
		{fmt.Errorf("%w: stock 3, cantidad -5", domain.ErrInvalidQuantity), domain.CodeInvalidQuantity},
		{domain.ErrInsufficientStock, domain.CodeInsufficientStock},
		{domain.ErrInvalidPrice, domain.CodeInvalidPrice},
		{fmt.Errorf("tienda: %w", domain.ErrNotFound), domain.CodeNotFound},
		{domain.ErrDuplicate, domain.CodeConflict},
		{domain.ErrConflict, domain.CodeConflict},
		{fmt.Errorf("begin: %w", domain.ErrStoreUnavailable), domain.CodeStoreUnavailable},
		{errors.New("boom"), domain.CodeInternal},
		{nil, ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.code, domain.Code(c.err), "err=%v", c.err)
	}
}

func TestIsBusiness(t *testing.T) {
	assert.True(t, domain.IsBusiness(domain.ErrInvalidQuantity))
	assert.True(t, domain.IsBusiness(fmt.Errorf("x: %w", domain.ErrConflict)))
	assert.False(t, domain.IsBusiness(domain.ErrStoreUnavailable))
	assert.False(t, domain.IsBusiness(errors.New("driver")))
	assert.False(t, domain.IsBusiness(nil))
}
