package sku_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-inventario/internal/domain"
	"github.com/jhoicas/retail-inventario/internal/domain/sku"
)

func TestCompose_BaseSinSufijo(t *testing.T) {
	seq, err := sku.Compose(sku.Parts{Category: "rop", Brand: "nik", Size: "m", Color: "azu"})
	require.NoError(t, err)
	assert.Equal(t, "ROP-NIK-M-AZU", seq.Base)
	assert.False(t, seq.Custom)
}

func TestCompose_NormalizaTildesYTalla(t *testing.T) {
	seq, err := sku.Compose(sku.Parts{Category: " Cál ", Brand: "Niñ", Size: "10-12", Color: "AZÚ"})
	require.NoError(t, err)
	assert.Equal(t, "CAL-NIN-1012-AZU", seq.Base)
}

func TestCompose_ComponenteVacio(t *testing.T) {
	_, err := sku.Compose(sku.Parts{Category: "ROP", Brand: "  ", Size: "M", Color: "AZU"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSequence_Plano(t *testing.T) {
	seq, err := sku.Compose(sku.Parts{Category: "ROP", Brand: "NIK", Size: "M", Color: "AZU"})
	require.NoError(t, err)

	tests := []struct {
		i    int
		want string
	}{
		{0, "ROP-NIK-M-AZU"},
		{1, "ROP-NIK-M-AZU-02"},
		{2, "ROP-NIK-M-AZU-03"},
		{98, "ROP-NIK-M-AZU-99"},
	}
	for _, tt := range tests {
		got, ok := seq.At(tt.i)
		require.True(t, ok)
		assert.Equal(t, tt.want, got)
	}
	_, ok := seq.At(99)
	assert.False(t, ok, "el contador 100 no existe")
}

func TestSequence_ConSufijo(t *testing.T) {
	seq, err := sku.Compose(sku.Parts{Category: "ROP", Brand: "NIK", Size: "M", Color: "AZU", Suffix: "ed1"})
	require.NoError(t, err)
	assert.True(t, seq.Custom)

	got, _ := seq.At(0)
	assert.Equal(t, "ROP-NIK-M-AZU-ED1", got)
	got, _ = seq.At(1)
	assert.Equal(t, "ROP-NIK-M-AZU-ED1-01", got)
	got, ok := seq.At(99)
	require.True(t, ok)
	assert.Equal(t, "ROP-NIK-M-AZU-ED1-99", got)
	_, ok = seq.At(100)
	assert.False(t, ok)
}

func TestSequence_Fallback(t *testing.T) {
	seq := sku.Sequence{Base: "ROP-NIK-M-AZU"}
	now := time.UnixMilli(1700000001234)
	assert.Equal(t, "ROP-NIK-M-AZU-1234", seq.Fallback(now))

	now = time.UnixMilli(1700000000007)
	assert.Equal(t, "ROP-NIK-M-AZU-0007", seq.Fallback(now))
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "Camiseta básica AZUL", sku.FullName("Camiseta básica", "azul"))
}
