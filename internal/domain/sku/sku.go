// Package sku compone identificadores de artículo a partir de prefijos de catálogo.
// No consulta la base de datos: la resolución de colisiones vive en application/sku.
package sku

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/retail-inventario/internal/domain"
)

// MaxCounter es el último contador de colisión antes del sufijo por tiempo.
const MaxCounter = 99

// Parts son los componentes de un SKU. Suffix es opcional.
type Parts struct {
	Category string
	Brand    string
	Size     string
	Color    string
	Suffix   string
}

// Normalize recorta, quita tildes y pasa a mayúsculas ("azúl " -> "AZUL").
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = strings.TrimSpace(s)
	}
	return strings.ToUpper(out)
}

// Sequence es la secuencia ordenada de candidatos para una base.
type Sequence struct {
	Base   string
	Custom bool
}

// Compose arma la base CAT-MAR-TALLA-COL[-SUF]. La talla pierde sus guiones internos.
func Compose(p Parts) (Sequence, error) {
	fields := []struct{ name, value string }{
		{"categoria_prefijo", Normalize(p.Category)},
		{"marca_prefijo", Normalize(p.Brand)},
		{"talla_codigo", strings.ReplaceAll(Normalize(p.Size), "-", "")},
		{"color_prefijo", Normalize(p.Color)},
	}
	segs := make([]string, 0, 5)
	for _, f := range fields {
		if f.value == "" {
			return Sequence{}, fmt.Errorf("%w: %s es requerido", domain.ErrInvalidInput, f.name)
		}
		segs = append(segs, f.value)
	}
	seq := Sequence{}
	if suf := Normalize(p.Suffix); suf != "" {
		segs = append(segs, suf)
		seq.Custom = true
	}
	seq.Base = strings.Join(segs, "-")
	return seq, nil
}

// Len es la cantidad de candidatos con contador antes del fallback.
// Sin sufijo: BASE, BASE-02..BASE-99. Con sufijo: BASE, BASE-01..BASE-99.
func (s Sequence) Len() int {
	if s.Custom {
		return MaxCounter + 1
	}
	return MaxCounter
}

// At devuelve el candidato i (0 = base). ok es false cuando i sale de la secuencia.
func (s Sequence) At(i int) (candidate string, ok bool) {
	if i < 0 || i >= s.Len() {
		return "", false
	}
	if i == 0 {
		return s.Base, true
	}
	n := i
	if !s.Custom {
		n = i + 1
	}
	return fmt.Sprintf("%s-%02d", s.Base, n), true
}

// Fallback agrega los últimos 4 dígitos del reloj en milisegundos a la base.
func (s Sequence) Fallback(now time.Time) string {
	return fmt.Sprintf("%s-%04d", s.Base, now.UnixMilli()%10000)
}

// FullName arma el nombre_completo del artículo: producto + color en mayúsculas.
func FullName(productName, colorName string) string {
	return strings.TrimSpace(strings.TrimSpace(productName) + " " + strings.ToUpper(strings.TrimSpace(colorName)))
}
