// seed_catalog genera el script SQL que puebla el catálogo de prefijos SKU
// (marcas, categorías, tallas y colores) a partir de un CSV "tipo,nombre,prefijo".
// El CSV puede venir en UTF-8 o ISO-8859-1 (exportaciones de hoja de cálculo).
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual.
// Escribe la siguiente migración NNN_seed_catalog.up.sql en internal/infrastructure/postgres/migrations.
// Las migraciones ya aplicadas no se vuelven a correr, por eso cada regeneración va en un archivo nuevo.
// Si el catálogo no cambió respecto al último seed no se escribe nada.
package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/retail-inventario/internal/domain/sku"
)

// tabla destino por tipo, en el orden en que se escriben.
var tables = []struct {
	kind, table, column string
}{
	{"categoria", "categorias", "prefijo_sku"},
	{"marca", "marcas", "prefijo_sku"},
	{"talla", "tallas", "codigo"},
	{"color", "colores", "prefijo_sku"},
}

type entry struct {
	Kind   string
	Name   string
	Prefix string
}

func main() {
	csvPath := "catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	entries, err := parseCatalog(decodeInput(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Procesar CSV: %v\n", err)
		os.Exit(1)
	}

	var b strings.Builder
	if err := writeSQL(&b, filepath.Base(csvPath), entries); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}

	dir := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations")
	next, latest, err := scanMigrations(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer migraciones: %v\n", err)
		os.Exit(1)
	}
	if latest != "" {
		prev, err := os.ReadFile(filepath.Join(dir, latest))
		if err == nil && string(prev) == b.String() {
			fmt.Printf("Sin cambios: %s ya contiene este catálogo\n", latest)
			return
		}
	}

	outPath := filepath.Join(dir, fmt.Sprintf("%03d_%s.up.sql", next, seedName))
	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d registros de catálogo\n", outPath, len(entries))
}

const seedName = "seed_catalog"

// scanMigrations devuelve la siguiente versión libre y el último seed de catálogo existente.
func scanMigrations(dir string) (next uint64, latestSeed string, err error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return 0, "", err
	}
	var maxVersion, seedVersion uint64
	for _, f := range files {
		name := f.Name()
		if f.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		prefix, ident, ok := strings.Cut(strings.TrimSuffix(name, ".up.sql"), "_")
		if !ok {
			continue
		}
		v, err := strconv.ParseUint(prefix, 10, 64)
		if err != nil {
			continue
		}
		if v > maxVersion {
			maxVersion = v
		}
		if ident == seedName && v >= seedVersion {
			seedVersion = v
			latestSeed = name
		}
	}
	return maxVersion + 1, latestSeed, nil
}

// decodeInput devuelve un lector UTF-8. Si el archivo no es UTF-8 válido se asume ISO-8859-1.
func decodeInput(raw []byte) io.Reader {
	if utf8.Valid(raw) {
		return bytes.NewReader(raw)
	}
	return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder())
}

// parseCatalog lee las filas, normaliza los prefijos igual que el generador de SKU
// y elimina duplicados (gana la última fila). La cabecera es opcional.
func parseCatalog(r io.Reader) ([]entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	known := make(map[string]bool, len(tables))
	for _, t := range tables {
		known[t.kind] = true
	}

	byKey := make(map[string]entry)
	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		kind := strings.ToLower(strings.TrimSpace(rec[0]))
		if first {
			first = false
			if kind == "tipo" {
				continue
			}
		}
		if !known[kind] {
			return nil, fmt.Errorf("fila %d: tipo %q desconocido (categoria|marca|talla|color)", line, rec[0])
		}
		e := entry{Kind: kind, Name: strings.TrimSpace(rec[1]), Prefix: sku.Normalize(rec[2])}
		if e.Name == "" || e.Prefix == "" {
			return nil, fmt.Errorf("fila %d: nombre y prefijo son requeridos", line)
		}
		if strings.Contains(e.Prefix, " ") {
			return nil, fmt.Errorf("fila %d: el prefijo %q no puede tener espacios", line, e.Prefix)
		}
		byKey[kind+"|"+e.Prefix] = e
	}

	out := make([]entry, 0, len(byKey))
	for _, e := range byKey {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Prefix < out[j].Prefix
	})
	return out, nil
}

func writeSQL(w io.Writer, source string, entries []entry) error {
	var b strings.Builder
	b.WriteString("-- Catálogo de prefijos SKU (marcas, categorías, tallas, colores)\n")
	fmt.Fprintf(&b, "-- Generado desde %s con cmd/seed_catalog\n", source)

	n := 0
	for _, t := range tables {
		var rows []entry
		for _, e := range entries {
			if e.Kind == t.kind {
				rows = append(rows, e)
			}
		}
		if len(rows) == 0 {
			continue
		}
		n++
		fmt.Fprintf(&b, "\n-- %d. %s\n", n, t.table)
		fmt.Fprintf(&b, "INSERT INTO %s (nombre, %s) VALUES\n", t.table, t.column)
		for i, e := range rows {
			sep := ","
			if i == len(rows)-1 {
				sep = ""
			}
			fmt.Fprintf(&b, "  ('%s', '%s')%s\n", escapeSQL(e.Name), escapeSQL(e.Prefix), sep)
		}
		fmt.Fprintf(&b, "ON CONFLICT (%s) DO UPDATE SET nombre = EXCLUDED.nombre;\n", t.column)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
