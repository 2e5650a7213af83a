package postgres

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-inventario/pkg/logger"
)

func TestMigrationSource_VersionesEnOrden(t *testing.T) {
	src, err := migrationSource()
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	next, err := src.Next(first)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)

	_, err = src.Next(next)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMigrationSource_LedgerTieneUpYDown(t *testing.T) {
	src, err := migrationSource()
	require.NoError(t, err)
	defer src.Close()

	up, ident, err := src.ReadUp(1)
	require.NoError(t, err)
	defer up.Close()
	assert.Equal(t, "ledger", ident)
	body, err := io.ReadAll(up)
	require.NoError(t, err)
	assert.Contains(t, string(body), "movimientos_stock_encadenado")

	down, _, err := src.ReadDown(1)
	require.NoError(t, err)
	defer down.Close()
	body, err = io.ReadAll(down)
	require.NoError(t, err)
	assert.Contains(t, string(body), "DROP TABLE IF EXISTS movimientos_stock")
}

func TestMigrateLogger_EscribeEnDebug(t *testing.T) {
	var buf bytes.Buffer
	l := migrateLogger{log: logger.New(logger.Config{Env: "production", Level: "debug", Output: &buf})}

	l.Printf("Start buffering %d/u %s\n", 1, "ledger")

	assert.False(t, l.Verbose())
	assert.Contains(t, buf.String(), `"level":"debug"`)
	assert.Contains(t, buf.String(), "Start buffering 1/u ledger")
}
