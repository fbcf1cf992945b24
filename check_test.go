package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFile(t *testing.T) {
	t.Run("Prints shape, columns and rows", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "orders_etl.json")
		require.NoError(t, os.WriteFile(path, []byte(sampleOrder), 0o600))

		var out bytes.Buffer
		require.NoError(t, CheckFile(path, &out))

		lines := strings.Split(out.String(), "\n")
		assert.Equal(t, "shape: (2, 9)", lines[0])
		assert.Equal(t, "columns: qty, sku, order_id, order_date, total_amount, customer.customer_id, customer.name, customer.email, customer.address", lines[1])
		assert.Equal(t, []string{"qty", "sku", "order_id"}, strings.Fields(lines[3])[:3])
		assert.Equal(t, []string{"2", "X", "O1", "2024-01-01", "19.98", "C1", "A", "a@x.com", "1", "Rd"}, strings.Fields(lines[4]))
	})

	t.Run("Missing file", func(t *testing.T) {
		err := CheckFile(filepath.Join(t.TempDir(), "missing.json"), &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read")
	})

	t.Run("Malformed order", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"order_id": "O1"}`), 0o600))

		err := CheckFile(path, &bytes.Buffer{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedInput)
	})
}

func TestPrintTable(t *testing.T) {
	table := &Table{Columns: []string{"sku", "qty"}}
	for i := 0; i < 8; i++ {
		table.Rows = append(table.Rows, FlatRow{"sku": "X", "qty": nil})
	}

	var out bytes.Buffer
	require.NoError(t, PrintTable(&out, table, 3))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Equal(t, "shape: (8, 2)", lines[0])
	// shape, columns, blank line, header and three rows
	require.Len(t, lines, 7)
	assert.Equal(t, []string{"X", "NaN"}, strings.Fields(lines[6]))
}
