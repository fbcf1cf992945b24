package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

// previewRows is how many rows CheckFile prints.
const previewRows = 5

// CheckFile flattens a local order file and prints its shape, columns and first
// rows. Nothing is written to S3.
func CheckFile(path string, w io.Writer) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	order, err := DecodeOrder(content)
	if err != nil {
		return err
	}
	table, err := Flatten(order)
	if err != nil {
		return err
	}

	return PrintTable(w, table, previewRows)
}

// PrintTable writes shape, column names and up to limit rows of table.
func PrintTable(w io.Writer, table *Table, limit int) error {
	fmt.Fprintf(w, "shape: (%d, %d)\n", len(table.Rows), len(table.Columns))
	fmt.Fprintf(w, "columns: %s\n\n", strings.Join(table.Columns, ", "))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(table.Columns, "\t"))
	for i, row := range table.Rows {
		if i >= limit {
			break
		}
		cells := make([]string, len(table.Columns))
		for j, name := range table.Columns {
			if v := row[name]; v != nil {
				cells[j] = fmt.Sprint(v)
			} else {
				cells[j] = "NaN"
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	return tw.Flush()
}
