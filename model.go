package main

import "fmt"

type S3ObjectInfo struct {
	Bucket string
	Key    string
}

func (o S3ObjectInfo) URI() string {
	return fmt.Sprintf("s3://%s/%s", o.Bucket, o.Key)
}

// FlatRow maps a column name to its value. Every column of the owning Table is
// present; a nil value marks a field the line item did not carry.
type FlatRow map[string]any

// Table is the tabular form of one order: one row per line item, all rows
// aligned to the same column set.
type Table struct {
	Columns []string
	Rows    []FlatRow
}

type TransferResult struct {
	RunID       string `json:"run_id"`
	Source      string `json:"source"`
	Destination string `json:"destination,omitempty"`
	Rows        int    `json:"rows"`
	Columns     int    `json:"columns"`
	Skipped     bool   `json:"skipped,omitempty"`
}
