package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrMalformedInput is returned when an order document lacks the line item list
// or one of the meta fields copied onto every row.
var ErrMalformedInput = errors.New("malformed input")

// Flatten turns one order into a Table with one row per line item. Each row holds
// the item fields plus the order and customer meta fields. The column set is the
// union of all item keys followed by the meta columns; a row lacking an item key
// gets nil for that column. The order is not modified.
func Flatten(order map[string]any) (*Table, error) {
	raw, ok := order[recordPath]
	if !ok {
		return nil, fmt.Errorf("%w: key %q not found", ErrMalformedInput, recordPath)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q must be a list, got %T", ErrMalformedInput, recordPath, raw)
	}

	meta := make([]any, len(metaFields))
	for i, f := range metaFields {
		v, err := lookupMeta(order, f.Path)
		if err != nil {
			return nil, err
		}
		meta[i] = v
	}

	flatItems := make([]map[string]any, len(items))
	seen := make(map[string]bool)
	var itemColumns []string
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] must be an object, got %T", ErrMalformedInput, recordPath, i, item)
		}
		flat := make(map[string]any, len(obj))
		if err := flattenInto(flat, "", obj); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", recordPath, i, err)
		}
		for name := range flat {
			if isMetaColumn(name) {
				return nil, fmt.Errorf("%w: conflicting metadata name %q in %s[%d]", ErrMalformedInput, name, recordPath, i)
			}
			if !seen[name] {
				seen[name] = true
				itemColumns = append(itemColumns, name)
			}
		}
		flatItems[i] = flat
	}
	sort.Strings(itemColumns)

	table := &Table{
		Columns: append(itemColumns, MetaColumns()...),
		Rows:    make([]FlatRow, 0, len(flatItems)),
	}
	for _, flat := range flatItems {
		row := make(FlatRow, len(table.Columns))
		for _, name := range itemColumns {
			row[name] = flat[name] // nil when absent
		}
		for i, f := range metaFields {
			row[f.Column] = meta[i]
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// lookupMeta walks path through nested objects. Every step must exist.
func lookupMeta(order map[string]any, path []string) (any, error) {
	var current any = order
	for i, step := range path {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %q must be an object, got %T", ErrMalformedInput, strings.Join(path[:i], "."), current)
		}
		current, ok = obj[step]
		if !ok {
			return nil, fmt.Errorf("%w: required field %q not found", ErrMalformedInput, strings.Join(path[:i+1], "."))
		}
	}

	return current, nil
}

// flattenInto copies obj into dst, descending into nested objects and joining
// their keys with ".". Empty objects add no column. Arrays are kept as single
// values.
func flattenInto(dst map[string]any, prefix string, obj map[string]any) error {
	for key, value := range obj {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			if err := flattenInto(dst, name, nested); err != nil {
				return err
			}
			continue
		}
		if _, dup := dst[name]; dup {
			return fmt.Errorf("%w: duplicate column %q", ErrMalformedInput, name)
		}
		dst[name] = value
	}

	return nil
}
