package main

// recordPath is the order key holding the line items.
const recordPath = "products"

const customerField = "customer"

// metaField is an order-level value copied onto every row. Path is the location
// in the order document, Column the name it gets in the output.
type metaField struct {
	Path   []string
	Column string
}

var metaFields = []metaField{
	{Path: []string{"order_id"}, Column: "order_id"},
	{Path: []string{"order_date"}, Column: "order_date"},
	{Path: []string{"total_amount"}, Column: "total_amount"},
	{Path: []string{customerField, "customer_id"}, Column: "customer.customer_id"},
	{Path: []string{customerField, "name"}, Column: "customer.name"},
	{Path: []string{customerField, "email"}, Column: "customer.email"},
	{Path: []string{customerField, "address"}, Column: "customer.address"},
}

// MetaColumns returns the output names of the meta fields in their fixed order.
func MetaColumns() []string {
	columns := make([]string, len(metaFields))
	for i, f := range metaFields {
		columns[i] = f.Column
	}

	return columns
}

func isMetaColumn(name string) bool {
	for _, f := range metaFields {
		if f.Column == name {
			return true
		}
	}

	return false
}
