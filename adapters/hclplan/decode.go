// Package hclplan - Safe cty value conversion
// Attribute values are never blindly passed through; every conversion
// states what it accepts and reports what it rejected.
package hclplan

import (
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"

	"budgetcast/core/types"
)

const dateLayout = "2006-01-02"

// attrString decodes a string attribute; absent attributes yield "".
func attrString(attrs hcl.Attributes, name string, diags *hcl.Diagnostics) string {
	attr, ok := attrs[name]
	if !ok {
		return ""
	}
	val, d := attr.Expr.Value(nil)
	*diags = append(*diags, d...)
	if d.HasErrors() || val.IsNull() || val.Type() != cty.String {
		if !d.HasErrors() && val.Type() != cty.String {
			*diags = append(*diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid attribute type",
				Detail:   name + " must be a string",
				Subject:  attr.Range.Ptr(),
			})
		}
		return ""
	}
	return val.AsString()
}

// attrDecimal decodes a money attribute from either a number literal or
// a quoted decimal string. Quoted strings are the lossless form; number
// literals go through big.Float without a float64 round-trip.
func attrDecimal(attrs hcl.Attributes, name string, diags *hcl.Diagnostics) decimal.Decimal {
	attr, ok := attrs[name]
	if !ok {
		return decimal.Zero
	}
	val, d := attr.Expr.Value(nil)
	*diags = append(*diags, d...)
	if d.HasErrors() || val.IsNull() {
		return decimal.Zero
	}

	var raw string
	switch val.Type() {
	case cty.String:
		raw = val.AsString()
	case cty.Number:
		raw = val.AsBigFloat().Text('f', -1)
	default:
		*diags = append(*diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid attribute type",
			Detail:   name + " must be a number or decimal string",
			Subject:  attr.Range.Ptr(),
		})
		return decimal.Zero
	}

	dec, err := decimal.NewFromString(raw)
	if err != nil {
		*diags = append(*diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid decimal value",
			Detail:   name + ": " + err.Error(),
			Subject:  attr.Range.Ptr(),
		})
		return decimal.Zero
	}
	return dec
}

// attrInt decodes an integer attribute; absent attributes yield 0.
func attrInt(attrs hcl.Attributes, name string, diags *hcl.Diagnostics) int {
	attr, ok := attrs[name]
	if !ok {
		return 0
	}
	val, d := attr.Expr.Value(nil)
	*diags = append(*diags, d...)
	if d.HasErrors() || val.IsNull() || val.Type() != cty.Number {
		return 0
	}
	n, _ := val.AsBigFloat().Int64()
	return int(n)
}

// attrBool decodes a boolean attribute; absent attributes yield false.
func attrBool(attrs hcl.Attributes, name string, diags *hcl.Diagnostics) bool {
	attr, ok := attrs[name]
	if !ok {
		return false
	}
	val, d := attr.Expr.Value(nil)
	*diags = append(*diags, d...)
	if d.HasErrors() || val.IsNull() || val.Type() != cty.Bool {
		return false
	}
	return val.True()
}

// attrDate decodes a "2006-01-02" date attribute, normalized to
// midnight UTC. Absent attributes yield the zero time.
func attrDate(attrs hcl.Attributes, name string, diags *hcl.Diagnostics) time.Time {
	raw := attrString(attrs, name, diags)
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		attr := attrs[name]
		*diags = append(*diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid date",
			Detail:   name + " must be YYYY-MM-DD: " + err.Error(),
			Subject:  attr.Range.Ptr(),
		})
		return time.Time{}
	}
	return types.NormalizeDate(t)
}
