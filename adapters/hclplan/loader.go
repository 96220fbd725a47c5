// Package hclplan loads subscription and budget-category snapshots from
// HCL plan files. The adapter only deserializes; all validation beyond
// syntax stays in the core, which reports data defects as quality
// warnings instead of refusing the file.
package hclplan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"budgetcast/core/types"
	"budgetcast/internal/errors"
)

// Plan is the decoded contents of one or more plan files.
type Plan struct {
	// Subscriptions in declaration order
	Subscriptions []*types.Subscription

	// Categories in declaration order
	Categories []*types.BudgetCategory
}

// Loader parses .hcl plan files.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a plan loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

var planSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "subscription", LabelNames: []string{"id"}},
		{Type: "category", LabelNames: []string{"id"}},
	},
}

var variablePricingSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "average"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "change"},
	},
}

// LoadDir parses every .hcl file in a directory (non-recursive, sorted
// by name so declaration order is stable) and merges the results.
func (l *Loader) LoadDir(dir string) (*Plan, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.TypeInput, "reading plan directory", err)
	}

	plan := &Plan{}
	found := false
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".hcl") {
			continue
		}
		found = true
		filePlan, err := l.LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		plan.Subscriptions = append(plan.Subscriptions, filePlan.Subscriptions...)
		plan.Categories = append(plan.Categories, filePlan.Categories...)
	}
	if !found {
		return nil, errors.Newf(errors.TypeNotFound, "no .hcl plan files in %s", dir)
	}
	return plan, nil
}

// LoadFile parses a single plan file.
func (l *Loader) LoadFile(path string) (*Plan, error) {
	src, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrap(errors.TypeInput, "reading plan file", err)
	}
	return l.Parse(src, path)
}

// Parse decodes plan source. The filename is used for diagnostics only.
func (l *Loader) Parse(src []byte, filename string) (*Plan, error) {
	file, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Parsing("parsing plan file", diags)
	}

	content, diags := file.Body.Content(planSchema)
	if diags.HasErrors() {
		return nil, errors.Parsing("unexpected plan structure", diags)
	}

	plan := &Plan{}
	var decodeDiags hcl.Diagnostics

	for _, block := range content.Blocks {
		switch block.Type {
		case "subscription":
			sub := decodeSubscription(block, &decodeDiags)
			plan.Subscriptions = append(plan.Subscriptions, sub)
		case "category":
			cat := decodeCategory(block, &decodeDiags)
			plan.Categories = append(plan.Categories, cat)
		}
	}

	if decodeDiags.HasErrors() {
		return nil, errors.Parsing("decoding plan blocks", decodeDiags)
	}
	return plan, nil
}

func decodeSubscription(block *hcl.Block, diags *hcl.Diagnostics) *types.Subscription {
	attrs, blocks := splitBody(block.Body, diags)

	sub := &types.Subscription{
		ID:               block.Labels[0],
		Name:             attrString(attrs, "name", diags),
		Price:            attrDecimal(attrs, "price", diags),
		Frequency:        types.Frequency(attrString(attrs, "frequency", diags)),
		AnchorDate:       attrDate(attrs, "anchor", diags),
		Status:           types.Status(attrString(attrs, "status", diags)),
		Category:         attrString(attrs, "category", diags),
		BudgetCategoryID: attrString(attrs, "budget_category", diags),
	}
	if sub.Name == "" {
		sub.Name = sub.ID
	}
	if sub.Status == "" {
		sub.Status = types.StatusActive
	}

	for _, child := range blocks {
		if child.Type != "variable_pricing" {
			*diags = append(*diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unexpected block",
				Detail:   fmt.Sprintf("subscription %q does not allow %q blocks", sub.ID, child.Type),
				Subject:  child.DefRange.Ptr(),
			})
			continue
		}
		sub.VariablePricing = decodeVariablePricing(child, diags)
	}

	return sub
}

func decodeVariablePricing(block *hcl.Block, diags *hcl.Diagnostics) *types.VariablePricing {
	content, d := block.Body.Content(variablePricingSchema)
	*diags = append(*diags, d...)

	vp := &types.VariablePricing{
		AveragePrice: attrDecimal(content.Attributes, "average", diags),
	}
	for _, child := range content.Blocks {
		attrs, _ := splitBody(child.Body, diags)
		vp.UpcomingChanges = append(vp.UpcomingChanges, types.PriceChange{
			Date:        attrDate(attrs, "date", diags),
			Cost:        attrDecimal(attrs, "cost", diags),
			Description: attrString(attrs, "description", diags),
		})
	}
	return vp
}

func decodeCategory(block *hcl.Block, diags *hcl.Diagnostics) *types.BudgetCategory {
	attrs, _ := splitBody(block.Body, diags)

	cat := &types.BudgetCategory{
		ID:               block.Labels[0],
		Name:             attrString(attrs, "name", diags),
		WeeklyAllocation: attrDecimal(attrs, "weekly_allocation", diags),
		CurrentBalance:   attrDecimal(attrs, "balance", diags),
		Priority:         attrInt(attrs, "priority", diags),
		MinimumBuffer:    attrDecimal(attrs, "minimum_buffer", diags),
		AutoFund:         attrBool(attrs, "auto_fund", diags),
	}
	if cat.Name == "" {
		cat.Name = cat.ID
	}
	return cat
}

// splitBody returns a body's attributes and nested blocks without a
// fixed schema, so optional attributes stay optional.
func splitBody(body hcl.Body, diags *hcl.Diagnostics) (hcl.Attributes, hcl.Blocks) {
	syn, ok := body.(*hclsyntax.Body)
	if !ok {
		// Non-native bodies (JSON plans) carry no nested blocks we use.
		attrs, d := body.JustAttributes()
		*diags = append(*diags, d...)
		return attrs, nil
	}

	attrs := make(hcl.Attributes, len(syn.Attributes))
	for name, attr := range syn.Attributes {
		attrs[name] = attr.AsHCLAttribute()
	}

	blocks := make(hcl.Blocks, 0, len(syn.Blocks))
	for _, block := range syn.Blocks {
		blocks = append(blocks, block.AsHCLBlock())
	}
	return attrs, blocks
}
