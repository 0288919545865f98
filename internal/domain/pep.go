package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// PEP is a budget element from the external catalog: a code carrying a
// pre-authorized amount. The catalog is read-only for this system and
// referenced by code, not by store id.
type PEP struct {
	Code   string
	Amount decimal.Decimal
}

// Catalog is an immutable snapshot of the PEP list, deduplicated and sorted
// for presentation.
type Catalog struct {
	elements []PEP
	byCode   map[string]PEP
}

// NewCatalog builds a catalog from raw entries. On duplicate codes the first
// occurrence wins. Elements are sorted lexicographically by code.
func NewCatalog(elements []PEP) *Catalog {
	byCode := make(map[string]PEP, len(elements))
	var unique []PEP
	for _, p := range elements {
		if _, seen := byCode[p.Code]; seen {
			continue
		}
		byCode[p.Code] = p
		unique = append(unique, p)
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i].Code < unique[j].Code })

	return &Catalog{elements: unique, byCode: byCode}
}

// Elements returns the sorted elements.
func (c *Catalog) Elements() []PEP {
	return c.elements
}

// Lookup finds a PEP by code.
func (c *Catalog) Lookup(code string) (PEP, bool) {
	p, ok := c.byCode[code]
	return p, ok
}

// Len returns the number of distinct codes.
func (c *Catalog) Len() int {
	return len(c.elements)
}
