package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidInvestmentTypes_DerivedFromList(t *testing.T) {
	assert.Len(t, ValidInvestmentTypes, len(InvestmentTypes))
	for _, it := range InvestmentTypes {
		assert.True(t, ValidInvestmentTypes[string(it)], string(it))
	}
	assert.False(t, ValidInvestmentTypes["speculative"])
}
