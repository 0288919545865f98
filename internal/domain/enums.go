package domain

type ProjectStatus string

const (
	StatusDraft     ProjectStatus = "draft"
	StatusSubmitted ProjectStatus = "submitted"
	StatusApproved  ProjectStatus = "approved"
	StatusRejected  ProjectStatus = "rejected"
)

type InvestmentType string

const (
	InvestmentExpansion     InvestmentType = "expansion"
	InvestmentModernization InvestmentType = "modernization"
	InvestmentReplacement   InvestmentType = "replacement"
	InvestmentRegulatory    InvestmentType = "regulatory"
)

// InvestmentTypes lists the accepted types in presentation order. The form
// builds its options from this slice.
var InvestmentTypes = []InvestmentType{
	InvestmentExpansion,
	InvestmentModernization,
	InvestmentReplacement,
	InvestmentRegulatory,
}

// ValidInvestmentTypes is the membership set the validator checks against.
var ValidInvestmentTypes = func() map[string]bool {
	m := make(map[string]bool, len(InvestmentTypes))
	for _, t := range InvestmentTypes {
		m[string(t)] = true
	}
	return m
}()
