package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project is the scalar portion of a CAPEX proposal form. Exactly one
// instance exists per form session. StoreID is nil until the store assigns
// an identity on the first successful create.
type Project struct {
	StoreID *int

	Name          string
	Description   string
	Justification string
	SponsorArea   string
	Sponsor       string
	Requester     string
	CostCenter    string

	InvestmentType string
	Category       string
	ApprovalYear   int
	BudgetAmount   decimal.Decimal

	ExpectedStart *time.Time
	ExpectedEnd   *time.Time

	KPIName     string
	KPIBaseline string
	KPITarget   string

	StrategicAlignment string
	PaybackMonths      int
	NetPresentValue    decimal.Decimal

	Benefits     string
	RiskNotes    string
	Premises     string
	Restrictions string

	// PepCode is the project-level budget-element selection, used only when
	// the budget sits below the milestone threshold.
	PepCode string

	Status ProjectStatus
}

// Persisted reports whether the store has assigned this project an identity.
func (p *Project) Persisted() bool {
	return p.StoreID != nil && *p.StoreID > 0
}
