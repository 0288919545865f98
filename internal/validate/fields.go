package validate

import (
	"strings"

	"github.com/mvbarbosa/capex/internal/domain"
)

// FieldKind tells the form layer what input widget a field needs and the
// validator which checks apply.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumeric
	FieldDate
	FieldYear
)

// FieldSpec describes one required project scalar. The registry below is the
// single source of truth for both validation order and form layout.
type FieldSpec struct {
	Key   string
	Label string
	Kind  FieldKind

	blank    func(p *domain.Project) bool
	negative func(p *domain.Project) bool
}

func textField(key, label string, get func(p *domain.Project) string) FieldSpec {
	return FieldSpec{
		Key:   key,
		Label: label,
		Kind:  FieldText,
		blank: func(p *domain.Project) bool { return strings.TrimSpace(get(p)) == "" },
	}
}

// RequiredFields lists every required project scalar in declared (form)
// order. Validation rule 1 walks this slice top to bottom.
var RequiredFields = []FieldSpec{
	textField("name", "Project name", func(p *domain.Project) string { return p.Name }),
	textField("description", "Description", func(p *domain.Project) string { return p.Description }),
	textField("justification", "Justification", func(p *domain.Project) string { return p.Justification }),
	textField("sponsorArea", "Sponsoring area", func(p *domain.Project) string { return p.SponsorArea }),
	textField("sponsor", "Sponsor", func(p *domain.Project) string { return p.Sponsor }),
	textField("requester", "Requester", func(p *domain.Project) string { return p.Requester }),
	textField("costCenter", "Cost center", func(p *domain.Project) string { return p.CostCenter }),
	textField("investmentType", "Investment type", func(p *domain.Project) string { return p.InvestmentType }),
	textField("category", "Category", func(p *domain.Project) string { return p.Category }),
	{
		Key:   "approvalYear",
		Label: "Approval year",
		Kind:  FieldYear,
		blank: func(p *domain.Project) bool { return p.ApprovalYear == 0 },
	},
	{
		Key:      "budgetAmount",
		Label:    "Budget amount",
		Kind:     FieldNumeric,
		blank:    func(p *domain.Project) bool { return p.BudgetAmount.IsZero() },
		negative: func(p *domain.Project) bool { return p.BudgetAmount.IsNegative() },
	},
	{
		Key:   "expectedStart",
		Label: "Expected start",
		Kind:  FieldDate,
		blank: func(p *domain.Project) bool { return p.ExpectedStart == nil },
	},
	{
		Key:   "expectedEnd",
		Label: "Expected end",
		Kind:  FieldDate,
		blank: func(p *domain.Project) bool { return p.ExpectedEnd == nil },
	},
	textField("kpiName", "KPI name", func(p *domain.Project) string { return p.KPIName }),
	textField("kpiBaseline", "KPI baseline", func(p *domain.Project) string { return p.KPIBaseline }),
	textField("kpiTarget", "KPI target", func(p *domain.Project) string { return p.KPITarget }),
	textField("strategicAlignment", "Strategic alignment", func(p *domain.Project) string { return p.StrategicAlignment }),
	{
		Key:      "paybackMonths",
		Label:    "Payback (months)",
		Kind:     FieldNumeric,
		blank:    func(p *domain.Project) bool { return p.PaybackMonths == 0 },
		negative: func(p *domain.Project) bool { return p.PaybackMonths < 0 },
	},
	{
		Key:      "netPresentValue",
		Label:    "Net present value",
		Kind:     FieldNumeric,
		blank:    func(p *domain.Project) bool { return p.NetPresentValue.IsZero() },
		negative: func(p *domain.Project) bool { return p.NetPresentValue.IsNegative() },
	},
	textField("benefits", "Expected benefits", func(p *domain.Project) string { return p.Benefits }),
	textField("riskNotes", "Risk notes", func(p *domain.Project) string { return p.RiskNotes }),
	textField("premises", "Premises", func(p *domain.Project) string { return p.Premises }),
	textField("restrictions", "Restrictions", func(p *domain.Project) string { return p.Restrictions }),
}
