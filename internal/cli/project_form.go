package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/mvbarbosa/capex/internal/domain"
	"github.com/mvbarbosa/capex/internal/money"
	"github.com/mvbarbosa/capex/internal/session"
)

// projectForm buffers the scalar fields as strings for huh and applies
// them to the session's project on completion. Page layout follows the
// required-field declaration order.
type projectForm struct {
	name          string
	description   string
	justification string
	sponsorArea   string
	sponsor       string
	requester     string
	costCenter    string

	investmentType string
	category       string
	approvalYear   string
	budgetAmount   string
	expectedStart  string
	expectedEnd    string

	kpiName     string
	kpiBaseline string
	kpiTarget   string

	strategicAlignment string
	paybackMonths      string
	npv                string
	benefits           string
	riskNotes          string
	premises           string
	restrictions       string
}

func newProjectForm(p *domain.Project) *projectForm {
	f := &projectForm{
		name:               p.Name,
		description:        p.Description,
		justification:      p.Justification,
		sponsorArea:        p.SponsorArea,
		sponsor:            p.Sponsor,
		requester:          p.Requester,
		costCenter:         p.CostCenter,
		investmentType:     p.InvestmentType,
		category:           p.Category,
		kpiName:            p.KPIName,
		kpiBaseline:        p.KPIBaseline,
		kpiTarget:          p.KPITarget,
		strategicAlignment: p.StrategicAlignment,
		benefits:           p.Benefits,
		riskNotes:          p.RiskNotes,
		premises:           p.Premises,
		restrictions:       p.Restrictions,
	}
	if p.ApprovalYear > 0 {
		f.approvalYear = strconv.Itoa(p.ApprovalYear)
	}
	if !p.BudgetAmount.IsZero() {
		f.budgetAmount = p.BudgetAmount.String()
	}
	if p.PaybackMonths > 0 {
		f.paybackMonths = strconv.Itoa(p.PaybackMonths)
	}
	if !p.NetPresentValue.IsZero() {
		f.npv = p.NetPresentValue.String()
	}
	if p.ExpectedStart != nil {
		f.expectedStart = money.FormatDate(*p.ExpectedStart)
	}
	if p.ExpectedEnd != nil {
		f.expectedEnd = money.FormatDate(*p.ExpectedEnd)
	}
	return f
}

func (f *projectForm) groups() []*huh.Group {
	investmentOptions := make([]huh.Option[string], 0, len(domain.InvestmentTypes))
	for _, it := range domain.InvestmentTypes {
		investmentOptions = append(investmentOptions, huh.NewOption(investmentLabel(it), string(it)))
	}

	return []*huh.Group{
		huh.NewGroup(
			huh.NewInput().Title("Project name").Value(&f.name),
			huh.NewText().Title("Description").Value(&f.description),
			huh.NewText().Title("Justification").Value(&f.justification),
			huh.NewInput().Title("Sponsoring area").Value(&f.sponsorArea),
			huh.NewInput().Title("Sponsor").Value(&f.sponsor),
			huh.NewInput().Title("Requester").Value(&f.requester),
			huh.NewInput().Title("Cost center").Value(&f.costCenter),
		).Title("General"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Investment type").Options(investmentOptions...).Value(&f.investmentType),
			huh.NewInput().Title("Category").Value(&f.category),
			huh.NewInput().Title("Approval year").Placeholder("2026").Value(&f.approvalYear).Validate(validateYear),
			amountInput("Budget amount (R$)", &f.budgetAmount),
			dateInput("Expected start (YYYY-MM-DD)", &f.expectedStart, false),
			dateInput("Expected end (YYYY-MM-DD)", &f.expectedEnd, false),
		).Title("Financials"),
		huh.NewGroup(
			huh.NewInput().Title("KPI name").Value(&f.kpiName),
			huh.NewInput().Title("KPI baseline").Value(&f.kpiBaseline),
			huh.NewInput().Title("KPI target").Value(&f.kpiTarget),
			huh.NewInput().Title("Payback (months)").Value(&f.paybackMonths),
			amountInput("Net present value (R$)", &f.npv),
		).Title("Indicators"),
		huh.NewGroup(
			huh.NewText().Title("Strategic alignment").Value(&f.strategicAlignment),
			huh.NewText().Title("Expected benefits").Value(&f.benefits),
			huh.NewText().Title("Risk notes").Value(&f.riskNotes),
			huh.NewText().Title("Premises").Value(&f.premises),
			huh.NewText().Title("Restrictions").Value(&f.restrictions),
		).Title("Narrative"),
	}
}

// apply writes the buffered values back into the session, re-deriving the
// budget tier last so section clearing sees the final amount.
func (f *projectForm) apply(s *session.Session) {
	p := s.Project
	p.Name = strings.TrimSpace(f.name)
	p.Description = strings.TrimSpace(f.description)
	p.Justification = strings.TrimSpace(f.justification)
	p.SponsorArea = strings.TrimSpace(f.sponsorArea)
	p.Sponsor = strings.TrimSpace(f.sponsor)
	p.Requester = strings.TrimSpace(f.requester)
	p.CostCenter = strings.TrimSpace(f.costCenter)
	p.InvestmentType = f.investmentType
	p.Category = strings.TrimSpace(f.category)
	p.ApprovalYear, _ = strconv.Atoi(strings.TrimSpace(f.approvalYear))
	p.KPIName = strings.TrimSpace(f.kpiName)
	p.KPIBaseline = strings.TrimSpace(f.kpiBaseline)
	p.KPITarget = strings.TrimSpace(f.kpiTarget)
	p.StrategicAlignment = strings.TrimSpace(f.strategicAlignment)
	p.PaybackMonths, _ = strconv.Atoi(strings.TrimSpace(f.paybackMonths))
	p.NetPresentValue = money.ParseBRLOrZero(f.npv)
	p.Benefits = strings.TrimSpace(f.benefits)
	p.RiskNotes = strings.TrimSpace(f.riskNotes)
	p.Premises = strings.TrimSpace(f.premises)
	p.Restrictions = strings.TrimSpace(f.restrictions)

	if t, err := money.ParseDate(strings.TrimSpace(f.expectedStart)); err == nil {
		p.ExpectedStart = &t
	} else {
		p.ExpectedStart = nil
	}
	if t, err := money.ParseDate(strings.TrimSpace(f.expectedEnd)); err == nil {
		p.ExpectedEnd = &t
	} else {
		p.ExpectedEnd = nil
	}

	s.ApplyBudget(money.ParseBRLOrZero(f.budgetAmount))
}

func investmentLabel(it domain.InvestmentType) string {
	s := string(it)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// runProjectForm edits the session's project in place.
func runProjectForm(s *session.Session) error {
	f := newProjectForm(s.Project)
	if err := runForm(f.groups()...); err != nil {
		return err
	}
	f.apply(s)
	return nil
}

// runPepSelect asks for the project-level PEP when the selector is shown.
func runPepSelect(s *session.Session) error {
	if !s.Visibility.PepSelector || s.Catalog.Len() == 0 {
		return nil
	}

	options := make([]huh.Option[string], 0, s.Catalog.Len()+1)
	options = append(options, huh.NewOption("(none)", ""))
	for _, p := range s.Catalog.Elements() {
		label := p.Code + " — " + money.FormatBRL(p.Amount)
		options = append(options, huh.NewOption(label, p.Code))
	}

	return runForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("PEP element").
			Options(options...).
			Value(&s.Project.PepCode),
	))
}
