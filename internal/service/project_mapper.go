package service

import (
	"github.com/mvbarbosa/capex/internal/domain"
	"github.com/mvbarbosa/capex/internal/liststore"
	"github.com/mvbarbosa/capex/internal/money"
)

// Project collection field names. Like the structure collections these are
// fixed by the existing store schema.
const (
	fieldDescription   = "description"
	fieldJustification = "justification"
	fieldSponsorArea   = "sponsorArea"
	fieldSponsor       = "sponsor"
	fieldRequester     = "requester"
	fieldCostCenter    = "costCenter"
	fieldInvestType    = "investmentType"
	fieldCategory      = "category"
	fieldApprovalYear  = "approvalYear"
	fieldAmountBRL     = "amountBrl"
	fieldStartDate     = "startDate"
	fieldEndDate       = "endDate"
	fieldKPIName       = "kpiName"
	fieldKPIBaseline   = "kpiBaseline"
	fieldKPITarget     = "kpiTarget"
	fieldAlignment     = "strategicAlignment"
	fieldPayback       = "paybackMonths"
	fieldNPV           = "npv"
	fieldBenefits      = "benefits"
	fieldRiskNotes     = "riskNotes"
	fieldPremises      = "premises"
	fieldRestrictions  = "restrictions"
	fieldPepCode       = "pepCode"
)

func projectFields(p *domain.Project) liststore.Record {
	fields := liststore.Record{
		liststore.FieldTitle:  p.Name,
		fieldDescription:      p.Description,
		fieldJustification:    p.Justification,
		fieldSponsorArea:      p.SponsorArea,
		fieldSponsor:          p.Sponsor,
		fieldRequester:        p.Requester,
		fieldCostCenter:       p.CostCenter,
		fieldInvestType:       p.InvestmentType,
		fieldCategory:         p.Category,
		fieldApprovalYear:     p.ApprovalYear,
		fieldAmountBRL:        p.BudgetAmount,
		fieldKPIName:          p.KPIName,
		fieldKPIBaseline:      p.KPIBaseline,
		fieldKPITarget:        p.KPITarget,
		fieldAlignment:        p.StrategicAlignment,
		fieldPayback:          p.PaybackMonths,
		fieldNPV:              p.NetPresentValue,
		fieldBenefits:         p.Benefits,
		fieldRiskNotes:        p.RiskNotes,
		fieldPremises:         p.Premises,
		fieldRestrictions:     p.Restrictions,
		fieldPepCode:          p.PepCode,
		liststore.FieldStatus: string(p.Status),
	}
	if p.ExpectedStart != nil {
		fields[fieldStartDate] = money.FormatDate(*p.ExpectedStart)
	}
	if p.ExpectedEnd != nil {
		fields[fieldEndDate] = money.FormatDate(*p.ExpectedEnd)
	}
	return fields
}

func projectFromRecord(r liststore.Record) *domain.Project {
	p := &domain.Project{
		Name:               r.StringField(liststore.FieldTitle),
		Description:        r.StringField(fieldDescription),
		Justification:      r.StringField(fieldJustification),
		SponsorArea:        r.StringField(fieldSponsorArea),
		Sponsor:            r.StringField(fieldSponsor),
		Requester:          r.StringField(fieldRequester),
		CostCenter:         r.StringField(fieldCostCenter),
		InvestmentType:     r.StringField(fieldInvestType),
		Category:           r.StringField(fieldCategory),
		ApprovalYear:       r.IntField(fieldApprovalYear),
		BudgetAmount:       r.DecimalField(fieldAmountBRL),
		KPIName:            r.StringField(fieldKPIName),
		KPIBaseline:        r.StringField(fieldKPIBaseline),
		KPITarget:          r.StringField(fieldKPITarget),
		StrategicAlignment: r.StringField(fieldAlignment),
		PaybackMonths:      r.IntField(fieldPayback),
		NetPresentValue:    r.DecimalField(fieldNPV),
		Benefits:           r.StringField(fieldBenefits),
		RiskNotes:          r.StringField(fieldRiskNotes),
		Premises:           r.StringField(fieldPremises),
		Restrictions:       r.StringField(fieldRestrictions),
		PepCode:            r.StringField(fieldPepCode),
		Status:             domain.ProjectStatus(r.StringField(liststore.FieldStatus)),
	}

	if id := r.ID(); id > 0 {
		p.StoreID = &id
	}
	if v := r.StringField(fieldStartDate); v != "" {
		if t, err := money.ParseDate(v); err == nil {
			p.ExpectedStart = &t
		}
	}
	if v := r.StringField(fieldEndDate); v != "" {
		if t, err := money.ParseDate(v); err == nil {
			p.ExpectedEnd = &t
		}
	}
	return p
}
