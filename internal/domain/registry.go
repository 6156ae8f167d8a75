package domain

import (
	"sort"
	"time"
)

// DocumentType identifies one category in the compliance catalog.
type DocumentType string

const (
	TypeGSTReturn          DocumentType = "GST_RETURN"
	TypePFChallan          DocumentType = "PF_CHALLAN"
	TypeESIChallan         DocumentType = "ESI_CHALLAN"
	TypePTChallan          DocumentType = "PT_CHALLAN"
	TypeTDSChallan         DocumentType = "TDS_CHALLAN"
	TypeWageRegister       DocumentType = "WAGE_REGISTER"
	TypeAttendanceRegister DocumentType = "ATTENDANCE_REGISTER"
	TypeBankStatement      DocumentType = "BANK_STATEMENT"
	TypeMusterRoll         DocumentType = "MUSTER_ROLL"

	TypeAnnualReturn  DocumentType = "ANNUAL_RETURN"
	TypeBonusRegister DocumentType = "BONUS_REGISTER"

	TypeAgreementCopy   DocumentType = "AGREEMENT_COPY"
	TypeInsurancePolicy DocumentType = "INSURANCE_POLICY"
)

// TypeCategory classifies how often a document type is due.
type TypeCategory string

const (
	CategoryMonthlyMandatory TypeCategory = "monthly_mandatory"
	CategoryAnnualMandatory  TypeCategory = "annual_mandatory"
	CategoryOneTimeOptional  TypeCategory = "one_time_optional"
)

// Registry is the static catalog of document types and the rule for
// deriving the mandatory set for a given calendar month.
type Registry struct {
	categories map[DocumentType]TypeCategory
}

// NewRegistry builds the standard compliance catalog.
func NewRegistry() *Registry {
	r := &Registry{categories: map[DocumentType]TypeCategory{}}

	monthly := []DocumentType{
		TypeGSTReturn,
		TypePFChallan,
		TypeESIChallan,
		TypePTChallan,
		TypeTDSChallan,
		TypeWageRegister,
		TypeAttendanceRegister,
		TypeBankStatement,
		TypeMusterRoll,
	}
	for _, t := range monthly {
		r.categories[t] = CategoryMonthlyMandatory
	}

	annual := []DocumentType{TypeAnnualReturn, TypeBonusRegister}
	for _, t := range annual {
		r.categories[t] = CategoryAnnualMandatory
	}

	optional := []DocumentType{TypeAgreementCopy, TypeInsurancePolicy}
	for _, t := range optional {
		r.categories[t] = CategoryOneTimeOptional
	}

	return r
}

// Known reports whether t is part of the catalog.
func (r *Registry) Known(t DocumentType) bool {
	_, ok := r.categories[t]
	return ok
}

// Category returns the catalog classification for t.
func (r *Registry) Category(t DocumentType) (TypeCategory, bool) {
	c, ok := r.categories[t]
	return c, ok
}

// MandatoryTypesFor returns the mandatory set for the given month: the
// monthly set, plus the annual set in January only.
func (r *Registry) MandatoryTypesFor(month time.Month) []DocumentType {
	var out []DocumentType
	for t, c := range r.categories {
		switch c {
		case CategoryMonthlyMandatory:
			out = append(out, t)
		case CategoryAnnualMandatory:
			if month == time.January {
				out = append(out, t)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MissingTypes returns the mandatory types for month that are absent
// from present, sorted for stable reporting.
func (r *Registry) MissingTypes(month time.Month, present []DocumentType) []DocumentType {
	have := make(map[DocumentType]bool, len(present))
	for _, t := range present {
		have[t] = true
	}

	var missing []DocumentType
	for _, t := range r.MandatoryTypesFor(month) {
		if !have[t] {
			missing = append(missing, t)
		}
	}
	return missing
}
