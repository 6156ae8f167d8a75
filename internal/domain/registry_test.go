package domain

import (
	"testing"
	"time"
)

func TestMandatoryTypesForOrdinaryMonth(t *testing.T) {
	reg := NewRegistry()

	types := reg.MandatoryTypesFor(time.March)
	if len(types) != 9 {
		t.Fatalf("expected 9 monthly types got %d", len(types))
	}
	for _, typ := range types {
		c, ok := reg.Category(typ)
		if !ok || c != CategoryMonthlyMandatory {
			t.Fatalf("%s should be monthly mandatory", typ)
		}
	}
}

func TestMandatoryTypesForJanuaryIncludesAnnual(t *testing.T) {
	reg := NewRegistry()

	types := reg.MandatoryTypesFor(time.January)
	if len(types) != 11 {
		t.Fatalf("expected 11 types in January got %d", len(types))
	}

	found := false
	for _, typ := range types {
		if typ == TypeAnnualReturn {
			found = true
		}
	}
	if !found {
		t.Fatalf("ANNUAL_RETURN missing from January set")
	}
}

func TestMissingTypesExactChecklist(t *testing.T) {
	reg := NewRegistry()

	present := reg.MandatoryTypesFor(time.March)
	if missing := reg.MissingTypes(time.March, present); len(missing) != 0 {
		t.Fatalf("complete set reported missing: %v", missing)
	}

	// drop the bank statement
	var withoutBank []DocumentType
	for _, typ := range present {
		if typ != TypeBankStatement {
			withoutBank = append(withoutBank, typ)
		}
	}

	missing := reg.MissingTypes(time.March, withoutBank)
	if len(missing) != 1 || missing[0] != TypeBankStatement {
		t.Fatalf("expected [BANK_STATEMENT] got %v", missing)
	}
}

func TestKnownRejectsForeignType(t *testing.T) {
	reg := NewRegistry()

	if !reg.Known(TypeGSTReturn) {
		t.Fatalf("GST_RETURN should be known")
	}
	if reg.Known(DocumentType("UFO_SIGHTING")) {
		t.Fatalf("unknown type accepted")
	}
}
