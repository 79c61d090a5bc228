package models

import (
	"testing"
	"time"
)

func TestCloneSharesNoMutableState(t *testing.T) {
	now := time.Now()
	original := &Contract{
		ID:       "c1",
		Province: "Ontario",
		Sections: map[string]map[string]any{
			"rent": {"monthly_rent": 2000, "extras": []any{"hydro"}},
		},
		SpecialClauses: []ClauseInstance{
			{Type: "pet_agreement", Variables: map[string]any{"pet_type": "cat"}, AddedAt: now},
		},
		History:        []ModificationRecord{{Version: 2, Changes: []string{"set rent.monthly_rent"}}},
		CurrentVersion: 2,
		CreatedAt:      now,
	}

	clone := original.Clone()
	clone.Sections["rent"]["monthly_rent"] = 9999
	clone.Sections["rent"]["extras"].([]any)[0] = "water"
	clone.SpecialClauses[0].Variables["pet_type"] = "dog"
	clone.History[0].Changes[0] = "tampered"

	if original.Sections["rent"]["monthly_rent"] != 2000 {
		t.Error("clone shares section map with original")
	}
	if original.Sections["rent"]["extras"].([]any)[0] != "hydro" {
		t.Error("clone shares nested slice with original")
	}
	if original.SpecialClauses[0].Variables["pet_type"] != "cat" {
		t.Error("clone shares clause variables with original")
	}
	if original.History[0].Changes[0] != "set rent.monthly_rent" {
		t.Error("clone shares history with original")
	}
}

func TestFindClauseAndClauseTypes(t *testing.T) {
	c := &Contract{SpecialClauses: []ClauseInstance{
		{Type: "pet_agreement"},
		{Type: "parking"},
	}}

	if idx := c.FindClause("parking"); idx != 1 {
		t.Errorf("FindClause(parking) = %d, want 1", idx)
	}
	if idx := c.FindClause("absent"); idx != -1 {
		t.Errorf("FindClause(absent) = %d, want -1", idx)
	}

	types := c.ClauseTypes()
	if !types["pet_agreement"] || !types["parking"] || len(types) != 2 {
		t.Errorf("ClauseTypes = %v", types)
	}
}

func TestDisplayNameFallback(t *testing.T) {
	withTitle := &ClauseTemplate{ClauseType: "pet_agreement", Title: "Pets Welcome"}
	if got := withTitle.DisplayName(); got != "Pets Welcome" {
		t.Errorf("DisplayName = %q, want title", got)
	}

	bare := &ClauseTemplate{ClauseType: "pet_agreement"}
	if got := bare.DisplayName(); got != "Pet Agreement" {
		t.Errorf("DisplayName = %q, want Pet Agreement", got)
	}
}

func TestVariableTypeDefaults(t *testing.T) {
	c := &ClauseTemplate{
		ClauseType: "x",
		Variables: []VariableSpec{
			{Name: "amount", Type: "currency"},
			{Name: "note"},
		},
	}
	if got := c.VariableType("amount"); got != "currency" {
		t.Errorf("amount type = %q", got)
	}
	if got := c.VariableType("note"); got != "text" {
		t.Errorf("undeclared-type variable = %q, want text", got)
	}
	if got := c.VariableType("missing"); got != "text" {
		t.Errorf("unknown variable = %q, want text", got)
	}
}
