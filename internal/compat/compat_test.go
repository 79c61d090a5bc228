package compat

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/lexcraft/lexcraft/internal/errors"
	"github.com/lexcraft/lexcraft/internal/models"
)

type fakeCatalog map[string]*models.ClauseTemplate

func (f fakeCatalog) GetClauseTemplate(clauseType string) *models.ClauseTemplate {
	return f[clauseType]
}

func testCatalog() fakeCatalog {
	return fakeCatalog{
		"pet_agreement": {
			ClauseType:       "pet_agreement",
			IncompatibleWith: []string{"no_pets"},
		},
		"no_pets": {
			ClauseType:       "no_pets",
			IncompatibleWith: []string{"pet_agreement"},
		},
		"parking": {
			ClauseType: "parking",
		},
	}
}

func TestResolveCompatibleClausesOrderSensitive(t *testing.T) {
	cat := testCatalog()

	// pet_agreement first: it wins, no_pets is rejected
	res := ResolveCompatibleClauses([]string{"pet_agreement", "no_pets", "parking"}, nil, cat)
	want := []string{"pet_agreement", "parking"}
	if diff := cmp.Diff(want, res.Accepted); diff != "" {
		t.Errorf("accepted mismatch (-want +got):\n%s", diff)
	}

	var inc *apperrors.IncompatibleClauseError
	if !errors.As(res.Rejected["no_pets"], &inc) {
		t.Fatalf("rejection type = %T, want *IncompatibleClauseError", res.Rejected["no_pets"])
	}
	if inc.ConflictsWith != "pet_agreement" {
		t.Errorf("conflicts with %q, want pet_agreement", inc.ConflictsWith)
	}

	// Reversed order flips the outcome
	res = ResolveCompatibleClauses([]string{"no_pets", "pet_agreement", "parking"}, nil, cat)
	want = []string{"no_pets", "parking"}
	if diff := cmp.Diff(want, res.Accepted); diff != "" {
		t.Errorf("reversed accepted mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveCompatibleClausesAgainstExisting(t *testing.T) {
	cat := testCatalog()
	existing := map[string]bool{"no_pets": true}

	res := ResolveCompatibleClauses([]string{"pet_agreement"}, existing, cat)
	if len(res.Accepted) != 0 {
		t.Errorf("accepted = %v, want none", res.Accepted)
	}
	if _, rejected := res.Rejected["pet_agreement"]; !rejected {
		t.Error("pet_agreement should be rejected against existing no_pets")
	}
}

func TestResolveCompatibleClausesUnknownType(t *testing.T) {
	res := ResolveCompatibleClauses([]string{"nonexistent"}, nil, testCatalog())

	var cnf *apperrors.ClauseTemplateNotFoundError
	if !errors.As(res.Rejected["nonexistent"], &cnf) {
		t.Fatalf("rejection type = %T, want *ClauseTemplateNotFoundError", res.Rejected["nonexistent"])
	}
}

func TestResolveCompatibleClausesEmptyRequest(t *testing.T) {
	res := ResolveCompatibleClauses(nil, nil, testCatalog())
	if len(res.Accepted) != 0 || len(res.Rejected) != 0 {
		t.Errorf("empty request produced accepted=%v rejected=%v", res.Accepted, res.Rejected)
	}
}
