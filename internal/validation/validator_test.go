package validation

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/lexcraft/lexcraft/internal/errors"
	"github.com/lexcraft/lexcraft/internal/models"
)

func TestGenerateRequestSchemaValid(t *testing.T) {
	v := NewValidator()
	result := v.Validate("generate_request", map[string]any{
		"template_type":    "residential_lease",
		"province":         "Ontario",
		"property_type":    "apartment",
		"special_features": []string{"pet_friendly"},
		"basic_info":       map[string]any{"rent": map[string]any{"monthly_rent": 2000}},
	})
	if !result.Valid {
		t.Fatalf("valid request rejected: %+v", result.Errors)
	}
}

func TestGenerateRequestMissingRequired(t *testing.T) {
	v := NewValidator()
	result := v.Validate("generate_request", map[string]any{
		"template_type": "residential_lease",
	})
	if result.Valid {
		t.Fatal("request without province should fail")
	}

	found := false
	for _, e := range result.Errors {
		if e.Field == "province" && e.Code == "REQUIRED_FIELD_MISSING" {
			found = true
		}
	}
	if !found {
		t.Errorf("errors = %+v, want REQUIRED_FIELD_MISSING on province", result.Errors)
	}
}

func TestGenerateRequestTemplateTypePattern(t *testing.T) {
	v := NewValidator()
	result := v.Validate("generate_request", map[string]any{
		"template_type": "not a valid type!",
		"province":      "Ontario",
	})
	if result.Valid {
		t.Fatal("template_type with spaces should fail the identifier pattern")
	}
}

func TestGenerateRequestWrongTypes(t *testing.T) {
	v := NewValidator()
	result := v.Validate("generate_request", map[string]any{
		"template_type":    "residential_lease",
		"province":         "Ontario",
		"special_features": "pet_friendly", // must be an array
		"basic_info":       "not an object",
	})
	if result.Valid {
		t.Fatal("wrong field types should fail")
	}
	if len(result.Errors) != 2 {
		t.Errorf("errors = %+v, want 2 type violations", result.Errors)
	}
}

func TestValidationResultToAppError(t *testing.T) {
	v := NewValidator()
	result := v.Validate("generate_request", map[string]any{})
	appErr := result.ToAppError()
	if appErr == nil {
		t.Fatal("failed validation should convert to an AppError")
	}
	if appErr.Code != apperrors.ErrCodeValidation {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.ErrCodeValidation)
	}
	if !strings.Contains(appErr.Message, "required") {
		t.Errorf("message = %q, want required-field text", appErr.Message)
	}
}

func TestUnknownSchema(t *testing.T) {
	v := NewValidator()
	result := v.Validate("no_such_schema", map[string]any{})
	if result.Valid {
		t.Fatal("unknown schema should fail")
	}
}

func TestValidateModifications(t *testing.T) {
	valid := []models.Modification{
		{Kind: models.KindBasicInfo, Section: "rent", Field: "monthly_rent", Value: 2100},
		{Kind: models.KindClause, Action: models.ActionAdd, ClauseType: "parking"},
	}
	if err := ValidateModifications(valid); err != nil {
		t.Errorf("valid list rejected: %v", err)
	}

	if err := ValidateModifications([]models.Modification{}); err != nil {
		t.Errorf("empty list rejected: %v", err)
	}
}

func TestValidateModificationsNilList(t *testing.T) {
	err := ValidateModifications(nil)
	var mal *apperrors.MalformedModificationError
	if !errors.As(err, &mal) {
		t.Fatalf("error = %v, want *MalformedModificationError", err)
	}
	if mal.Index != -1 {
		t.Errorf("index = %d, want -1", mal.Index)
	}
}

func TestValidateModificationsUnknownKind(t *testing.T) {
	mods := []models.Modification{
		{Kind: models.KindBasicInfo, Section: "rent", Field: "monthly_rent", Value: 2100},
		{Kind: "mystery"},
	}
	err := ValidateModifications(mods)
	var mal *apperrors.MalformedModificationError
	if !errors.As(err, &mal) {
		t.Fatalf("error = %v, want *MalformedModificationError", err)
	}
	if mal.Index != 1 {
		t.Errorf("index = %d, want 1", mal.Index)
	}

	untagged := []models.Modification{{Section: "rent"}}
	if err := ValidateModifications(untagged); err == nil {
		t.Error("item without a kind tag should fail")
	}
}
