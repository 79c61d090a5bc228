// Package engine assembles contracts from templates and applies ordered
// modification batches to them.
//
// The engine is stateless between calls: the caller owns the contract value
// and threads it through successive modify calls. Modification operates on
// a structural copy, so the caller's contract is never mutated in place.
//
// Batch semantics are best-effort with reporting. Individual modifications
// that cannot apply are skipped and recorded in the change log; the batch
// as a whole never aborts because one item failed. Every batch appends
// exactly one modification record and increments the contract version by 1,
// even when every item in it failed: the record is of the attempt.
package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lexcraft/lexcraft/internal/catalog"
	"github.com/lexcraft/lexcraft/internal/compat"
	"github.com/lexcraft/lexcraft/internal/errors"
	"github.com/lexcraft/lexcraft/internal/models"
	"github.com/lexcraft/lexcraft/internal/renderer"
	"github.com/lexcraft/lexcraft/internal/selector"
)

// Engine generates and mutates contracts against an immutable catalog
type Engine struct {
	catalog catalog.Accessor
	now     func() time.Time
	newID   func() string
}

// New creates an engine backed by the given catalog
func New(cat catalog.Accessor) *Engine {
	return &Engine{
		catalog: cat,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Generate selects the best template for the requirements and builds the
// initial contract from it. Fails only when no template matches; per-clause
// failures are reported as warnings on the result.
func (e *Engine) Generate(req *models.StructuredRequirements) (*models.GenerationResult, error) {
	candidates := e.catalog.GetTemplatesByProvince(req.Province)
	selection, err := selector.SelectTemplate(candidates, req)
	if err != nil {
		return nil, err
	}
	return e.GenerateFromTemplate(selection.Template, req)
}

// GenerateFromTemplate builds a contract skeleton from a known template,
// populating sections from the requirements and attaching every requested
// clause that resolves cleanly
func (e *Engine) GenerateFromTemplate(tmpl *models.Template, req *models.StructuredRequirements) (*models.GenerationResult, error) {
	contract := &models.Contract{
		ID:             e.newID(),
		Version:        tmpl.Version,
		Type:           tmpl.Type,
		Province:       tmpl.Province,
		Sections:       make(map[string]map[string]any, len(tmpl.Sections)),
		CurrentVersion: 1,
		CreatedAt:      e.now(),
	}

	for name, schema := range tmpl.Sections {
		section := make(map[string]any, len(schema.Fields))
		if supplied, ok := req.BasicInfo[name]; ok {
			for k, v := range supplied {
				section[k] = models.CloneValue(v)
			}
		}
		// Required fields are always present, even if empty
		for fieldName, field := range schema.Fields {
			if _, ok := section[fieldName]; ok || !field.Required {
				continue
			}
			if field.Default != "" {
				section[fieldName] = field.Default
			} else {
				section[fieldName] = ""
			}
		}
		contract.Sections[name] = section
	}

	var warnings []string

	requested := make([]string, 0, len(req.SuggestedClauses))
	variablesByType := make(map[string]map[string]any, len(req.SuggestedClauses))
	for _, sc := range req.SuggestedClauses {
		requested = append(requested, sc.ClauseType)
		variablesByType[sc.ClauseType] = sc.Variables
	}

	resolution := compat.ResolveCompatibleClauses(requested, nil, e.catalog)
	for clauseType, reason := range resolution.Rejected {
		warnings = append(warnings, fmt.Sprintf("skipped clause %s: %v", clauseType, reason))
	}
	for _, clauseType := range resolution.Accepted {
		clauseTmpl := e.catalog.GetClauseTemplate(clauseType)
		variables := variablesByType[clauseType]
		result := renderer.ResolveContent(clauseTmpl, variables)
		if !result.Resolved() {
			reason := &errors.MissingRequiredVariablesError{ClauseType: clauseType, Missing: result.Missing}
			warnings = append(warnings, fmt.Sprintf("skipped clause %s: %v", clauseType, reason))
			continue
		}
		e.insertClause(contract, clauseTmpl, variables, result.Content)
	}

	return &models.GenerationResult{Contract: contract, Warnings: warnings}, nil
}

// ApplyModifications applies an ordered batch of modifications to a
// structural copy of the contract and returns the copy with its change log.
// Invalid individual items are skipped and recorded; the error return is
// reserved for a structurally invalid batch.
func (e *Engine) ApplyModifications(contract *models.Contract, mods []models.Modification) (*models.ModificationResult, error) {
	if contract == nil {
		return nil, errors.ValidationError("no contract to modify")
	}
	if mods == nil {
		return nil, &errors.MalformedModificationError{Index: -1, Reason: "modifications list is missing"}
	}

	working := contract.Clone()
	var changeLog []string

	for _, mod := range mods {
		switch mod.Kind {
		case models.KindBasicInfo:
			changeLog = append(changeLog, e.applyBasicInfo(working, mod)...)
		case models.KindClause:
			changeLog = append(changeLog, e.applyClauseEdit(working, mod)...)
		default:
			changeLog = append(changeLog, fmt.Sprintf("rejected modification: unknown kind %q", mod.Kind))
		}
	}

	working.CurrentVersion++
	working.History = append(working.History, models.ModificationRecord{
		Version:   working.CurrentVersion,
		Changes:   changeLog,
		Timestamp: e.now(),
	})

	return &models.ModificationResult{Contract: working, ChangeLog: changeLog}, nil
}

// applyBasicInfo sets a section field unconditionally. Schema validation
// happens at generation time only; modify-time edits may create sections
// the template never declared.
func (e *Engine) applyBasicInfo(contract *models.Contract, mod models.Modification) []string {
	if mod.Section == "" || mod.Field == "" {
		return []string{"rejected basic_info edit: section and field are required"}
	}
	if contract.Sections == nil {
		contract.Sections = make(map[string]map[string]any)
	}
	section, ok := contract.Sections[mod.Section]
	if !ok {
		section = make(map[string]any)
		contract.Sections[mod.Section] = section
	}
	section[mod.Field] = models.CloneValue(mod.Value)
	return []string{fmt.Sprintf("set %s.%s", mod.Section, mod.Field)}
}

func (e *Engine) applyClauseEdit(contract *models.Contract, mod models.Modification) []string {
	if mod.ClauseType == "" {
		return []string{"rejected clause edit: clause_type is required"}
	}

	switch mod.Action {
	case models.ActionAdd:
		return e.addClause(contract, mod.ClauseType, mod.Variables)
	case models.ActionRemove:
		return e.removeClause(contract, mod.ClauseType)
	case models.ActionModify:
		return e.modifyClause(contract, mod.ClauseType, mod.Variables)
	default:
		return []string{fmt.Sprintf("rejected %s: unknown clause action %q", mod.ClauseType, mod.Action)}
	}
}

func (e *Engine) addClause(contract *models.Contract, clauseType string, variables map[string]any) []string {
	resolution := compat.ResolveCompatibleClauses([]string{clauseType}, contract.ClauseTypes(), e.catalog)
	if reason, rejected := resolution.Rejected[clauseType]; rejected {
		return []string{fmt.Sprintf("rejected %s: %v", clauseType, reason)}
	}

	clauseTmpl := e.catalog.GetClauseTemplate(clauseType)
	result := renderer.ResolveContent(clauseTmpl, variables)
	if !result.Resolved() {
		reason := &errors.MissingRequiredVariablesError{ClauseType: clauseType, Missing: result.Missing}
		return []string{fmt.Sprintf("rejected %s: %v", clauseType, reason)}
	}

	replaced := e.insertClause(contract, clauseTmpl, variables, result.Content)
	if replaced {
		return []string{fmt.Sprintf("replaced clause %s", clauseType)}
	}
	return []string{fmt.Sprintf("added clause %s", clauseType)}
}

func (e *Engine) removeClause(contract *models.Contract, clauseType string) []string {
	idx := contract.FindClause(clauseType)
	if idx < 0 {
		// Removing an absent clause is a no-op, not a failed change
		return nil
	}
	contract.SpecialClauses = append(contract.SpecialClauses[:idx], contract.SpecialClauses[idx+1:]...)
	return []string{fmt.Sprintf("removed clause %s", clauseType)}
}

// modifyClause merges new variables into an existing instance and
// re-resolves against the original clause template, never the previously
// resolved content, so substitutions do not compound.
func (e *Engine) modifyClause(contract *models.Contract, clauseType string, variables map[string]any) []string {
	idx := contract.FindClause(clauseType)
	if idx < 0 {
		return []string{fmt.Sprintf("rejected %s: clause not present in contract", clauseType)}
	}

	clauseTmpl := e.catalog.GetClauseTemplate(clauseType)
	if clauseTmpl == nil {
		reason := &errors.ClauseTemplateNotFoundError{ClauseType: clauseType}
		return []string{fmt.Sprintf("rejected %s: %v", clauseType, reason)}
	}

	instance := &contract.SpecialClauses[idx]
	merged := make(map[string]any, len(instance.Variables)+len(variables))
	for k, v := range instance.Variables {
		merged[k] = v
	}
	for k, v := range variables {
		merged[k] = models.CloneValue(v)
	}

	result := renderer.ResolveContent(clauseTmpl, merged)
	if !result.Resolved() {
		reason := &errors.MissingRequiredVariablesError{ClauseType: clauseType, Missing: result.Missing}
		return []string{fmt.Sprintf("rejected %s: %v", clauseType, reason)}
	}

	instance.Variables = merged
	instance.Content = result.Content
	now := e.now()
	instance.ModifiedAt = &now
	return []string{fmt.Sprintf("updated clause %s", clauseType)}
}

// insertClause adds a clause instance, replacing any existing instance of
// the same type in place. Returns true when it replaced.
func (e *Engine) insertClause(contract *models.Contract, tmpl *models.ClauseTemplate, variables map[string]any, content any) bool {
	instance := models.ClauseInstance{
		Type:        tmpl.ClauseType,
		DisplayName: tmpl.DisplayName(),
		Content:     content,
		Variables:   make(map[string]any, len(variables)),
		AddedAt:     e.now(),
	}
	for k, v := range variables {
		instance.Variables[k] = models.CloneValue(v)
	}

	if idx := contract.FindClause(tmpl.ClauseType); idx >= 0 {
		contract.SpecialClauses[idx] = instance
		return true
	}
	contract.SpecialClauses = append(contract.SpecialClauses, instance)
	return false
}
