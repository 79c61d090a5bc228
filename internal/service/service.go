// Package service provides the business-logic facade over the contract
// engine and the catalog. The CLI and HTTP interfaces both go through it.
package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/lexcraft/lexcraft/internal/catalog"
	"github.com/lexcraft/lexcraft/internal/engine"
	"github.com/lexcraft/lexcraft/internal/errors"
	"github.com/lexcraft/lexcraft/internal/models"
	"github.com/lexcraft/lexcraft/internal/validation"
)

// Service wires the catalog, validator, and mutation engine together
type Service struct {
	catalog   catalog.Accessor
	engine    *engine.Engine
	validator *validation.Validator
}

// NewService creates a service over a file-backed catalog. rootPath may be
// empty to use $LEXCRAFT_DIR or the default location.
func NewService(rootPath string) (*Service, error) {
	store, err := catalog.NewFileStore(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize catalog: %w", err)
	}
	return NewServiceWithCatalog(store), nil
}

// NewServiceWithCatalog creates a service over any catalog accessor,
// typically an in-memory fixture in tests
func NewServiceWithCatalog(cat catalog.Accessor) *Service {
	return &Service{
		catalog:   cat,
		engine:    engine.New(cat),
		validator: validation.NewValidator(),
	}
}

// Catalog exposes the underlying accessor
func (s *Service) Catalog() catalog.Accessor {
	return s.catalog
}

// Generate validates the extraction service's requirements and builds a
// contract from the best-matching template
func (s *Service) Generate(req *models.StructuredRequirements) (*models.GenerationResult, error) {
	if req == nil {
		return nil, errors.ValidationError("requirements are required")
	}
	result := s.validator.Validate("generate_request", map[string]any{
		"template_type": req.TemplateType,
		"province":      req.Province,
	})
	if !result.Valid {
		return nil, result.ToAppError()
	}
	return s.engine.Generate(req)
}

// ApplyModifications validates a modification batch structurally, then
// applies it best-effort to a copy of the contract
func (s *Service) ApplyModifications(contract *models.Contract, mods []models.Modification) (*models.ModificationResult, error) {
	if contract == nil {
		return nil, errors.ValidationError("no contract to modify")
	}
	if err := validation.ValidateModifications(mods); err != nil {
		return nil, err
	}
	return s.engine.ApplyModifications(contract, mods)
}

// ListTemplates returns all templates in the catalog
func (s *Service) ListTemplates() []*models.Template {
	return s.catalog.ListTemplates()
}

// ListClauses returns all clause templates in the catalog
func (s *Service) ListClauses() []*models.ClauseTemplate {
	return s.catalog.ListClauseTemplates()
}

// GetClause returns a clause template by type key
func (s *Service) GetClause(clauseType string) (*models.ClauseTemplate, error) {
	clause := s.catalog.GetClauseTemplate(clauseType)
	if clause == nil {
		return nil, &errors.ClauseTemplateNotFoundError{ClauseType: clauseType}
	}
	return clause, nil
}

// SearchClauses searches clause templates by query string
func (s *Service) SearchClauses(query string) []*models.ClauseTemplate {
	clauses := s.catalog.ListClauseTemplates()
	if query == "" {
		return clauses
	}

	// Create searchable strings for each clause
	var searchStrings []string
	for _, c := range clauses {
		searchStr := fmt.Sprintf("%s %s %s", c.ClauseType, c.Title, c.Category)
		searchStrings = append(searchStrings, searchStr)
	}

	matches := fuzzy.Find(query, searchStrings)

	var results []*models.ClauseTemplate
	for _, match := range matches {
		results = append(results, clauses[match.Index])
	}
	return results
}

// SuggestClauses scans free text against the catalog's keyword mappings
// and returns the clause types whose keywords appear in it
func (s *Service) SuggestClauses(text string) []string {
	lowered := strings.ToLower(text)
	var suggested []string
	for clauseType, keywords := range s.catalog.GetKeywordMappings() {
		for _, keyword := range keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(lowered, strings.ToLower(keyword)) {
				suggested = append(suggested, clauseType)
				break
			}
		}
	}
	sort.Strings(suggested)
	return suggested
}
