// Package catalog provides read-only access to the template and clause
// reference data. The engine consumes the narrow Accessor interface; the
// backing store is either an in-memory fixture or a directory of
// YAML-frontmatter files.
//
// Catalog records are immutable once loaded. Lookups are synchronous,
// in-process calls over pre-loaded data, so the engine performs no I/O.
package catalog

import (
	"sort"
	"sync"

	"github.com/lexcraft/lexcraft/internal/models"
)

// Accessor is the capability set the engine needs from the catalog
type Accessor interface {
	// GetTemplatesByProvince returns templates applicable to a province,
	// or all templates when province is empty
	GetTemplatesByProvince(province string) []*models.Template
	// ListTemplates returns every template in the catalog
	ListTemplates() []*models.Template
	// GetClauseTemplate returns the clause with the given type key, or nil
	GetClauseTemplate(clauseType string) *models.ClauseTemplate
	// ListClauseTemplates returns every clause template in the catalog
	ListClauseTemplates() []*models.ClauseTemplate
	// GetKeywordMappings maps clause types to trigger keywords
	GetKeywordMappings() map[string][]string
}

// Memory is an in-memory catalog, used as a test fixture and by embedders
// that load reference data themselves
type Memory struct {
	mu        sync.RWMutex
	templates []*models.Template
	clauses   map[string]*models.ClauseTemplate
	keywords  map[string][]string
}

// NewMemory creates an in-memory catalog from explicit records
func NewMemory(templates []*models.Template, clauses []*models.ClauseTemplate, keywords map[string][]string) *Memory {
	m := &Memory{}
	m.Replace(templates, clauses, keywords)
	return m
}

// Replace swaps the catalog contents atomically
func (m *Memory) Replace(templates []*models.Template, clauses []*models.ClauseTemplate, keywords map[string][]string) {
	byType := make(map[string]*models.ClauseTemplate, len(clauses))
	for _, c := range clauses {
		byType[c.ClauseType] = c
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates = append([]*models.Template(nil), templates...)
	m.clauses = byType
	m.keywords = keywords
}

// GetTemplatesByProvince implements Accessor
func (m *Memory) GetTemplatesByProvince(province string) []*models.Template {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if province == "" {
		return append([]*models.Template(nil), m.templates...)
	}
	var out []*models.Template
	for _, t := range m.templates {
		if t.Province == province {
			out = append(out, t)
		}
	}
	return out
}

// ListTemplates implements Accessor
func (m *Memory) ListTemplates() []*models.Template {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*models.Template(nil), m.templates...)
}

// GetClauseTemplate implements Accessor
func (m *Memory) GetClauseTemplate(clauseType string) *models.ClauseTemplate {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.clauses[clauseType]
}

// ListClauseTemplates implements Accessor
func (m *Memory) ListClauseTemplates() []*models.ClauseTemplate {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.ClauseTemplate, 0, len(m.clauses))
	for _, c := range m.clauses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClauseType < out[j].ClauseType })
	return out
}

// GetKeywordMappings implements Accessor
func (m *Memory) GetKeywordMappings() map[string][]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string][]string, len(m.keywords))
	for k, v := range m.keywords {
		out[k] = append([]string(nil), v...)
	}
	return out
}
