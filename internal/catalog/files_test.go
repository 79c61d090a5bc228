package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const templateFixture = `---
id: on-residential-2024
type: residential_lease
version: "2.1"
province: Ontario
features:
  - pet_friendly
property_types:
  - apartment
  - condo
sections:
  parties:
    fields:
      landlord_name:
        type: text
        required: true
  rent:
    fields:
      monthly_rent:
        type: number
        required: true
---

Standard Ontario residential lease.
`

const clauseFixture = `---
clause_type: pet_agreement
category: pets
title: Pet Agreement
variables:
  - name: pet_type
    type: text
    required: true
  - name: pet_deposit
    type: currency
    required: true
incompatible_with:
  - no_pets
---

The tenant may keep a {pet_type} upon payment of a {pet_deposit} deposit.
`

const structuredClauseFixture = `---
clause_type: utilities_cap
structured:
  summary: "Utilities capped at {monthly_cap}."
  terms:
    - "Cap applies to hydro."
variables:
  - name: monthly_cap
    type: currency
    required: true
---
`

const keywordsFixture = `pet_agreement:
  - pet
  - dog
  - cat
parking:
  - parking
  - vehicle
`

func writeFixtures(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"templates", "clauses"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}
	files := map[string]string{
		"templates/on-residential.md": templateFixture,
		"clauses/pet-agreement.md":    clauseFixture,
		"clauses/utilities-cap.md":    structuredClauseFixture,
		"keywords.yaml":               keywordsFixture,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return root
}

func TestFileStoreLoadsTemplates(t *testing.T) {
	store, err := NewFileStore(writeFixtures(t))
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	templates := store.ListTemplates()
	if len(templates) != 1 {
		t.Fatalf("template count = %d, want 1", len(templates))
	}

	tmpl := templates[0]
	if tmpl.ID != "on-residential-2024" || tmpl.Province != "Ontario" {
		t.Errorf("template identity = %s/%s", tmpl.ID, tmpl.Province)
	}
	if tmpl.Description != "Standard Ontario residential lease." {
		t.Errorf("description = %q", tmpl.Description)
	}
	if !tmpl.Sections["parties"].Fields["landlord_name"].Required {
		t.Error("landlord_name should be required")
	}

	byProvince := store.GetTemplatesByProvince("Ontario")
	if len(byProvince) != 1 {
		t.Errorf("Ontario templates = %d, want 1", len(byProvince))
	}
	if got := store.GetTemplatesByProvince("Alberta"); len(got) != 0 {
		t.Errorf("Alberta templates = %d, want 0", len(got))
	}
}

func TestFileStoreLoadsClauses(t *testing.T) {
	store, err := NewFileStore(writeFixtures(t))
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	clause := store.GetClauseTemplate("pet_agreement")
	if clause == nil {
		t.Fatal("pet_agreement not loaded")
	}
	if clause.Title != "Pet Agreement" || clause.Category != "pets" {
		t.Errorf("clause metadata = %s/%s", clause.Title, clause.Category)
	}
	wantContent := "The tenant may keep a {pet_type} upon payment of a {pet_deposit} deposit."
	if clause.Content != wantContent {
		t.Errorf("content = %q, want %q", clause.Content, wantContent)
	}
	if diff := cmp.Diff([]string{"no_pets"}, clause.IncompatibleWith); diff != "" {
		t.Errorf("incompatible_with mismatch (-want +got):\n%s", diff)
	}
	if got := clause.VariableType("pet_deposit"); got != "currency" {
		t.Errorf("pet_deposit type = %q, want currency", got)
	}

	if store.GetClauseTemplate("missing") != nil {
		t.Error("unknown clause type should return nil")
	}
}

func TestFileStoreStructuredClause(t *testing.T) {
	store, err := NewFileStore(writeFixtures(t))
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	clause := store.GetClauseTemplate("utilities_cap")
	if clause == nil {
		t.Fatal("utilities_cap not loaded")
	}

	structured, ok := clause.Structured.(map[string]any)
	if !ok {
		t.Fatalf("structured content type = %T, want map[string]any", clause.Structured)
	}
	if structured["summary"] != "Utilities capped at {monthly_cap}." {
		t.Errorf("summary = %v", structured["summary"])
	}
	terms, ok := structured["terms"].([]any)
	if !ok || len(terms) != 1 {
		t.Errorf("terms = %v", structured["terms"])
	}
}

func TestFileStoreKeywords(t *testing.T) {
	store, err := NewFileStore(writeFixtures(t))
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	keywords := store.GetKeywordMappings()
	if diff := cmp.Diff([]string{"pet", "dog", "cat"}, keywords["pet_agreement"]); diff != "" {
		t.Errorf("keywords mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStoreSkipsBrokenFiles(t *testing.T) {
	root := writeFixtures(t)
	broken := filepath.Join(root, "clauses", "broken.md")
	if err := os.WriteFile(broken, []byte("no frontmatter here"), 0644); err != nil {
		t.Fatalf("failed to write broken file: %v", err)
	}

	store, err := NewFileStore(root)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	// Broken file is skipped, the rest load
	if len(store.ListClauseTemplates()) != 2 {
		t.Errorf("clause count = %d, want 2", len(store.ListClauseTemplates()))
	}
}

func TestFileStoreEmptyRoot(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed on empty root: %v", err)
	}
	if len(store.ListTemplates()) != 0 || len(store.ListClauseTemplates()) != 0 {
		t.Error("empty root should load an empty catalog")
	}
}

func TestInitCatalog(t *testing.T) {
	root := filepath.Join(t.TempDir(), "catalog")
	store := &FileStore{rootPath: root}
	if err := store.InitCatalog(); err != nil {
		t.Fatalf("InitCatalog failed: %v", err)
	}
	for _, dir := range []string{"templates", "clauses"} {
		if _, err := os.Stat(filepath.Join(root, dir)); err != nil {
			t.Errorf("directory %s not created: %v", dir, err)
		}
	}
}

func TestMemoryReplaceList(t *testing.T) {
	m := NewMemory(nil, nil, nil)
	if len(m.ListClauseTemplates()) != 0 {
		t.Fatal("fresh memory catalog should be empty")
	}
}
