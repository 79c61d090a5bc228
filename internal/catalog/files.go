package catalog

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lexcraft/lexcraft/internal/models"
)

// FileStore reads catalog records from a directory tree:
//
//	<root>/templates/*.md   template frontmatter + description body
//	<root>/clauses/*.md     clause frontmatter + content template body
//	<root>/keywords.yaml    clause type to keyword list mapping
//
// Records are held in memory after Load; lookups never touch the disk.
type FileStore struct {
	rootPath string
	Memory
}

// NewFileStore creates a file-backed catalog rooted at rootPath and loads
// it. An empty rootPath falls back to $LEXCRAFT_DIR, then ~/.lexcraft.
func NewFileStore(rootPath string) (*FileStore, error) {
	if rootPath == "" {
		rootPath = os.Getenv("LEXCRAFT_DIR")
	}
	if rootPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		rootPath = filepath.Join(homeDir, ".lexcraft")
	}

	s := &FileStore{rootPath: rootPath}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// GetBaseDir returns the root path of the catalog
func (s *FileStore) GetBaseDir() string {
	return s.rootPath
}

// InitCatalog creates the directory structure for a catalog root
func (s *FileStore) InitCatalog() error {
	dirs := []string{
		s.rootPath,
		filepath.Join(s.rootPath, "templates"),
		filepath.Join(s.rootPath, "clauses"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Load reads all catalog files and replaces the in-memory records
func (s *FileStore) Load() error {
	templates, err := s.loadTemplates()
	if err != nil {
		return err
	}
	clauses, err := s.loadClauses()
	if err != nil {
		return err
	}
	keywords, err := s.loadKeywords()
	if err != nil {
		return err
	}
	s.Replace(templates, clauses, keywords)
	return nil
}

func (s *FileStore) loadTemplates() ([]*models.Template, error) {
	dir := filepath.Join(s.rootPath, "templates")
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	var templates []*models.Template
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		relPath, _ := filepath.Rel(s.rootPath, path)
		tmpl, err := s.loadTemplateFile(relPath)
		if err != nil {
			// Log error but continue walking
			fmt.Fprintf(os.Stderr, "Warning: failed to load template %s: %v\n", relPath, err)
			return nil
		}
		templates = append(templates, tmpl)
		return nil
	})
	return templates, err
}

func (s *FileStore) loadTemplateFile(path string) (*models.Template, error) {
	content, err := os.ReadFile(filepath.Join(s.rootPath, path))
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	frontmatter, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	var tmpl models.Template
	if err := yaml.Unmarshal(frontmatter, &tmpl); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	if tmpl.Description == "" {
		tmpl.Description = body
	}
	tmpl.FilePath = path
	return &tmpl, nil
}

func (s *FileStore) loadClauses() ([]*models.ClauseTemplate, error) {
	dir := filepath.Join(s.rootPath, "clauses")
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	var clauses []*models.ClauseTemplate
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		relPath, _ := filepath.Rel(s.rootPath, path)
		clause, err := s.loadClauseFile(relPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load clause %s: %v\n", relPath, err)
			return nil
		}
		clauses = append(clauses, clause)
		return nil
	})
	return clauses, err
}

func (s *FileStore) loadClauseFile(path string) (*models.ClauseTemplate, error) {
	content, err := os.ReadFile(filepath.Join(s.rootPath, path))
	if err != nil {
		return nil, fmt.Errorf("failed to read clause file: %w", err)
	}

	frontmatter, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse clause: %w", err)
	}

	var clause models.ClauseTemplate
	if err := yaml.Unmarshal(frontmatter, &clause); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	if clause.ClauseType == "" {
		return nil, fmt.Errorf("clause file missing clause_type")
	}
	clause.Structured = normalizeYAML(clause.Structured)
	clause.Content = body
	clause.FilePath = path
	return &clause, nil
}

func (s *FileStore) loadKeywords() (map[string][]string, error) {
	path := filepath.Join(s.rootPath, "keywords.yaml")
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read keyword mappings: %w", err)
	}

	var keywords map[string][]string
	if err := yaml.Unmarshal(content, &keywords); err != nil {
		return nil, fmt.Errorf("failed to parse keyword mappings: %w", err)
	}
	return keywords, nil
}

// splitFrontmatter separates YAML frontmatter from the markdown body
func splitFrontmatter(content []byte) (frontmatter []byte, body string, err error) {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	// Check for frontmatter delimiter
	if !scanner.Scan() || scanner.Text() != "---" {
		return nil, "", fmt.Errorf("missing frontmatter delimiter")
	}

	var frontmatterLines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "---" {
			break
		}
		frontmatterLines = append(frontmatterLines, line)
	}

	var bodyLines []string
	for scanner.Scan() {
		bodyLines = append(bodyLines, scanner.Text())
	}
	body = strings.Join(bodyLines, "\n")
	// Trim only leading whitespace/newlines
	body = strings.TrimLeft(body, " \t\n")

	return []byte(strings.Join(frontmatterLines, "\n")), body, nil
}

// normalizeYAML converts yaml.v3 map[any]any values into the map[string]any
// shape the rest of the system works with
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprintf("%v", k)] = normalizeYAML(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeYAML(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeYAML(item)
		}
		return out
	default:
		return v
	}
}
