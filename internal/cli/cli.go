package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/lexcraft/lexcraft/internal/errors"
	"github.com/lexcraft/lexcraft/internal/models"
	"github.com/lexcraft/lexcraft/internal/service"
)

// CLI provides headless command-line interface functionality
type CLI struct {
	service      *service.Service
	errorHandler *errors.CLIErrorHandler
}

// NewCLI creates a new CLI instance
func NewCLI(svc *service.Service, logger *zap.Logger) *CLI {
	return &CLI{
		service:      svc,
		errorHandler: errors.NewCLIErrorHandler(false, logger),
	}
}

// ExecuteCommand processes a CLI command and returns the result
func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	commandArgs := args[1:]

	var err error
	switch command {
	case "generate", "gen":
		err = c.generateContract(commandArgs)
	case "modify", "mod":
		err = c.modifyContract(commandArgs)
	case "templates":
		err = c.listTemplates(commandArgs)
	case "clauses":
		err = c.listClauses(commandArgs)
	case "clause", "show":
		err = c.showClause(commandArgs)
	case "search":
		err = c.searchClauses(commandArgs)
	case "suggest":
		err = c.suggestClauses(commandArgs)
	case "help":
		return c.printUsage()
	default:
		return fmt.Errorf("unknown command: %s (use 'help' for usage)", command)
	}

	if err != nil {
		return c.errorHandler.HandleError(err)
	}
	return nil
}

// generateContract builds a contract from a structured requirements JSON
// document given via --file or stdin
func (c *CLI) generateContract(args []string) error {
	var file string
	var output string
	useStdin := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--file", "-f":
			if i+1 < len(args) {
				file = args[i+1]
				i++
			}
		case "--output", "-o":
			if i+1 < len(args) {
				output = args[i+1]
				i++
			}
		case "--stdin":
			useStdin = true
		}
	}

	data, err := c.readInput(file, useStdin)
	if err != nil {
		return err
	}

	var req models.StructuredRequirements
	if err := json.Unmarshal(data, &req); err != nil {
		return errors.ValidationError(fmt.Sprintf("invalid requirements JSON: %v", err))
	}

	result, err := c.service.Generate(&req)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	return c.writeJSON(result.Contract, output)
}

// modifyContract applies a modification batch to a contract document. The
// input JSON carries both the contract and the modifications list.
func (c *CLI) modifyContract(args []string) error {
	var file string
	var output string
	useStdin := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--file", "-f":
			if i+1 < len(args) {
				file = args[i+1]
				i++
			}
		case "--output", "-o":
			if i+1 < len(args) {
				output = args[i+1]
				i++
			}
		case "--stdin":
			useStdin = true
		}
	}

	data, err := c.readInput(file, useStdin)
	if err != nil {
		return err
	}

	var req struct {
		Contract      *models.Contract      `json:"contract"`
		Modifications []models.Modification `json:"modifications"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return errors.ValidationError(fmt.Sprintf("invalid modification JSON: %v", err))
	}

	result, err := c.service.ApplyModifications(req.Contract, req.Modifications)
	if err != nil {
		return err
	}

	for _, change := range result.ChangeLog {
		fmt.Fprintf(os.Stderr, "%s\n", change)
	}
	return c.writeJSON(result.Contract, output)
}

func (c *CLI) listTemplates(args []string) error {
	format := "table"
	province := ""

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		case "--province", "-p":
			if i+1 < len(args) {
				province = args[i+1]
				i++
			}
		}
	}

	templates := c.service.ListTemplates()
	if province != "" {
		filtered := make([]*models.Template, 0, len(templates))
		for _, t := range templates {
			if strings.EqualFold(t.Province, province) {
				filtered = append(filtered, t)
			}
		}
		templates = filtered
	}

	if format == "json" {
		return c.writeJSON(templates, "")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tPROVINCE\tFEATURES")
	for _, t := range templates {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Type, t.Province, strings.Join(t.Features, ","))
	}
	return w.Flush()
}

func (c *CLI) listClauses(args []string) error {
	format := "table"

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		}
	}

	clauses := c.service.ListClauses()
	if format == "json" {
		return c.writeJSON(clauses, "")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tTITLE\tCATEGORY\tINCOMPATIBLE WITH")
	for _, cl := range clauses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", cl.ClauseType, cl.DisplayName(), cl.Category, strings.Join(cl.IncompatibleWith, ","))
	}
	return w.Flush()
}

func (c *CLI) showClause(args []string) error {
	if len(args) == 0 {
		return errors.ValidationError("clause type is required")
	}

	clause, err := c.service.GetClause(args[0])
	if err != nil {
		return err
	}
	return c.writeJSON(clause, "")
}

func (c *CLI) searchClauses(args []string) error {
	if len(args) == 0 {
		return errors.ValidationError("search query is required")
	}

	query := args[0]
	format := "table"
	for i := 1; i < len(args); i++ {
		switch args[i] {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		}
	}

	results := c.service.SearchClauses(query)
	if format == "json" {
		return c.writeJSON(results, "")
	}

	if len(results) == 0 {
		fmt.Println("No clauses found.")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tTITLE\tCATEGORY")
	for _, cl := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\n", cl.ClauseType, cl.DisplayName(), cl.Category)
	}
	return w.Flush()
}

func (c *CLI) suggestClauses(args []string) error {
	if len(args) == 0 {
		return errors.ValidationError("text to analyze is required")
	}

	suggestions := c.service.SuggestClauses(strings.Join(args, " "))
	if len(suggestions) == 0 {
		fmt.Println("No clause suggestions.")
		return nil
	}
	for _, s := range suggestions {
		fmt.Println(s)
	}
	return nil
}

// readInput reads the request document from a file or stdin
func (c *CLI) readInput(file string, useStdin bool) ([]byte, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, errors.ValidationError(fmt.Sprintf("failed to read %s: %v", file, err))
		}
		return data, nil
	}
	if useStdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.ValidationError(fmt.Sprintf("failed to read stdin: %v", err))
		}
		return data, nil
	}
	return nil, errors.ValidationError("provide input with --file <path> or --stdin")
}

// writeJSON renders a value as indented JSON to stdout or a file
func (c *CLI) writeJSON(v any, output string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if output != "" {
		return os.WriteFile(output, append(data, '\n'), 0644)
	}
	fmt.Println(string(data))
	return nil
}

func (c *CLI) printUsage() error {
	usage := `LexCraft - contract generation and modification

Usage:
  lexcraft <command> [options]

Commands:
  generate, gen     Generate a contract from structured requirements
  modify, mod       Apply a modification batch to a contract
  templates         List available contract templates
  clauses           List available clause templates
  clause, show      Show one clause template
  search <query>    Fuzzy-search clause templates
  suggest <text>    Suggest clause types for free-form text
  help              Show this help

Options:
  --file, -f <path>     Read the request document from a file
  --stdin               Read the request document from stdin
  --output, -o <path>   Write the resulting contract to a file
  --format <fmt>        Output format: table or json
  --province, -p <name> Filter templates by province

Examples:
  lexcraft generate --file requirements.json
  lexcraft modify --stdin < modification.json
  lexcraft templates --province Ontario --format json
  lexcraft search "pet"
  lexcraft suggest "tenant has a dog and needs parking"
`
	fmt.Print(usage)
	return nil
}
