// Package renderer resolves clause content templates against variable
// mappings. Substitution is type-aware: variables declared as currency or
// date are formatted for contract text; everything else converts literally.
//
// Substitution is non-strict on the template side. Placeholders with no
// corresponding variable are left verbatim; only the clause's declared
// required variables are authoritative for failure. Extra variables beyond
// the template are ignored.
package renderer

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lexcraft/lexcraft/internal/models"
)

var placeholderRE = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// currencyPrinter renders grouped thousands ("2,000.00")
var currencyPrinter = message.NewPrinter(language.English)

// Result holds resolved clause content, or the required variables that
// were not supplied
type Result struct {
	Content any
	Missing []string
}

// Resolved reports whether content resolution succeeded
func (r Result) Resolved() bool {
	return len(r.Missing) == 0
}

// ResolveContent resolves a clause template's content against a variable
// mapping. When any declared required variable is absent the result carries
// the missing names and no content; the caller must not mutate the contract.
func ResolveContent(tmpl *models.ClauseTemplate, variables map[string]any) Result {
	var missing []string
	for _, name := range tmpl.RequiredVariables() {
		if _, ok := variables[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return Result{Missing: missing}
	}

	if tmpl.Structured != nil {
		return Result{Content: resolveValue(tmpl.Structured, tmpl, variables)}
	}
	return Result{Content: substitute(tmpl.Content, tmpl, variables)}
}

// resolveValue applies substitution recursively to every string leaf,
// preserving the structure's shape
func resolveValue(v any, tmpl *models.ClauseTemplate, variables map[string]any) any {
	switch val := v.(type) {
	case string:
		return substitute(val, tmpl, variables)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = resolveValue(item, tmpl, variables)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = resolveValue(item, tmpl, variables)
		}
		return out
	default:
		return v
	}
}

// substitute replaces {name} placeholders for supplied variables only.
// Unmatched placeholders stay verbatim.
func substitute(text string, tmpl *models.ClauseTemplate, variables map[string]any) string {
	return placeholderRE.ReplaceAllStringFunc(text, func(m string) string {
		name := m[1 : len(m)-1]
		value, ok := variables[name]
		if !ok {
			return m
		}
		return FormatValue(value, tmpl.VariableType(name))
	})
}

// FormatValue converts a variable value to its contract-text form based on
// its declared type
func FormatValue(value any, varType string) string {
	switch varType {
	case "currency":
		if f, ok := toFloat(value); ok {
			return currencyPrinter.Sprintf("%.2f", f)
		}
	case "date":
		if s, ok := value.(string); ok {
			if t, err := time.Parse("2006-01-02", s); err == nil {
				return t.Format("January 02, 2006")
			}
		}
	}
	return toString(value)
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
