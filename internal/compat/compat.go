// Package compat filters a requested set of clause types down to a
// mutually-compatible subset.
//
// Resolution is greedy and left-to-right: each accepted clause immediately
// joins the set later candidates are checked against, so submission order
// decides the outcome when clauses conflict.
package compat

import (
	"github.com/lexcraft/lexcraft/internal/errors"
	"github.com/lexcraft/lexcraft/internal/models"
)

// Catalog is the clause lookup the resolver needs. A nil return means the
// clause type is unknown.
type Catalog interface {
	GetClauseTemplate(clauseType string) *models.ClauseTemplate
}

// Resolution reports which requested clause types were accepted, and why
// the rest were rejected
type Resolution struct {
	Accepted []string
	Rejected map[string]error
}

// ResolveCompatibleClauses checks each requested type, in input order,
// against the union of already-accepted types and existingTypes. A clause
// whose incompatible_with set intersects that union is rejected with the
// first conflicting type found.
func ResolveCompatibleClauses(requested []string, existingTypes map[string]bool, catalog Catalog) Resolution {
	res := Resolution{Rejected: make(map[string]error)}
	accepted := make(map[string]bool, len(existingTypes))
	for t := range existingTypes {
		accepted[t] = true
	}

	for _, clauseType := range requested {
		tmpl := catalog.GetClauseTemplate(clauseType)
		if tmpl == nil {
			res.Rejected[clauseType] = &errors.ClauseTemplateNotFoundError{ClauseType: clauseType}
			continue
		}

		conflict := ""
		for _, incompatible := range tmpl.IncompatibleWith {
			if accepted[incompatible] {
				conflict = incompatible
				break
			}
		}
		if conflict != "" {
			res.Rejected[clauseType] = &errors.IncompatibleClauseError{
				ClauseType:    clauseType,
				ConflictsWith: conflict,
			}
			continue
		}

		res.Accepted = append(res.Accepted, clauseType)
		accepted[clauseType] = true
	}

	return res
}
