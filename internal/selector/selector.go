// Package selector scores candidate templates against structured
// requirements and picks the best match.
package selector

import (
	"sort"

	"github.com/lexcraft/lexcraft/internal/errors"
	"github.com/lexcraft/lexcraft/internal/models"
)

// Score weights, applied in this fixed order. Province is also a hard gate:
// a template for a different province is skipped before scoring.
const (
	provinceWeight = 50
	propertyWeight = 10
	featureWeight  = 5
	sectionWeight  = 1
)

// SelectTemplate returns the best-scoring template for the requirements.
// The first candidate to reach the maximum score wins; later candidates
// with an equal score never displace it, so callers needing a stable
// outcome must keep the candidate order stable across calls.
func SelectTemplate(candidates []*models.Template, req *models.StructuredRequirements) (*models.SelectionResult, error) {
	var best *models.SelectionResult

	for _, tmpl := range candidates {
		if req.Province != "" && tmpl.Province != req.Province {
			continue
		}

		score := 0
		reasons := models.MatchReasons{}

		if req.Province != "" && tmpl.Province == req.Province {
			score += provinceWeight
			reasons.Province = true
		}
		if req.PropertyType != "" && tmpl.SupportsPropertyType(req.PropertyType) {
			score += propertyWeight
			reasons.PropertyType = true
		}
		for _, feature := range req.SpecialFeatures {
			if tmpl.HasFeature(feature) {
				score += featureWeight
				reasons.Features = append(reasons.Features, feature)
			}
		}
		for name := range tmpl.Sections {
			score += sectionWeight
			reasons.Sections = append(reasons.Sections, name)
		}
		sort.Strings(reasons.Sections)

		if best == nil || score > best.Score {
			best = &models.SelectionResult{
				Template:     tmpl,
				Score:        score,
				MatchReasons: reasons,
			}
		}
	}

	if best == nil {
		return nil, &errors.TemplateNotFoundError{
			Province:     req.Province,
			TemplateType: req.TemplateType,
		}
	}
	return best, nil
}
