package engine

import "github.com/dinesafe/dinesafe/internal/models"

// Options selects the optional passes of an evaluation run.
type Options struct {
	// Tolerance, when non-empty, runs the tolerance pass over the
	// filtered bucket of the combined result.
	Tolerance models.Tolerance
	// PerAllergen additionally re-runs the evaluation once per avoided
	// allergen in isolation and reports which items each allergen alone
	// would leave safe.
	PerAllergen bool
}

// Evaluate classifies every catalog item for one profile. Each item lands in
// exactly one bucket: safe as served, safe after the listed modifications, or
// filtered with the reasons that rejected it.
func (e *Engine) Evaluate(profile models.DinerProfile, opts Options) *models.Report {
	catalog := e.catalog.Load()
	report := &models.Report{
		Safe:          []models.ItemVerdict{},
		CanBeModified: []models.ItemVerdict{},
		Filtered:      []models.ItemVerdict{},
	}
	var filteredItems []*models.MenuItem

	for i := range catalog.Items {
		item := &catalog.Items[i]
		c := checkCompliance(item, profile)
		verdict := models.ItemVerdict{
			ID:       item.ID,
			Name:     item.Name,
			Category: item.Category,
			Reasons:  c.reasons,
		}

		if c.safe() {
			report.Safe = append(report.Safe, verdict)
			continue
		}
		if c.dietaryOK {
			if mods, ok := resolveModifications(item, profile); ok {
				verdict.Modifications = mods
				report.CanBeModified = append(report.CanBeModified, verdict)
				continue
			}
		}
		report.Filtered = append(report.Filtered, verdict)
		filteredItems = append(filteredItems, item)
	}

	if len(opts.Tolerance) > 0 {
		report.Safe, report.Filtered = promoteTolerated(report, filteredItems, profile, opts.Tolerance)
	}
	if opts.PerAllergen {
		report.SafePerAllergen = e.safePerAllergen(catalog, profile)
	}
	return report
}

// promoteTolerated moves filtered items whose only exposure to a tolerated
// allergen is its designated form into the safe bucket. Promoted verdicts
// keep the first-pass rejection reasons and are flagged so consumers can tell
// them apart from items safe as served.
func promoteTolerated(report *models.Report, filteredItems []*models.MenuItem, profile models.DinerProfile, tolerance models.Tolerance) (safe, filtered []models.ItemVerdict) {
	safe = report.Safe
	filtered = []models.ItemVerdict{}
	for i, verdict := range report.Filtered {
		notes, ok := refineTolerance(filteredItems[i], profile, tolerance)
		if !ok {
			filtered = append(filtered, verdict)
			continue
		}
		verdict.Tolerated = true
		verdict.ToleranceNotes = notes
		safe = append(safe, verdict)
	}
	return safe, filtered
}

// safePerAllergen evaluates each avoided allergen on its own, keeping the
// rest of the profile, and maps it to the items safe as served under just
// that restriction. Avoided flags are cleared for these runs: the mapping
// answers "what would this single allergen leave me".
func (e *Engine) safePerAllergen(catalog *models.Catalog, profile models.DinerProfile) map[string][]models.ItemSummary {
	out := make(map[string][]models.ItemSummary, len(profile.AvoidAllergens))
	for _, allergen := range profile.AvoidAllergens {
		isolated := profile
		isolated.AvoidAllergens = []string{allergen}
		isolated.AvoidFlags = nil

		items := []models.ItemSummary{}
		for i := range catalog.Items {
			item := &catalog.Items[i]
			if checkCompliance(item, isolated).safe() {
				items = append(items, models.ItemSummary{ID: item.ID, Name: item.Name, Category: item.Category})
			}
		}
		out[allergen] = items
	}
	return out
}
