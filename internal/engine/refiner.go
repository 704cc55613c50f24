package engine

import (
	"fmt"

	"github.com/dinesafe/dinesafe/internal/models"
)

// refineTolerance re-examines one filtered item against the diner's
// per-allergen tolerance declaration. An avoided allergen is forgiven only if
// every component declaring it carries its designated tolerable form and no
// other related form; a component mixing a tolerable and an intolerable form
// of the same allergen keeps the item rejected. Promotion additionally
// requires that no other blocking issue remains, so a dietary failure, an
// avoided flag or a cross-contact risk is never talked away by tolerance.
func refineTolerance(item *models.MenuItem, profile models.DinerProfile, tolerance models.Tolerance) ([]string, bool) {
	var forgiven, notes []string
	for _, allergen := range profile.AvoidAllergens {
		rel, ok := relatedForms[allergen]
		if !ok || !tolerance[allergen] {
			continue
		}
		carriers := componentsWithAllergen(item, allergen)
		if len(carriers) == 0 {
			continue
		}
		if !allCarriersTolerable(carriers, rel) {
			continue
		}
		forgiven = append(forgiven, allergen)
		notes = append(notes, fmt.Sprintf("%s accepted: present only as %s", allergen, rel.Tolerable))
	}
	if len(forgiven) == 0 {
		return nil, false
	}

	for _, diet := range profile.Diets {
		if !contains(item.Tags, diet) {
			return nil, false
		}
	}

	remaining := subtract(profile.AvoidAllergens, forgiven)
	blockers, _ := componentIssues(item.Components, remaining, profile.AvoidFlags, profile.ToleratedFlags)
	// Tolerance is declared for a processed ingredient form; incidental
	// cross-contact exposure stays checked against the full avoided set.
	blockers = append(blockers, crossContactIssues(item, profile.AvoidAllergens, profile.AcceptCrossContact)...)
	if len(blockers) > 0 {
		return nil, false
	}
	return notes, true
}

func componentsWithAllergen(item *models.MenuItem, allergen string) []models.Component {
	var carriers []models.Component
	for _, comp := range item.Components {
		if contains(comp.Allergens, allergen) {
			carriers = append(carriers, comp)
		}
	}
	return carriers
}

func allCarriersTolerable(carriers []models.Component, rel formRelation) bool {
	for _, comp := range carriers {
		if !contains(comp.Flags, rel.Tolerable) {
			return false
		}
		for _, f := range comp.Flags {
			if f != rel.Tolerable && contains(rel.Related, f) {
				return false
			}
		}
	}
	return true
}
