package engine

import (
	"fmt"
	"strings"

	"github.com/dinesafe/dinesafe/internal/models"
)

// compliance is the outcome of one compliance pass. The dietary and allergen
// verdicts are independent: an item can fail both, and modifications can fix
// only the allergen side. Reasons holds blocking reasons followed by
// informational notes, in component order.
type compliance struct {
	dietaryOK  bool
	allergenOK bool
	reasons    []string
}

func (c compliance) safe() bool { return c.dietaryOK && c.allergenOK }

// checkCompliance evaluates one item as served against the full profile.
func checkCompliance(item *models.MenuItem, profile models.DinerProfile) compliance {
	c := compliance{dietaryOK: true, allergenOK: true}

	for _, diet := range profile.Diets {
		if !contains(item.Tags, diet) {
			c.dietaryOK = false
			c.reasons = append(c.reasons, fmt.Sprintf("not suitable: item is not marked %s", diet))
		}
	}

	blockers, notes := componentIssues(item.Components, profile.AvoidAllergens, profile.AvoidFlags, profile.ToleratedFlags)
	blockers = append(blockers, crossContactIssues(item, profile.AvoidAllergens, profile.AcceptCrossContact)...)
	if len(blockers) > 0 {
		c.allergenOK = false
	}
	c.reasons = append(c.reasons, blockers...)
	c.reasons = append(c.reasons, notes...)
	return c
}

// componentIssues walks a component list and splits findings into blocking
// reasons and informational notes. An avoided allergen on a component blocks
// unless the diner tolerates a related form that the component declares; an
// avoided flag always blocks, tolerance never exempts it.
func componentIssues(components []models.Component, avoidAllergens, avoidFlags, toleratedFlags []string) (blockers, notes []string) {
	for _, comp := range components {
		hits := intersect(comp.Allergens, avoidAllergens)
		if len(hits) > 0 {
			var intolerable, covered []string
			for _, allergen := range hits {
				if allergenCovered(allergen, comp.Flags, toleratedFlags) {
					covered = append(covered, allergen)
				} else {
					intolerable = append(intolerable, allergen)
				}
			}
			if len(intolerable) > 0 {
				blockers = append(blockers, fmt.Sprintf("%s contains %s", comp.Name, strings.Join(intolerable, ", ")))
			}
			if len(covered) > 0 {
				notes = append(notes, fmt.Sprintf("%s contains %s only as a tolerated form", comp.Name, strings.Join(covered, ", ")))
			}
		}
		if flagHits := intersect(comp.Flags, avoidFlags); len(flagHits) > 0 {
			blockers = append(blockers, fmt.Sprintf("%s contains %s", comp.Name, strings.Join(flagHits, ", ")))
		}
	}
	return blockers, notes
}

// crossContactIssues checks the item-level cross-contact risk set. It is
// skipped entirely when the diner accepts cross-contact.
func crossContactIssues(item *models.MenuItem, avoidAllergens []string, accept bool) []string {
	if accept {
		return nil
	}
	hits := intersect(item.CrossContact, avoidAllergens)
	if len(hits) == 0 {
		return nil
	}
	return []string{fmt.Sprintf("possible cross-contact with %s", strings.Join(hits, ", "))}
}
