package engine

import (
	"fmt"

	"github.com/dinesafe/dinesafe/internal/models"
)

// applicableModifications selects the declared modifications whose trigger
// intersects the avoided allergen or flag sets.
func applicableModifications(item *models.MenuItem, avoidAllergens, avoidFlags []string) []models.Modification {
	var mods []models.Modification
	for _, mod := range item.Modifications {
		if len(intersect(mod.When.Allergens, avoidAllergens)) > 0 || len(intersect(mod.When.Flags, avoidFlags)) > 0 {
			mods = append(mods, mod)
		}
	}
	return mods
}

// applyModifications derives the effective component list after applying
// every modification to the same working copy, in declaration order. The
// catalog components are never touched. Substitutes are assumed clean: the
// synthetic component carries no allergens or flags, only a note naming the
// swap.
func applyModifications(components []models.Component, mods []models.Modification) []models.Component {
	working := make([]models.Component, len(components))
	copy(working, components)

	for _, mod := range mods {
		switch mod.Action {
		case models.ActionRemove:
			kept := working[:0]
			for _, comp := range working {
				if comp.Name != mod.Target {
					kept = append(kept, comp)
				}
			}
			working = kept
		case models.ActionSubstitute:
			for i, comp := range working {
				if comp.Name == mod.Target {
					working[i] = models.Component{
						Name: mod.Substitute,
						Note: fmt.Sprintf("substituted for %s", mod.Target),
					}
				}
			}
		}
	}
	return working
}

// resolveModifications decides whether the item's declared modifications,
// applied jointly, clear every allergen, flag and cross-contact issue for
// this profile. On success it returns the modifications the diner must
// request. Dietary failures are out of scope here: a missing diet tag can
// never be modified away.
func resolveModifications(item *models.MenuItem, profile models.DinerProfile) ([]models.Modification, bool) {
	mods := applicableModifications(item, profile.AvoidAllergens, profile.AvoidFlags)
	if len(mods) == 0 {
		return nil, false
	}

	effective := applyModifications(item.Components, mods)
	blockers, _ := componentIssues(effective, profile.AvoidAllergens, profile.AvoidFlags, profile.ToleratedFlags)
	// Modifications edit ingredients, not kitchen practice: the item's
	// original cross-contact risk set still applies.
	blockers = append(blockers, crossContactIssues(item, profile.AvoidAllergens, profile.AcceptCrossContact)...)
	if len(blockers) > 0 {
		return nil, false
	}
	return mods, true
}
