package engine

import (
	"encoding/json"
	"testing"

	"github.com/dinesafe/dinesafe/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *models.Catalog {
	return &models.Catalog{Items: []models.MenuItem{
		{
			ID: "plain", Name: "Garden Salad", Category: "side dish",
			Tags:       []string{models.DietVegetarian, models.DietVegan},
			Components: []models.Component{{Name: "lettuce"}, {Name: "tomato"}},
		},
		{
			ID: "glazed", Name: "Glazed Bowl", Category: "main course",
			Components: []models.Component{
				{Name: "rice"},
				{Name: "soy glaze", Allergens: []string{models.AllergenGluten}, Flags: []string{models.FlagSoySauce}},
			},
			Modifications: []models.Modification{
				{Action: models.ActionRemove, Target: "soy glaze", When: models.Trigger{Allergens: []string{models.AllergenGluten}}},
			},
		},
		{
			ID: "sesame", Name: "Sesame Noodles", Category: "main course",
			Components: []models.Component{
				{Name: "noodles"},
				{Name: "sesame oil drizzle", Allergens: []string{models.AllergenSesame}, Flags: []string{models.FlagSesameOil}},
			},
		},
		{
			ID: "shrimp", Name: "Shrimp Toast", Category: "appetizer",
			Components: []models.Component{
				{Name: "shrimp", Allergens: []string{models.AllergenShellfish}},
			},
		},
	}}
}

func bucketCount(r *models.Report) int {
	return len(r.Safe) + len(r.CanBeModified) + len(r.Filtered)
}

func TestEvaluateBucketsAreExhaustiveAndExclusive(t *testing.T) {
	eng := New(testCatalog())
	profiles := []models.DinerProfile{
		{},
		{Diets: []string{models.DietVegan}},
		{AvoidAllergens: []string{models.AllergenGluten, models.AllergenSesame, models.AllergenShellfish}},
		{AvoidFlags: []string{models.FlagSoySauce}},
		{AvoidAllergens: []string{models.AllergenSesame}, ToleratedFlags: []string{models.FlagSesameOil}},
	}

	for _, profile := range profiles {
		report := eng.Evaluate(profile, Options{})
		require.Equal(t, len(testCatalog().Items), bucketCount(report), "every item lands in exactly one bucket")

		seen := map[string]bool{}
		for _, bucket := range [][]models.ItemVerdict{report.Safe, report.CanBeModified, report.Filtered} {
			for _, v := range bucket {
				require.False(t, seen[v.ID], "item %s appeared in two buckets", v.ID)
				seen[v.ID] = true
			}
		}
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	eng := New(testCatalog())
	profile := models.DinerProfile{
		AvoidAllergens: []string{models.AllergenGluten, models.AllergenSesame},
	}
	opts := Options{Tolerance: models.Tolerance{models.AllergenSesame: true}, PerAllergen: true}

	first := eng.Evaluate(profile, opts)
	second := eng.Evaluate(profile, opts)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b), "repeat runs must not observe hidden mutation")
}

func TestEvaluateModifiableItemListsModifications(t *testing.T) {
	eng := New(testCatalog())
	report := eng.Evaluate(models.DinerProfile{AvoidAllergens: []string{models.AllergenGluten}}, Options{})

	require.Len(t, report.CanBeModified, 1)
	v := report.CanBeModified[0]
	require.Equal(t, "glazed", v.ID)
	require.Len(t, v.Modifications, 1)
	require.Equal(t, "soy glaze", v.Modifications[0].Target)
	require.NotEmpty(t, v.Reasons, "the triggering issue stays explained")
}

func TestEvaluateSesameToleranceScenario(t *testing.T) {
	eng := New(testCatalog())
	profile := models.DinerProfile{AvoidAllergens: []string{models.AllergenSesame}}

	// First pass: no tolerated flags, the sesame item is filtered with an
	// intolerable-sesame reason.
	report := eng.Evaluate(profile, Options{})
	require.Len(t, report.Filtered, 1)
	require.Equal(t, "sesame", report.Filtered[0].ID)
	require.Contains(t, report.Filtered[0].Reasons[0], models.AllergenSesame)

	// Re-run tolerating sesame_oil: safe with a tolerated-form reason.
	profile.ToleratedFlags = []string{models.FlagSesameOil}
	report = eng.Evaluate(profile, Options{})
	require.Empty(t, report.Filtered)
	var found *models.ItemVerdict
	for i := range report.Safe {
		if report.Safe[i].ID == "sesame" {
			found = &report.Safe[i]
		}
	}
	require.NotNil(t, found)
	require.NotEmpty(t, found.Reasons)
	require.Contains(t, found.Reasons[0], "tolerated form")
}

func TestEvaluateVeganPreferenceFiltersUntaggedItem(t *testing.T) {
	eng := New(testCatalog())
	report := eng.Evaluate(models.DinerProfile{Diets: []string{models.DietVegan}}, Options{})

	require.Len(t, report.Safe, 1)
	require.Equal(t, "plain", report.Safe[0].ID)
	require.Empty(t, report.CanBeModified, "dietary non-compliance is never rescued by modification")
	for _, v := range report.Filtered {
		require.Contains(t, v.Reasons[0], models.DietVegan)
	}
}

func TestEvaluateTolerancePromotionIsFlagged(t *testing.T) {
	eng := New(testCatalog())
	profile := models.DinerProfile{AvoidAllergens: []string{models.AllergenSesame}}
	report := eng.Evaluate(profile, Options{Tolerance: models.Tolerance{models.AllergenSesame: true}})

	var promoted *models.ItemVerdict
	for i := range report.Safe {
		if report.Safe[i].ID == "sesame" {
			promoted = &report.Safe[i]
		}
	}
	require.NotNil(t, promoted, "tolerated item must be promoted to safe")
	require.True(t, promoted.Tolerated, "promotion must be distinguishable from first-pass safety")
	require.NotEmpty(t, promoted.ToleranceNotes)
	require.NotEmpty(t, promoted.Reasons, "original rejection reasons carry forward")

	for _, v := range report.Safe {
		if v.ID != "sesame" {
			require.False(t, v.Tolerated)
		}
	}
}

func TestEvaluateToleranceMonotonicity(t *testing.T) {
	eng := New(testCatalog())
	profile := models.DinerProfile{
		AvoidAllergens: []string{models.AllergenGluten, models.AllergenSesame},
	}

	before := eng.Evaluate(profile, Options{})
	after := eng.Evaluate(profile, Options{Tolerance: models.Tolerance{models.AllergenSesame: true}})

	// Safe and modifiable items never move out.
	for _, v := range before.Safe {
		require.True(t, inBucket(after.Safe, v.ID), "safe item %s must stay safe", v.ID)
	}
	for _, v := range before.CanBeModified {
		require.True(t, inBucket(after.CanBeModified, v.ID))
	}
	// Filtered count can only shrink.
	require.LessOrEqual(t, len(after.Filtered), len(before.Filtered))
}

func TestEvaluatePerAllergenIsolation(t *testing.T) {
	eng := New(testCatalog())
	profile := models.DinerProfile{
		AvoidAllergens: []string{models.AllergenGluten, models.AllergenShellfish},
	}
	report := eng.Evaluate(profile, Options{PerAllergen: true})

	require.Len(t, report.SafePerAllergen, 2)
	// Considering shellfish alone, the glazed bowl is safe as served.
	require.True(t, inSummaries(report.SafePerAllergen[models.AllergenShellfish], "glazed"))
	require.False(t, inSummaries(report.SafePerAllergen[models.AllergenGluten], "glazed"))
	// The shrimp toast is unsafe only because of shellfish.
	require.True(t, inSummaries(report.SafePerAllergen[models.AllergenGluten], "shrimp"))
	require.False(t, inSummaries(report.SafePerAllergen[models.AllergenShellfish], "shrimp"))
}

func TestReplaceCatalogSwapsSnapshot(t *testing.T) {
	eng := New(testCatalog())
	require.Equal(t, 4, bucketCount(eng.Evaluate(models.DinerProfile{}, Options{})))

	eng.ReplaceCatalog(&models.Catalog{Items: []models.MenuItem{
		{ID: "only", Name: "Only Dish", Components: []models.Component{{Name: "rice"}}},
	}})
	report := eng.Evaluate(models.DinerProfile{}, Options{})
	require.Equal(t, 1, bucketCount(report))
	require.Equal(t, "only", report.Safe[0].ID)
}

func inBucket(bucket []models.ItemVerdict, id string) bool {
	for _, v := range bucket {
		if v.ID == id {
			return true
		}
	}
	return false
}

func inSummaries(items []models.ItemSummary, id string) bool {
	for _, s := range items {
		if s.ID == id {
			return true
		}
	}
	return false
}
