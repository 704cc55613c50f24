package engine

import "github.com/dinesafe/dinesafe/internal/models"

// formRelation ties an allergen to the ingredient flags that are forms of it.
// Tolerable is the one processed form a diner may declare acceptable; Related
// lists every flag that counts as a form of the allergen, the tolerable one
// included. Allergens absent from the table never qualify for tolerance.
type formRelation struct {
	Related   []string
	Tolerable string
}

var relatedForms = map[string]formRelation{
	models.AllergenSesame: {
		Related:   []string{models.FlagSesameSeed, models.FlagSesameOil},
		Tolerable: models.FlagSesameOil,
	},
	models.AllergenGluten: {
		Related:   []string{models.FlagSoySauce},
		Tolerable: models.FlagSoySauce,
	},
	models.AllergenShellfish: {
		Related:   []string{models.FlagOysterSauce},
		Tolerable: models.FlagOysterSauce,
	},
	models.AllergenPeanut: {
		Related:   []string{models.FlagPeanutOil},
		Tolerable: models.FlagPeanutOil,
	},
}

// allergenCovered reports whether an avoided allergen found on a component is
// acceptable because the diner tolerates one of its related forms and the
// component actually declares that form.
func allergenCovered(allergen string, componentFlags, toleratedFlags []string) bool {
	rel, ok := relatedForms[allergen]
	if !ok {
		return false
	}
	for _, f := range toleratedFlags {
		if contains(rel.Related, f) && contains(componentFlags, f) {
			return true
		}
	}
	return false
}
