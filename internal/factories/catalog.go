package factories

import (
	"math/rand"

	"github.com/dinesafe/dinesafe/internal/models"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
)

var fake = faker.New()

// componentPool maps component names to the allergens and flags they carry.
// Flag choices stay consistent with the engine's related-form table so
// generated catalogs exercise the tolerance path.
var componentPool = []models.Component{
	{Name: "rice noodles"},
	{Name: "jasmine rice"},
	{Name: "grilled chicken"},
	{Name: "tofu"},
	{Name: "wheat bun", Allergens: []string{models.AllergenGluten}},
	{Name: "soy glaze", Allergens: []string{models.AllergenGluten, models.AllergenSoy}, Flags: []string{models.FlagSoySauce}},
	{Name: "sesame dressing", Allergens: []string{models.AllergenSesame}, Flags: []string{models.FlagSesameOil}},
	{Name: "sesame seed garnish", Allergens: []string{models.AllergenSesame}, Flags: []string{models.FlagSesameSeed}},
	{Name: "peanut sauce", Allergens: []string{models.AllergenPeanut}, Flags: []string{models.FlagPeanutOil}},
	{Name: "oyster sauce", Allergens: []string{models.AllergenShellfish}, Flags: []string{models.FlagOysterSauce}},
	{Name: "shrimp", Allergens: []string{models.AllergenShellfish}},
	{Name: "fried egg", Allergens: []string{models.AllergenEgg}},
	{Name: "cheddar", Allergens: []string{models.AllergenDairy}},
	{Name: "crushed almonds", Allergens: []string{models.AllergenTreeNut}},
}

var categories = []string{"appetizer", "main course", "side dish", "dessert", "drink"}

var dishNames = []string{
	"Pad Thai", "Sesame Noodle Bowl", "Teriyaki Chicken", "Veggie Stir Fry",
	"Kung Pao Chicken", "Mapo Tofu", "Spring Rolls", "Dan Dan Noodles",
	"Fried Rice", "Lettuce Wraps", "Garden Salad", "Miso Soup",
	"Dumplings", "Satay Skewers", "Mango Sticky Rice",
}

type CatalogFactory struct {
	rng *rand.Rand
}

func NewCatalogFactory(seed int64) *CatalogFactory {
	return &CatalogFactory{rng: rand.New(rand.NewSource(seed))}
}

// CreateMenuItem builds one item with 2-5 components, plausible dietary tags,
// occasional cross-contact risk and a remove/substitute modification for one
// allergen-bearing component.
func (cf *CatalogFactory) CreateMenuItem() models.MenuItem {
	count := cf.rng.Intn(4) + 2
	components := make([]models.Component, count)
	for i := range components {
		components[i] = componentPool[cf.rng.Intn(len(componentPool))]
	}

	item := models.MenuItem{
		ID:         cuid.New(),
		Name:       dishNames[cf.rng.Intn(len(dishNames))],
		Category:   categories[cf.rng.Intn(len(categories))],
		Components: components,
	}

	if cf.animalFree(components) {
		item.Tags = append(item.Tags, models.DietVegetarian)
		if cf.rng.Float64() < 0.5 {
			item.Tags = append(item.Tags, models.DietVegan)
		}
	}

	if cf.rng.Float64() < 0.3 {
		item.CrossContact = []string{models.AllergenPeanut}
	}

	for _, comp := range components {
		if len(comp.Allergens) == 0 {
			continue
		}
		mod := models.Modification{
			Action: models.ActionRemove,
			Target: comp.Name,
			When:   models.Trigger{Allergens: comp.Allergens, Flags: comp.Flags},
		}
		if cf.rng.Float64() < 0.4 {
			mod.Action = models.ActionSubstitute
			mod.Substitute = fake.Lorem().Word() + " dressing"
		}
		item.Modifications = append(item.Modifications, mod)
		break
	}

	return item
}

func (cf *CatalogFactory) animalFree(components []models.Component) bool {
	animal := []string{models.AllergenShellfish, models.AllergenFish, models.AllergenEgg, models.AllergenDairy}
	meaty := map[string]bool{"grilled chicken": true, "shrimp": true}
	for _, comp := range components {
		if meaty[comp.Name] {
			return false
		}
		for _, a := range comp.Allergens {
			for _, b := range animal {
				if a == b {
					return false
				}
			}
		}
	}
	return true
}
