package models

const (
	AllergenGluten    = "gluten"
	AllergenDairy     = "dairy"
	AllergenEgg       = "egg"
	AllergenPeanut    = "peanut"
	AllergenTreeNut   = "tree_nut"
	AllergenSesame    = "sesame"
	AllergenSoy       = "soy"
	AllergenShellfish = "shellfish"
	AllergenFish      = "fish"

	FlagSoySauce    = "soy_sauce"
	FlagSesameOil   = "sesame_oil"
	FlagSesameSeed  = "sesame_seed"
	FlagPeanutOil   = "peanut_oil"
	FlagOysterSauce = "oyster_sauce"

	DietVegetarian = "vegetarian"
	DietVegan      = "vegan"

	ActionRemove     = "remove"
	ActionSubstitute = "substitute"
)
