package models

// DinerProfile is the caller-supplied restriction set for one evaluation.
// The zero value means "no restrictions": an empty profile filters nothing.
type DinerProfile struct {
	Diets              []string `json:"diets,omitempty"`
	AvoidAllergens     []string `json:"avoid_allergens,omitempty"`
	AvoidFlags         []string `json:"avoid_flags,omitempty"`
	ToleratedFlags     []string `json:"tolerated_flags,omitempty"`
	AcceptCrossContact bool     `json:"accept_cross_contact,omitempty"`
}

// Tolerance answers, per avoided allergen, whether the diner accepts its
// designated processed form (e.g. soy sauce as a gluten source). Allergens
// without an entry, or without a known form relation, are never promoted.
type Tolerance map[string]bool
