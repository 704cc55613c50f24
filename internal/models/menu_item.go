package models

// MenuItem is one catalog entry. Items are loaded once and never mutated;
// evaluation works on derived copies of the component list.
type MenuItem struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Category      string         `json:"category"`
	Tags          []string       `json:"tags,omitempty"`
	CrossContact  []string       `json:"cross_contact,omitempty"`
	Components    []Component    `json:"components,omitempty"`
	Modifications []Modification `json:"modifications,omitempty"`
}

// Component is a single ingredient or preparation of an item. Flags name the
// specific form an ingredient takes (e.g. sesame_oil, soy_sauce); a component
// may carry several allergens and flags at once.
type Component struct {
	Name      string   `json:"name"`
	Allergens []string `json:"allergens,omitempty"`
	Flags     []string `json:"flags,omitempty"`
	Note      string   `json:"note,omitempty"`
}

// Trigger is the condition under which a modification applies: it fires when
// any of its allergens or flags is being avoided.
type Trigger struct {
	Allergens []string `json:"allergens,omitempty"`
	Flags     []string `json:"flags,omitempty"`
}

// Modification is a declared edit the kitchen can make to an item.
type Modification struct {
	Action     string  `json:"action"`
	Target     string  `json:"target"`
	Substitute string  `json:"substitute,omitempty"`
	When       Trigger `json:"when"`
}

// Catalog is an immutable snapshot of the menu. A reload builds a new Catalog
// and swaps the snapshot pointer; in-flight evaluations keep reading the one
// they started with.
type Catalog struct {
	Items []MenuItem `json:"items"`
}
