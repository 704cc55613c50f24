package models

// ItemVerdict is the per-item outcome of one evaluation run. Modifications is
// set only for items in the can-be-modified bucket; Tolerated and
// ToleranceNotes only when the tolerance pass promoted the item.
type ItemVerdict struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Category       string         `json:"category"`
	Reasons        []string       `json:"reasons,omitempty"`
	Modifications  []Modification `json:"modifications,omitempty"`
	Tolerated      bool           `json:"tolerated,omitempty"`
	ToleranceNotes []string       `json:"tolerance_notes,omitempty"`
}

// ItemSummary identifies an item in the per-allergen mapping.
type ItemSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Report is the full result of one evaluation run. Every catalog item lands
// in exactly one of the three buckets.
type Report struct {
	Safe            []ItemVerdict            `json:"safe"`
	CanBeModified   []ItemVerdict            `json:"can_be_modified"`
	Filtered        []ItemVerdict            `json:"filtered"`
	SafePerAllergen map[string][]ItemSummary `json:"safe_per_allergen,omitempty"`
}
