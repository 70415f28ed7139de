package intake

// Result is the structured output of the photo intake assistant, shaped so a
// client can pre-fill the donation form from it.
type Result struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`    // bread, dairy, produce, canned, beverages, desserts, other
	Condition   string     `json:"condition"`   // sealed, opened
	Storage     string     `json:"storage"`     // ambient, refrigerated, frozen
	ExpiryDate  *string    `json:"expiry_date"` // YYYY-MM-DD, null when unreadable
	Allergens   []string   `json:"allergens"`
	Notes       []string   `json:"notes"`
	Confidence  Confidence `json:"confidence"`
}

type Confidence struct {
	Overall  float64 `json:"overall"`
	Expiry   float64 `json:"expiry"`
	Category float64 `json:"category"`
}

// Image is one uploaded photo, already read into memory.
type Image struct {
	MIMEType string
	Data     []byte
}
