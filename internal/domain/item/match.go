package item

import "time"

// Scores are produced by the external matching engine and stored as
// opaque data; no scoring logic lives in this service.
type Scores struct {
	Overall     float64 `json:"overallScore"`
	Name        float64 `json:"nameScore"`
	Description float64 `json:"descriptionScore"`
	Location    float64 `json:"locationScore"`
	Image       float64 `json:"imageScore"`
}

// Match links an item to a candidate counterpart with the engine's
// scores.
type Match struct {
	ItemID        ID
	MatchedItemID ID
	Scores        Scores
	CreatedAt     time.Time
}

// Filter narrows item listings. Zero values mean "any".
type Filter struct {
	Kind   Kind
	Status Status
	Limit  int
	Offset int
}
