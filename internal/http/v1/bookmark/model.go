package bookmark

import "github.com/janisto/trail-profiles/internal/platform/timeutil"

// SavedTrail represents a saved trail.
type SavedTrail struct {
	Email     string        `json:"Email"      doc:"Profile email"             example:"walker@example.com"`
	TrailID   int64         `json:"Trail_id"   doc:"External trail identifier" example:"42"`
	SavedDate timeutil.Date `json:"Saved_date" doc:"Date the trail was saved"`
}

// ActivityAddedMessage confirms a stored favourite.
type ActivityAddedMessage struct {
	Message string `json:"message" doc:"Confirmation message" example:"Activity added"`
}
