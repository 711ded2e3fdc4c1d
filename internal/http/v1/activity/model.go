package activity

// Activity represents an activity type.
type Activity struct {
	ID   int64  `json:"Activity_id" doc:"Activity identifier" example:"1"`
	Name string `json:"Activity"    doc:"Activity name"       example:"Hiking"`
}
