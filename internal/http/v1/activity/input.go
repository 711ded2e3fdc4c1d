package activity

// ActivityListInput for GET /activities (no parameters)
type ActivityListInput struct{}

// ActivityGetInput for GET /activities/{id}
type ActivityGetInput struct {
	ID int64 `path:"id" minimum:"1" doc:"Activity id" example:"1"`
}

// ActivityCreateInput for POST /activities
type ActivityCreateInput struct {
	Body struct {
		Activity string `json:"Activity" minLength:"1" maxLength:"30" required:"true" doc:"Activity name, unique" example:"Hiking"`
	}
}
