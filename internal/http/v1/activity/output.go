package activity

// ActivityListOutput for GET /activities
type ActivityListOutput struct {
	Body []Activity
}

// ActivityGetOutput for GET /activities/{id}
type ActivityGetOutput struct {
	Body Activity
}

// ActivityCreateOutput for POST /activities (201 Created)
type ActivityCreateOutput struct {
	Location string `header:"Location" doc:"URL of created activity"`
	Body     Activity
}
