package bookmark

import httpactivity "github.com/janisto/trail-profiles/internal/http/v1/activity"

// ProfileActivitiesOutput for GET /profiles/{email}/activities
type ProfileActivitiesOutput struct {
	Body []httpactivity.Activity
}

// AddActivityOutput for POST /profiles/{email}/activities (201 Created)
type AddActivityOutput struct {
	Body ActivityAddedMessage
}

// ProfileTrailsOutput for GET /profiles/{email}/trails
type ProfileTrailsOutput struct {
	Body []SavedTrail
}

// AddTrailOutput for POST /profiles/{email}/trails (201 Created)
type AddTrailOutput struct {
	Body SavedTrail
}
