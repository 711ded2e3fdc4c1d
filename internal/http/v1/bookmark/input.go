package bookmark

import "github.com/janisto/trail-profiles/internal/platform/timeutil"

// ProfileActivitiesInput for GET /profiles/{email}/activities
type ProfileActivitiesInput struct {
	Email string `path:"email" maxLength:"254" doc:"Profile email" example:"walker@example.com"`
}

// AddActivityInput for POST /profiles/{email}/activities
type AddActivityInput struct {
	Email string `path:"email" maxLength:"254" doc:"Profile email" example:"walker@example.com"`
	Body  struct {
		ActivityID int64 `json:"Activity_id" minimum:"1" required:"true" doc:"Activity to add" example:"1"`
	}
}

// ProfileTrailsInput for GET /profiles/{email}/trails
type ProfileTrailsInput struct {
	Email string `path:"email" maxLength:"254" doc:"Profile email" example:"walker@example.com"`
}

// AddTrailInput for POST /profiles/{email}/trails
type AddTrailInput struct {
	Email string `path:"email" maxLength:"254" doc:"Profile email" example:"walker@example.com"`
	Body  struct {
		TrailID   int64         `json:"Trail_id"             required:"true" doc:"External trail identifier" example:"42"`
		SavedDate timeutil.Date `json:"Saved_date,omitempty"                 doc:"Date saved, defaults to today"`
	}
}
