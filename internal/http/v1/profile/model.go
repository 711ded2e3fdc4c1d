package profile

import "github.com/janisto/trail-profiles/internal/platform/timeutil"

// Profile represents a profile response. It has no password field.
type Profile struct {
	Email    string        `json:"Email"    doc:"Email address"      example:"walker@example.com"`
	Username string        `json:"Username" doc:"Display name"       example:"walker"`
	AboutMe  string        `json:"About_me" doc:"Free text"          example:"Weekend hill walker"`
	Location string        `json:"Location" doc:"Home location"      example:"Plymouth"`
	Dob      timeutil.Date `json:"Dob"      doc:"Date of birth, null when unknown"`
	Language string        `json:"Language" doc:"Preferred language" example:"English"`
	Role     string        `json:"Role"     doc:"Role code"          example:"User"`
}

// DeletedMessage confirms a profile deletion.
type DeletedMessage struct {
	Message string `json:"message" doc:"Confirmation message" example:"Profile walker@example.com successfully deleted"`
}
