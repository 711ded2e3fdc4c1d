package profile

import "github.com/janisto/trail-profiles/internal/platform/timeutil"

// ProfileListInput for GET /profiles (no parameters)
type ProfileListInput struct{}

// ProfileCreateInput for POST /profiles
type ProfileCreateInput struct {
	Body struct {
		Email    string        `json:"Email"              format:"email" pattern:"^[^\\s<>@]+@[^\\s<>@]+$" patternDescription:"bare address without a display name" maxLength:"254" required:"true" doc:"Email address, the profile key" example:"walker@example.com"`
		Password string        `json:"Password"           minLength:"1"                  required:"true" doc:"Password checked by the auth service; never stored" example:"s3cret"`
		Username string        `json:"Username,omitempty" maxLength:"30"                                 doc:"Display name"   example:"walker"`
		AboutMe  string        `json:"About_me,omitempty"                                                doc:"Free text"      example:"Weekend hill walker"`
		Location string        `json:"Location,omitempty" maxLength:"50"                                 doc:"Home location"  example:"Plymouth"`
		Dob      timeutil.Date `json:"Dob,omitempty"                                                     doc:"Date of birth"`
		Language string        `json:"Language,omitempty" maxLength:"30"                                 doc:"Preferred language" example:"English"`
		Role     string        `json:"Role,omitempty"     maxLength:"5"                                  doc:"Role code, defaults to User" example:"User"`
	}
}

// ProfileGetInput for GET /profiles/{email}
type ProfileGetInput struct {
	Email string `path:"email" maxLength:"254" doc:"Profile email" example:"walker@example.com"`
}

// ProfileUpdateInput for PUT /profiles/{email}. Password is accepted for
// compatibility and ignored.
type ProfileUpdateInput struct {
	Email string `path:"email" maxLength:"254" doc:"Profile email" example:"walker@example.com"`
	Body  struct {
		Username *string        `json:"Username,omitempty" maxLength:"30" doc:"Display name"       example:"walker"`
		AboutMe  *string        `json:"About_me,omitempty"                doc:"Free text"          example:"Weekend hill walker"`
		Location *string        `json:"Location,omitempty" maxLength:"50" doc:"Home location"      example:"Plymouth"`
		Dob      *timeutil.Date `json:"Dob,omitempty"                     doc:"Date of birth"`
		Language *string        `json:"Language,omitempty" maxLength:"30" doc:"Preferred language" example:"English"`
		Role     *string        `json:"Role,omitempty"     maxLength:"5"  doc:"Role code"          example:"User"`
		Password *string        `json:"Password,omitempty"                doc:"Ignored; passwords cannot be changed here"`
	}
}

// ProfileDeleteInput for DELETE /profiles/{email}
type ProfileDeleteInput struct {
	Email string `path:"email" maxLength:"254" doc:"Profile email" example:"walker@example.com"`
}
