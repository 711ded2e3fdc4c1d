package profile

// ProfileListOutput for GET /profiles
type ProfileListOutput struct {
	Body []Profile
}

// ProfileCreateOutput for POST /profiles (201 Created)
type ProfileCreateOutput struct {
	Location string `header:"Location" doc:"URL of created profile"`
	Body     Profile
}

// ProfileGetOutput for GET /profiles/{email}
type ProfileGetOutput struct {
	Body Profile
}

// ProfileUpdateOutput for PUT /profiles/{email}
type ProfileUpdateOutput struct {
	Body Profile
}

// ProfileDeleteOutput for DELETE /profiles/{email}
type ProfileDeleteOutput struct {
	Body DeletedMessage
}
