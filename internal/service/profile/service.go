package profile

import (
	"context"
	"errors"

	"github.com/janisto/trail-profiles/internal/platform/timeutil"
)

// Service errors. Create additionally returns authgw.ErrRejected or
// authgw.ErrUnavailable (wrapped) when the credential check fails.
var (
	ErrNotFound      = errors.New("profile not found")
	ErrAlreadyExists = errors.New("profile already exists")
)

// Profile is the stored profile. It never carries a password.
type Profile struct {
	Email    string
	Username string
	AboutMe  string
	Location string
	Dob      timeutil.Date
	Language string
	Role     string
}

// CreateParams for creating a profile. Password is only forwarded to the
// auth gateway.
type CreateParams struct {
	Email    string
	Password string
	Username string
	AboutMe  string
	Location string
	Dob      timeutil.Date
	Language string
	Role     string
}

// UpdateParams for updating a profile. Nil fields are left unchanged.
type UpdateParams struct {
	Username *string
	AboutMe  *string
	Location *string
	Dob      *timeutil.Date
	Language *string
	Role     *string
}

// Service defines profile operations.
//
// Implementations must normalize emails (trim, lowercase) before every lookup
// and write, and default Role to "User" when empty.
type Service interface {
	List(ctx context.Context) ([]Profile, error)
	Create(ctx context.Context, params CreateParams) (*Profile, error)
	Get(ctx context.Context, email string) (*Profile, error)
	Update(ctx context.Context, email string, params UpdateParams) (*Profile, error)
	Delete(ctx context.Context, email string) error
}

func applyUpdate(p *Profile, params UpdateParams) {
	if params.Username != nil {
		p.Username = *params.Username
	}
	if params.AboutMe != nil {
		p.AboutMe = *params.AboutMe
	}
	if params.Location != nil {
		p.Location = *params.Location
	}
	if params.Dob != nil {
		p.Dob = *params.Dob
	}
	if params.Language != nil {
		p.Language = *params.Language
	}
	if params.Role != nil {
		p.Role = *params.Role
	}
}

func newProfile(email string, params CreateParams) Profile {
	role := params.Role
	if role == "" {
		role = defaultRole
	}
	return Profile{
		Email:    email,
		Username: params.Username,
		AboutMe:  params.AboutMe,
		Location: params.Location,
		Dob:      params.Dob,
		Language: params.Language,
		Role:     role,
	}
}
