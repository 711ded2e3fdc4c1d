package profile

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	applog "github.com/janisto/trail-profiles/internal/platform/logging"
	"github.com/janisto/trail-profiles/internal/service/authgw"
	profilesvc "github.com/janisto/trail-profiles/internal/service/profile"
)

// RetryAfterSeconds is sent with 503 responses when the auth service is down.
const RetryAfterSeconds = "30"

// Register registers profile endpoints.
func Register(api huma.API, svc profilesvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "list-profiles",
		Method:      http.MethodGet,
		Path:        "/profiles",
		Summary:     "List profiles",
		Description: "Returns every profile. Passwords are never included.",
		Tags:        []string{"Profiles"},
	}, func(ctx context.Context, _ *ProfileListInput) (*ProfileListOutput, error) {
		profiles, err := svc.List(ctx)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		out := make([]Profile, len(profiles))
		for i := range profiles {
			out[i] = toHTTPProfile(&profiles[i])
		}
		return &ProfileListOutput{Body: out}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-profile",
		Method:        http.MethodPost,
		Path:          "/profiles",
		Summary:       "Create profile",
		Description:   "Verifies the email and password with the external auth service, then stores the profile without the password.",
		Tags:          []string{"Profiles"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusUnauthorized, http.StatusConflict, http.StatusServiceUnavailable},
	}, func(ctx context.Context, input *ProfileCreateInput) (*ProfileCreateOutput, error) {
		profile, err := svc.Create(ctx, profilesvc.CreateParams{
			Email:    input.Body.Email,
			Password: input.Body.Password,
			Username: input.Body.Username,
			AboutMe:  input.Body.AboutMe,
			Location: input.Body.Location,
			Dob:      input.Body.Dob,
			Language: input.Body.Language,
			Role:     input.Body.Role,
		})
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &ProfileCreateOutput{
			Location: profileLocation(profile.Email),
			Body:     toHTTPProfile(profile),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/profiles/{email}",
		Summary:     "Get profile",
		Description: "Retrieves a single profile by email.",
		Tags:        []string{"Profiles"},
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *ProfileGetInput) (*ProfileGetOutput, error) {
		profile, err := svc.Get(ctx, input.Email)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &ProfileGetOutput{Body: toHTTPProfile(profile)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPut,
		Path:        "/profiles/{email}",
		Summary:     "Update profile",
		Description: "Replaces the provided fields. Email cannot change and any Password is ignored.",
		Tags:        []string{"Profiles"},
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *ProfileUpdateInput) (*ProfileUpdateOutput, error) {
		profile, err := svc.Update(ctx, input.Email, profilesvc.UpdateParams{
			Username: input.Body.Username,
			AboutMe:  input.Body.AboutMe,
			Location: input.Body.Location,
			Dob:      input.Body.Dob,
			Language: input.Body.Language,
			Role:     input.Body.Role,
		})
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &ProfileUpdateOutput{Body: toHTTPProfile(profile)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-profile",
		Method:      http.MethodDelete,
		Path:        "/profiles/{email}",
		Summary:     "Delete profile",
		Description: "Deletes the profile together with its favourite activities and saved trails.",
		Tags:        []string{"Profiles"},
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *ProfileDeleteInput) (*ProfileDeleteOutput, error) {
		if err := svc.Delete(ctx, input.Email); err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &ProfileDeleteOutput{
			Body: DeletedMessage{Message: fmt.Sprintf("Profile %s successfully deleted", input.Email)},
		}, nil
	})
}

func mapServiceError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, authgw.ErrRejected):
		return huma.Error401Unauthorized("authentication failed")
	case errors.Is(err, authgw.ErrUnavailable):
		return huma.ErrorWithHeaders(
			huma.Error503ServiceUnavailable("authentication service unavailable"),
			http.Header{"Retry-After": {RetryAfterSeconds}},
		)
	case errors.Is(err, profilesvc.ErrNotFound):
		return huma.Error404NotFound("profile not found")
	case errors.Is(err, profilesvc.ErrAlreadyExists):
		return huma.Error409Conflict("profile already exists")
	default:
		applog.LogError(ctx, "profile operation failed", err)
		return huma.Error500InternalServerError("internal error")
	}
}

func profileLocation(email string) string {
	return "/profiles/" + url.PathEscape(email)
}

func toHTTPProfile(p *profilesvc.Profile) Profile {
	return Profile{
		Email:    p.Email,
		Username: p.Username,
		AboutMe:  p.AboutMe,
		Location: p.Location,
		Dob:      p.Dob,
		Language: p.Language,
		Role:     p.Role,
	}
}
