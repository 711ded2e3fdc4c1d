// Package bookmark exposes a profile's favourite activities and saved trails.
package bookmark

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	httpactivity "github.com/janisto/trail-profiles/internal/http/v1/activity"
	applog "github.com/janisto/trail-profiles/internal/platform/logging"
	bookmarksvc "github.com/janisto/trail-profiles/internal/service/bookmark"
)

// ActivityAdded is the confirmation returned when a favourite is stored.
const ActivityAdded = "Activity added"

// Register registers favourite-activity and saved-trail endpoints.
func Register(api huma.API, svc bookmarksvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "list-profile-activities",
		Method:      http.MethodGet,
		Path:        "/profiles/{email}/activities",
		Summary:     "List liked activities",
		Description: "Returns the activities the profile has marked as favourites.",
		Tags:        []string{"Bookmarks"},
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *ProfileActivitiesInput) (*ProfileActivitiesOutput, error) {
		activities, err := svc.ListActivities(ctx, input.Email)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &ProfileActivitiesOutput{Body: httpactivity.ToHTTPActivities(activities)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "add-profile-activity",
		Method:        http.MethodPost,
		Path:          "/profiles/{email}/activities",
		Summary:       "Add liked activity",
		Description:   "Marks an existing activity as a favourite of the profile.",
		Tags:          []string{"Bookmarks"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusNotFound, http.StatusConflict},
	}, func(ctx context.Context, input *AddActivityInput) (*AddActivityOutput, error) {
		if err := svc.AddActivity(ctx, input.Email, input.Body.ActivityID); err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &AddActivityOutput{Body: ActivityAddedMessage{Message: ActivityAdded}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-profile-trails",
		Method:      http.MethodGet,
		Path:        "/profiles/{email}/trails",
		Summary:     "List saved trails",
		Description: "Returns the trails the profile has saved.",
		Tags:        []string{"Bookmarks"},
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *ProfileTrailsInput) (*ProfileTrailsOutput, error) {
		trails, err := svc.ListTrails(ctx, input.Email)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		out := make([]SavedTrail, len(trails))
		for i := range trails {
			out[i] = toHTTPSavedTrail(&trails[i])
		}
		return &ProfileTrailsOutput{Body: out}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "add-profile-trail",
		Method:        http.MethodPost,
		Path:          "/profiles/{email}/trails",
		Summary:       "Save trail",
		Description:   "Saves an external trail for the profile. Saved_date defaults to today (UTC).",
		Tags:          []string{"Bookmarks"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusNotFound, http.StatusConflict},
	}, func(ctx context.Context, input *AddTrailInput) (*AddTrailOutput, error) {
		trail, err := svc.AddTrail(ctx, input.Email, bookmarksvc.AddTrailParams{
			TrailID:   input.Body.TrailID,
			SavedDate: input.Body.SavedDate,
		})
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &AddTrailOutput{Body: toHTTPSavedTrail(trail)}, nil
	})
}

func mapServiceError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, bookmarksvc.ErrProfileNotFound):
		return huma.Error404NotFound("profile not found")
	case errors.Is(err, bookmarksvc.ErrActivityNotFound):
		return huma.Error404NotFound("activity not found")
	case errors.Is(err, bookmarksvc.ErrAlreadyExists):
		return huma.Error409Conflict("already saved")
	default:
		applog.LogError(ctx, "bookmark operation failed", err)
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPSavedTrail(t *bookmarksvc.SavedTrail) SavedTrail {
	return SavedTrail{
		Email:     t.Email,
		TrailID:   t.TrailID,
		SavedDate: t.SavedDate,
	}
}
