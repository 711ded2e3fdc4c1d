// Package activity exposes the activity catalogue over HTTP.
package activity

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	applog "github.com/janisto/trail-profiles/internal/platform/logging"
	activitysvc "github.com/janisto/trail-profiles/internal/service/activity"
)

// Register registers activity endpoints.
func Register(api huma.API, svc activitysvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "list-activities",
		Method:      http.MethodGet,
		Path:        "/activities",
		Summary:     "List activities",
		Description: "Returns every activity type ordered by id.",
		Tags:        []string{"Activities"},
	}, func(ctx context.Context, _ *ActivityListInput) (*ActivityListOutput, error) {
		activities, err := svc.List(ctx)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &ActivityListOutput{Body: ToHTTPActivities(activities)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-activity",
		Method:      http.MethodGet,
		Path:        "/activities/{id}",
		Summary:     "Get activity",
		Description: "Returns a single activity type by id.",
		Tags:        []string{"Activities"},
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *ActivityGetInput) (*ActivityGetOutput, error) {
		a, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &ActivityGetOutput{Body: toHTTPActivity(*a)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-activity",
		Method:        http.MethodPost,
		Path:          "/activities",
		Summary:       "Create activity",
		Description:   "Adds a new activity type. Names are unique.",
		Tags:          []string{"Activities"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusConflict},
	}, func(ctx context.Context, input *ActivityCreateInput) (*ActivityCreateOutput, error) {
		a, err := svc.Create(ctx, input.Body.Activity)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &ActivityCreateOutput{
			Location: "/activities/" + strconv.FormatInt(a.ID, 10),
			Body:     toHTTPActivity(*a),
		}, nil
	})
}

func mapServiceError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, activitysvc.ErrNotFound):
		return huma.Error404NotFound("activity not found")
	case errors.Is(err, activitysvc.ErrAlreadyExists):
		return huma.Error409Conflict("activity already exists")
	case errors.Is(err, activitysvc.ErrInvalidName):
		return huma.Error422UnprocessableEntity("activity name is required")
	default:
		applog.LogError(ctx, "activity operation failed", err)
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPActivity(a activitysvc.Activity) Activity {
	return Activity{ID: a.ID, Name: a.Name}
}

// ToHTTPActivities maps domain activities to their wire form. The result is
// never nil so empty lists encode as [].
func ToHTTPActivities(in []activitysvc.Activity) []Activity {
	out := make([]Activity, len(in))
	for i, a := range in {
		out[i] = toHTTPActivity(a)
	}
	return out
}
