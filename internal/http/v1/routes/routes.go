package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/trail-profiles/internal/http/v1/activity"
	"github.com/janisto/trail-profiles/internal/http/v1/bookmark"
	"github.com/janisto/trail-profiles/internal/http/v1/profile"
	activitysvc "github.com/janisto/trail-profiles/internal/service/activity"
	bookmarksvc "github.com/janisto/trail-profiles/internal/service/bookmark"
	profilesvc "github.com/janisto/trail-profiles/internal/service/profile"
)

// Services groups the workflows exposed over HTTP.
type Services struct {
	Profiles   profilesvc.Service
	Activities activitysvc.Service
	Bookmarks  bookmarksvc.Service
}

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, svc Services) {
	profile.Register(api, svc.Profiles)
	activity.Register(api, svc.Activities)
	bookmark.Register(api, svc.Bookmarks)
}
