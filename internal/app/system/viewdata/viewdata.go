// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/quorumhq/quorum/internal/app/system/authz"
)

var siteName = "Quorum"

// Configure sets process-wide view defaults. Called once at startup.
func Configure(name string) {
	if name != "" {
		siteName = name
	}
}

// BaseVM carries the fields every page template needs.
type BaseVM struct {
	SiteName    string
	Title       string
	IsLoggedIn  bool
	UserName    string
	BackURL     string
	CurrentPath string
	Notice      string
	Alert       string
}

// NewBaseVM assembles the common view model for a request. The notice
// and alert banners come from the "success" and "error" query
// parameters set by redirect-after-POST handlers.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	name, _, _, signedIn := authz.UserCtx(r)
	return BaseVM{
		SiteName:    siteName,
		Title:       title,
		IsLoggedIn:  signedIn,
		UserName:    name,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		Notice:      noticeText(query.Get(r, "success")),
		Alert:       alertText(query.Get(r, "error")),
	}
}

func noticeText(code string) string {
	switch code {
	case "created":
		return "Saved."
	case "updated":
		return "Changes saved."
	case "deleted":
		return "Deleted."
	case "commented":
		return "Comment posted."
	default:
		return ""
	}
}

func alertText(code string) string {
	switch code {
	case "comment":
		return "Comments must be between 1 and 140 characters; nothing was posted."
	default:
		return ""
	}
}
