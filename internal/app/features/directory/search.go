// internal/app/features/directory/search.go
package directory

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/quorumhq/quorum/internal/app/system/paging"
	"github.com/quorumhq/quorum/internal/app/system/search"
	"github.com/quorumhq/quorum/internal/app/system/timeouts"
	"github.com/quorumhq/quorum/internal/app/system/viewdata"
)

// memberRow is a directory search result.
type memberRow struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Room      string
}

// SearchVM is the view model for the directory page.
type SearchVM struct {
	viewdata.BaseVM
	Query     string
	ShowRooms bool
	Items     []memberRow
	Page      int
	HasNext   bool
	HasPrev   bool
	NextPage  int
	PrevPage  int
}

// Search renders the member directory. An empty query falls through to
// the full listing in directory order. Each search opportunistically
// triggers the throttled room refresh; the response never waits on it.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	h.Refresher.MaybeRefresh()

	q := query.Get(r, "q")
	tokens := search.Tokenize(q)
	page := paging.ParsePage(r, paging.DirectoryPageSize)

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	filter := search.UserFilter(tokens, h.RoomsEnabled)
	matches, hasNext, err := h.Users.ListPage(ctx, filter, page)
	if err != nil {
		h.ErrLog.ServerError(w, r, "directory search failed", err)
		return
	}

	vm := SearchVM{
		BaseVM:    viewdata.NewBaseVM(r, "Member Directory", "/"),
		Query:     q,
		ShowRooms: h.RoomsEnabled,
		Page:      page.Number,
		HasNext:   hasNext,
		HasPrev:   page.Number > 1,
		PrevPage:  page.Number - 1,
		NextPage:  page.Number + 1,
	}
	for _, u := range matches {
		vm.Items = append(vm.Items, memberRow{
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Room:      u.Room,
		})
	}

	templates.Render(w, r, "directory/search", vm)
}
