// internal/app/features/workgroups/list.go
package workgroups

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/quorumhq/quorum/internal/app/store/groups"
	"github.com/quorumhq/quorum/internal/app/system/timeouts"
	"github.com/quorumhq/quorum/internal/app/system/viewdata"
)

// groupRow is one workgroup in the directory.
type groupRow struct {
	Name     string
	Slug     string
	Category string
	LogoURL  string
	Created  string
}

// ListVM is the view model for the group directory.
type ListVM struct {
	viewdata.BaseVM
	Items []groupRow
	Sort  string
}

// List shows every workgroup. The list is short enough that it is
// never paginated; sort order comes from the "sort" query parameter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	order := groups.ParseSort(query.Get(r, "sort"))
	all, err := h.Groups.List(ctx, order)
	if err != nil {
		h.ErrLog.ServerError(w, r, "failed to list workgroups", err)
		return
	}

	rows := make([]groupRow, 0, len(all))
	for _, g := range all {
		rows = append(rows, groupRow{
			Name:     g.Name,
			Slug:     g.Slug,
			Category: g.CategoryName,
			LogoURL:  g.LogoURL,
			Created:  g.CreatedAt.Format("Jan 2, 2006"),
		})
	}

	vm := ListVM{
		BaseVM: viewdata.NewBaseVM(r, "Workgroups", "/"),
		Items:  rows,
		Sort:   string(order),
	}
	templates.Render(w, r, "workgroups/list", vm)
}
