// internal/app/features/newsfeed/templates.go
package newsfeed

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "newsfeed",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
