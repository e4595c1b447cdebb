// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Rich sanitizes user-authored message bodies, keeping the usual
// user-generated-content tags (links, lists, emphasis) and stripping
// scripts and event handlers.
func Rich(s string) string { return ugc.Sanitize(s) }

// Plain strips all markup. Used for titles and comments, which are
// plain text.
func Plain(s string) string { return strict.Sanitize(s) }
