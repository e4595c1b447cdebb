// internal/app/system/navigation/navigation.go
package navigation

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/urlutil"
)

// SafeNext returns a same-site redirect target from the "next" form or
// query value, falling back to def when the value is absent or points
// off-site.
func SafeNext(r *http.Request, def string) string {
	v := r.FormValue("next")
	if v == "" {
		return def
	}
	if safe := urlutil.SafeReturn(v, "", ""); safe != "" {
		return safe
	}
	return def
}

// SafeReturnTo is SafeNext for the login flow's "return" parameter.
func SafeReturnTo(r *http.Request, def string) string {
	v := r.FormValue("return")
	if v == "" {
		return def
	}
	if safe := urlutil.SafeReturn(v, "", ""); safe != "" {
		return safe
	}
	return def
}
