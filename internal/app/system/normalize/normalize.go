// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Trim collapses surrounding whitespace on a form value.
func Trim(s string) string { return strings.TrimSpace(s) }

// Email lowercases and trims an email address for comparison and
// storage in the _ci shadow field.
func Email(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Username trims and lowercases a login name.
func Username(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
