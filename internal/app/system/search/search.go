// internal/app/system/search/search.go
package search

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tokenize splits a raw query on spaces and drops empty tokens. A query
// of only whitespace yields nil.
func Tokenize(q string) []string {
	var toks []string
	for _, t := range strings.Split(q, " ") {
		if t != "" {
			toks = append(toks, t)
		}
	}
	return toks
}

// UserFilter builds a Mongo filter matching users where ANY token
// appears as a case-insensitive substring of ANY searchable field.
// includeRoom adds the room field to the searchable set. Zero tokens
// yield a nil filter, which lists the whole directory unfiltered.
func UserFilter(tokens []string, includeRoom bool) bson.M {
	if len(tokens) == 0 {
		return nil
	}

	fields := []string{"first_name", "last_name", "username", "email"}
	if includeRoom {
		fields = append(fields, "room")
	}

	var or []bson.M
	for _, tok := range tokens {
		pat := regexp.QuoteMeta(tok)
		for _, f := range fields {
			or = append(or, bson.M{f: primitive.Regex{Pattern: pat, Options: "i"}})
		}
	}
	return bson.M{"$or": or}
}
