// internal/app/policy/messagepolicy/messagepolicy.go
package messagepolicy

import (
	"github.com/quorumhq/quorum/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanModify reports whether the user may edit or delete a message.
// Only the author may; handlers render a not-found page on denial so
// non-authors cannot tell a protected message from a missing one.
func CanModify(m *models.Message, userID primitive.ObjectID) bool {
	if m == nil || userID.IsZero() {
		return false
	}
	return m.AuthorID == userID
}
