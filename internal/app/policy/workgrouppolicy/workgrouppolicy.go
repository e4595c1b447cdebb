// internal/app/policy/workgrouppolicy/workgrouppolicy.go
package workgrouppolicy

import (
	"context"
	"fmt"

	"github.com/quorumhq/quorum/internal/app/store/bureaus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanPost reports whether the user may publish news for the workgroup.
// Holding any post in any of the group's bureaus, current or past,
// grants posting rights.
func CanPost(ctx context.Context, store *bureaus.Store, userID, groupID primitive.ObjectID) (bool, error) {
	if userID.IsZero() {
		return false, nil
	}
	groupIDs, err := store.GroupIDsForUser(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("resolve user groups: %w", err)
	}
	for _, id := range groupIDs {
		if id == groupID {
			return true, nil
		}
	}
	return false, nil
}

// PostableGroups filters candidate group IDs down to those the user may
// post in, preserving order. Used to build the group picker on the
// message form.
func PostableGroups(ctx context.Context, store *bureaus.Store, userID primitive.ObjectID, candidates []primitive.ObjectID) ([]primitive.ObjectID, error) {
	if userID.IsZero() {
		return nil, nil
	}
	mine, err := store.GroupIDsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve user groups: %w", err)
	}
	allowed := make(map[primitive.ObjectID]bool, len(mine))
	for _, id := range mine {
		allowed[id] = true
	}

	var out []primitive.ObjectID
	for _, id := range candidates {
		if allowed[id] {
			out = append(out, id)
		}
	}
	return out, nil
}
