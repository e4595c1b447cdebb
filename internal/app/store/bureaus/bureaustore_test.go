package bureaus_test

import (
	"errors"
	"testing"
	"time"

	"github.com/quorumhq/quorum/internal/app/store/bureaus"
	"github.com/quorumhq/quorum/internal/domain/models"
	"github.com/quorumhq/quorum/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemberIDs_DeduplicatesAcrossBureaus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := bureaus.NewStore(db)

	groupID := primitive.NewObjectID()
	userA := primitive.NewObjectID()
	userB := primitive.NewObjectID()

	pres := &models.PostType{Description: "President"}
	treas := &models.PostType{Description: "Treasurer"}
	for _, pt := range []*models.PostType{pres, treas} {
		if err := store.CreatePostType(ctx, pt); err != nil {
			t.Fatalf("seed post type: %v", err)
		}
	}

	// Two bureaus for the group; userA holds posts in both.
	ended := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	b1 := &models.Bureau{GroupID: groupID, EndedAt: &ended}
	b2 := &models.Bureau{GroupID: groupID}
	for _, b := range []*models.Bureau{b1, b2} {
		if err := store.CreateBureau(ctx, b); err != nil {
			t.Fatalf("seed bureau: %v", err)
		}
	}

	seed := []models.Post{
		{BureauID: b1.ID, PostTypeID: pres.ID, UserID: userA},
		{BureauID: b2.ID, PostTypeID: pres.ID, UserID: userA},
		{BureauID: b2.ID, PostTypeID: treas.ID, UserID: userB},
	}
	for i := range seed {
		if err := store.CreatePost(ctx, &seed[i]); err != nil {
			t.Fatalf("seed post: %v", err)
		}
	}

	got, err := store.MemberIDs(ctx, groupID)
	if err != nil {
		t.Fatalf("MemberIDs failed: %v", err)
	}
	// userA appears once despite two posts; ended bureau still counts.
	if len(got) != 2 {
		t.Errorf("member count = %d, want 2 (deduplicated)", len(got))
	}
}

func TestCreatePost_DuplicateTypeInBureau(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := bureaus.NewStore(db)

	pt := &models.PostType{Description: "Secretary"}
	if err := store.CreatePostType(ctx, pt); err != nil {
		t.Fatalf("seed: %v", err)
	}
	b := &models.Bureau{GroupID: primitive.NewObjectID()}
	if err := store.CreateBureau(ctx, b); err != nil {
		t.Fatalf("seed: %v", err)
	}

	first := &models.Post{BureauID: b.ID, PostTypeID: pt.ID, UserID: primitive.NewObjectID()}
	if err := store.CreatePost(ctx, first); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	// A bureau holds one post per type even when the holder differs.
	dup := &models.Post{BureauID: b.ID, PostTypeID: pt.ID, UserID: primitive.NewObjectID()}
	if err := store.CreatePost(ctx, dup); !errors.Is(err, bureaus.ErrDuplicatePost) {
		t.Errorf("expected ErrDuplicatePost for second holder of the type, got %v", err)
	}

	// The same type in a different bureau stays fine.
	other := &models.Bureau{GroupID: primitive.NewObjectID()}
	if err := store.CreateBureau(ctx, other); err != nil {
		t.Fatalf("seed: %v", err)
	}
	ok := &models.Post{BureauID: other.ID, PostTypeID: pt.ID, UserID: primitive.NewObjectID()}
	if err := store.CreatePost(ctx, ok); err != nil {
		t.Errorf("CreatePost in another bureau failed: %v", err)
	}
}

func TestGroupIDsForUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := bureaus.NewStore(db)

	groupX := primitive.NewObjectID()
	groupY := primitive.NewObjectID()
	user := primitive.NewObjectID()

	pt := &models.PostType{Description: "Member"}
	if err := store.CreatePostType(ctx, pt); err != nil {
		t.Fatalf("seed: %v", err)
	}

	bx := &models.Bureau{GroupID: groupX}
	by := &models.Bureau{GroupID: groupY}
	for _, b := range []*models.Bureau{bx, by} {
		if err := store.CreateBureau(ctx, b); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	if err := store.CreatePost(ctx, &models.Post{BureauID: bx.ID, PostTypeID: pt.ID, UserID: user}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := store.GroupIDsForUser(ctx, user)
	if err != nil {
		t.Fatalf("GroupIDsForUser failed: %v", err)
	}
	if len(got) != 1 || got[0] != groupX {
		t.Errorf("got %v, want [%v]", got, groupX)
	}

	none, err := store.GroupIDsForUser(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("GroupIDsForUser failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no groups for unknown user, got %v", none)
	}
}

func TestPostsInGroup_JoinsTypeNames(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := bureaus.NewStore(db)

	groupID := primitive.NewObjectID()
	pt := &models.PostType{Description: "President"}
	if err := store.CreatePostType(ctx, pt); err != nil {
		t.Fatalf("seed: %v", err)
	}
	b := &models.Bureau{GroupID: groupID}
	if err := store.CreateBureau(ctx, b); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := store.CreatePost(ctx, &models.Post{BureauID: b.ID, PostTypeID: pt.ID, UserID: primitive.NewObjectID()}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	roster, err := store.PostsInGroup(ctx, groupID)
	if err != nil {
		t.Fatalf("PostsInGroup failed: %v", err)
	}
	if len(roster) != 1 || roster[0].PostName != "President" {
		t.Errorf("roster = %+v, want one President entry", roster)
	}
}
