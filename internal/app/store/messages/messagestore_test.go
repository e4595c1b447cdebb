package messages_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/quorumhq/quorum/internal/app/store/messages"
	"github.com/quorumhq/quorum/internal/app/system/paging"
	"github.com/quorumhq/quorum/internal/domain/models"
	"github.com/quorumhq/quorum/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedMessages(t *testing.T, store *messages.Store, n int, public bool) []models.Message {
	t.Helper()
	ctx := testutil.TestContext(t)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	out := make([]models.Message, n)
	for i := 0; i < n; i++ {
		m := models.Message{
			GroupID:  primitive.NewObjectID(),
			AuthorID: primitive.NewObjectID(),
			Title:    fmt.Sprintf("message %d", i),
			Content:  "<p>body</p>",
			Public:   public,
			PubDate:  base.Add(time.Duration(i) * time.Hour),
		}
		if err := store.Create(ctx, &m); err != nil {
			t.Fatalf("seed message: %v", err)
		}
		out[i] = m
	}
	return out
}

func TestVisible(t *testing.T) {
	pub := &models.Message{Public: true}
	priv := &models.Message{Public: false}

	anon := messages.Scope{}
	authed := messages.Scope{Authenticated: true}

	if !messages.Visible(pub, anon) {
		t.Error("public message should be visible to anonymous")
	}
	if messages.Visible(priv, anon) {
		t.Error("private message should be hidden from anonymous")
	}
	if !messages.Visible(priv, authed) {
		t.Error("private message should be visible when authenticated")
	}
}

func TestList_AnonymousSeesOnlyPublic(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := messages.NewStore(db)

	seedMessages(t, store, 2, true)
	seedMessages(t, store, 3, false)

	got, _, err := store.List(ctx, messages.Scope{}, paging.Page{Number: 1, Size: 8})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("anonymous sees %d messages, want 2", len(got))
	}
	for _, m := range got {
		if !m.Public {
			t.Errorf("anonymous list contains private message %v", m.ID)
		}
	}

	all, _, err := store.List(ctx, messages.Scope{Authenticated: true}, paging.Page{Number: 1, Size: 8})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("authenticated sees %d messages, want 5", len(all))
	}
}

func TestList_NewestFirstAndPaged(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := messages.NewStore(db)

	seedMessages(t, store, 7, true)

	p1, hasNext, err := store.List(ctx, messages.Scope{Authenticated: true}, paging.Page{Number: 1, Size: 5})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(p1) != 5 || !hasNext {
		t.Fatalf("page 1: %d items, next=%v; want 5, true", len(p1), hasNext)
	}
	for i := 1; i < len(p1); i++ {
		if p1[i].PubDate.After(p1[i-1].PubDate) {
			t.Errorf("feed not descending at %d", i)
		}
	}
	if p1[0].Title != "message 6" {
		t.Errorf("newest first: got %q, want message 6", p1[0].Title)
	}

	p2, hasNext, err := store.List(ctx, messages.Scope{Authenticated: true}, paging.Page{Number: 2, Size: 5})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(p2) != 2 || hasNext {
		t.Errorf("page 2: %d items, next=%v; want 2, false", len(p2), hasNext)
	}

	p3, hasNext, err := store.List(ctx, messages.Scope{Authenticated: true}, paging.Page{Number: 3, Size: 5})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(p3) != 0 || hasNext {
		t.Errorf("page 3: %d items, next=%v; want 0, false", len(p3), hasNext)
	}
}

func TestGetByID_PrivateHiddenFromAnonymous(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := messages.NewStore(db)

	priv := seedMessages(t, store, 1, false)[0]

	if _, err := store.GetByID(ctx, priv.ID, messages.Scope{}); !errors.Is(err, messages.ErrNotFound) {
		t.Errorf("anonymous GetByID of private message: got %v, want ErrNotFound", err)
	}
	if _, err := store.GetByID(ctx, priv.ID, messages.Scope{Authenticated: true}); err != nil {
		t.Errorf("authenticated GetByID failed: %v", err)
	}
}

func TestCreate_SanitizesContent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := messages.NewStore(db)

	m := models.Message{
		GroupID:  primitive.NewObjectID(),
		AuthorID: primitive.NewObjectID(),
		Title:    "<b>bold</b> title",
		Content:  `<p>ok</p><script>alert(1)</script>`,
		Public:   true,
	}
	if err := store.Create(ctx, &m); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByID(ctx, m.ID, messages.Scope{Authenticated: true})
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "bold title" {
		t.Errorf("title = %q, want markup stripped", got.Title)
	}
	if got.Content != "<p>ok</p>" {
		t.Errorf("content = %q, want script stripped", got.Content)
	}
}

func TestUpdate_PreservesPubDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := messages.NewStore(db)

	m := seedMessages(t, store, 1, true)[0]
	orig := m.PubDate

	m.Title = "edited"
	if err := store.Update(ctx, &m); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetByID(ctx, m.ID, messages.Scope{Authenticated: true})
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.PubDate.Equal(orig) {
		t.Errorf("PubDate changed on edit: %v -> %v", orig, got.PubDate)
	}
	if got.Title != "edited" {
		t.Errorf("title = %q, want edited", got.Title)
	}
}

func TestLatest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := messages.NewStore(db)

	seedMessages(t, store, 4, true)

	got, err := store.Latest(ctx, messages.Scope{}, 2)
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if len(got) != 2 || got[0].Title != "message 3" {
		t.Errorf("Latest = %d items first %q, want 2 items first message 3", len(got), got[0].Title)
	}
}
