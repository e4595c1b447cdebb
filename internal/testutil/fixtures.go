// internal/testutil/fixtures.go
package testutil

import (
	"testing"
	"time"

	"github.com/quorumhq/quorum/internal/app/store/bureaus"
	"github.com/quorumhq/quorum/internal/app/store/comments"
	"github.com/quorumhq/quorum/internal/app/store/groups"
	"github.com/quorumhq/quorum/internal/app/store/messages"
	"github.com/quorumhq/quorum/internal/app/store/users"
	"github.com/quorumhq/quorum/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures seeds test data through the real stores so the folded
// shadow fields and denormalized columns are populated the same way
// production writes populate them.
type Fixtures struct {
	t *testing.T

	Users    *users.Store
	Groups   *groups.Store
	Bureaus  *bureaus.Store
	Messages *messages.Store
	Comments *comments.Store
}

func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{
		t:        t,
		Users:    users.NewStore(db),
		Groups:   groups.NewStore(db),
		Bureaus:  bureaus.NewStore(db),
		Messages: messages.NewStore(db),
		Comments: comments.NewStore(db),
	}
}

func (f *Fixtures) User(username, first, last string) *models.User {
	f.t.Helper()
	u := &models.User{
		Username:  username,
		FirstName: first,
		LastName:  last,
		Email:     username + "@example.org",
	}
	if err := f.Users.Create(TestContext(f.t), u); err != nil {
		f.t.Fatalf("fixture user %q: %v", username, err)
	}
	return u
}

func (f *Fixtures) Category(name string) *models.GroupCategory {
	f.t.Helper()
	c := &models.GroupCategory{Name: name}
	if err := f.Groups.CreateCategory(TestContext(f.t), c); err != nil {
		f.t.Fatalf("fixture category %q: %v", name, err)
	}
	return c
}

func (f *Fixtures) Group(name, slug string, cat *models.GroupCategory) *models.Group {
	f.t.Helper()
	g := &models.Group{Name: name, Slug: slug, CategoryID: cat.ID}
	if err := f.Groups.Create(TestContext(f.t), g); err != nil {
		f.t.Fatalf("fixture group %q: %v", name, err)
	}
	return g
}

func (f *Fixtures) Bureau(g *models.Group) *models.Bureau {
	f.t.Helper()
	b := &models.Bureau{GroupID: g.ID}
	if err := f.Bureaus.CreateBureau(TestContext(f.t), b); err != nil {
		f.t.Fatalf("fixture bureau: %v", err)
	}
	return b
}

func (f *Fixtures) PostType(description string) *models.PostType {
	f.t.Helper()
	pt := &models.PostType{Description: description}
	if err := f.Bureaus.CreatePostType(TestContext(f.t), pt); err != nil {
		f.t.Fatalf("fixture post type %q: %v", description, err)
	}
	return pt
}

func (f *Fixtures) Post(b *models.Bureau, pt *models.PostType, u *models.User) *models.Post {
	f.t.Helper()
	p := &models.Post{BureauID: b.ID, PostTypeID: pt.ID, UserID: u.ID}
	if err := f.Bureaus.CreatePost(TestContext(f.t), p); err != nil {
		f.t.Fatalf("fixture post: %v", err)
	}
	return p
}

func (f *Fixtures) Message(g *models.Group, author *models.User, title string, public bool, pubDate time.Time) *models.Message {
	f.t.Helper()
	m := &models.Message{
		GroupID:  g.ID,
		AuthorID: author.ID,
		Title:    title,
		Content:  "<p>" + title + "</p>",
		Public:   public,
		PubDate:  pubDate,
	}
	if err := f.Messages.Create(TestContext(f.t), m); err != nil {
		f.t.Fatalf("fixture message %q: %v", title, err)
	}
	return m
}

func (f *Fixtures) Comment(m *models.Message, author *models.User, content string) *models.Comment {
	f.t.Helper()
	c := &models.Comment{MessageID: m.ID, AuthorID: author.ID, Content: content}
	if err := f.Comments.Create(TestContext(f.t), c); err != nil {
		f.t.Fatalf("fixture comment: %v", err)
	}
	return c
}

// Member wires a user into a group through a fresh bureau and post, the
// minimal path to posting rights.
func (f *Fixtures) Member(g *models.Group, u *models.User, postName string) {
	f.t.Helper()
	b := f.Bureau(g)
	pt := f.PostType(postName + "-" + primitive.NewObjectID().Hex()[:6])
	f.Post(b, pt, u)
}
