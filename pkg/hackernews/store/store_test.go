package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mikepea/hackernews/pkg/hackernews/database"
	"github.com/mikepea/hackernews/pkg/hackernews/models"
)

func setupTestStore(t *testing.T) *Store {
	db, err := database.Connect(":memory:")
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return New(db)
}

func createTestUser(t *testing.T, s *Store, email string) *models.User {
	user, err := s.CreateUser(context.Background(), NewUser{Name: "Test User", Email: email})
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func createTestLink(t *testing.T, s *Store, description, url string, postedBy *uint) *models.Link {
	link, err := s.CreateLink(context.Background(), NewLink{Description: description, URL: url, PostedByID: postedBy})
	if err != nil {
		t.Fatalf("Failed to create test link: %v", err)
	}
	return link
}

func intPtr(v int) *int {
	return &v
}

func descriptions(links []models.Link) []string {
	out := make([]string, len(links))
	for i, l := range links {
		out[i] = l.Description
	}
	return out
}

func TestFindLinkMissing(t *testing.T) {
	s := setupTestStore(t)

	link, err := s.FindLink(context.Background(), 42)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if link != nil {
		t.Errorf("Expected nil link, got %+v", link)
	}
}

func TestCreateLink(t *testing.T) {
	s := setupTestStore(t)
	user := createTestUser(t, s, "test@example.com")

	before := time.Now().Add(-time.Second)
	link := createTestLink(t, s, "Fullstack tutorial for GraphQL", "www.howtographql.com", &user.ID)

	if link.ID == 0 {
		t.Error("Expected link ID to be assigned")
	}
	if link.CreatedAt.Before(before) {
		t.Errorf("Expected CreatedAt after %v, got %v", before, link.CreatedAt)
	}

	poster, err := s.PostedBy(context.Background(), link.ID)
	if err != nil {
		t.Fatalf("PostedBy failed: %v", err)
	}
	if poster == nil || poster.ID != user.ID {
		t.Errorf("Expected poster %d, got %+v", user.ID, poster)
	}
}

func TestFeedLinksFilter(t *testing.T) {
	s := setupTestStore(t)
	createTestLink(t, s, "Go generics", "https://go.dev/blog", nil)
	createTestLink(t, s, "Rust book", "https://doc.rust-lang.org/book", nil)
	createTestLink(t, s, "Prisma docs", "https://www.prisma.io/go", nil)

	links, err := s.FeedLinks(context.Background(), FeedQuery{Filter: "go"})
	if err != nil {
		t.Fatalf("FeedLinks failed: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("Expected 2 links, got %d: %v", len(links), descriptions(links))
	}
	for _, l := range links {
		if !strings.Contains(l.Description, "go") && !strings.Contains(l.URL, "go") {
			t.Errorf("Link %q / %q does not contain filter", l.Description, l.URL)
		}
	}
}

func TestFeedLinksFilterIsLiteral(t *testing.T) {
	s := setupTestStore(t)
	createTestLink(t, s, "100% coverage", "https://example.com/a", nil)
	createTestLink(t, s, "1000 coverage", "https://example.com/b", nil)

	links, err := s.FeedLinks(context.Background(), FeedQuery{Filter: "100%"})
	if err != nil {
		t.Fatalf("FeedLinks failed: %v", err)
	}
	if len(links) != 1 || links[0].Description != "100% coverage" {
		t.Errorf("Expected only the literal match, got %v", descriptions(links))
	}
}

func TestFeedLinksNoMatch(t *testing.T) {
	s := setupTestStore(t)
	createTestLink(t, s, "Go generics", "https://go.dev", nil)

	links, err := s.FeedLinks(context.Background(), FeedQuery{Filter: "haskell"})
	if err != nil {
		t.Fatalf("FeedLinks failed: %v", err)
	}
	if links == nil || len(links) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", links)
	}
}

func TestFeedLinksOrderAndPagination(t *testing.T) {
	s := setupTestStore(t)
	for _, d := range []string{"charlie", "alpha", "echo", "bravo", "delta"} {
		createTestLink(t, s, d, "https://example.com/"+d, nil)
	}

	tests := []struct {
		name  string
		query FeedQuery
		want  []string
	}{
		{
			name:  "ascending",
			query: FeedQuery{OrderBy: []OrderBy{{Field: LinkFieldDescription}}},
			want:  []string{"alpha", "bravo", "charlie", "delta", "echo"},
		},
		{
			name:  "descending",
			query: FeedQuery{OrderBy: []OrderBy{{Field: LinkFieldDescription, Desc: true}}},
			want:  []string{"echo", "delta", "charlie", "bravo", "alpha"},
		},
		{
			name:  "skip and take",
			query: FeedQuery{Skip: intPtr(1), Take: intPtr(2), OrderBy: []OrderBy{{Field: LinkFieldDescription}}},
			want:  []string{"bravo", "charlie"},
		},
		{
			name:  "skip only",
			query: FeedQuery{Skip: intPtr(3), OrderBy: []OrderBy{{Field: LinkFieldDescription}}},
			want:  []string{"delta", "echo"},
		},
		{
			name:  "take zero",
			query: FeedQuery{Take: intPtr(0)},
			want:  []string{},
		},
		{
			name:  "skip past end",
			query: FeedQuery{Skip: intPtr(10)},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links, err := s.FeedLinks(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("FeedLinks failed: %v", err)
			}
			got := descriptions(links)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFeedLinksMultiKeyOrder(t *testing.T) {
	s := setupTestStore(t)
	createTestLink(t, s, "same", "https://b.example.com", nil)
	createTestLink(t, s, "other", "https://z.example.com", nil)
	createTestLink(t, s, "same", "https://a.example.com", nil)

	links, err := s.FeedLinks(context.Background(), FeedQuery{OrderBy: []OrderBy{
		{Field: LinkFieldDescription, Desc: true},
		{Field: LinkFieldURL},
	}})
	if err != nil {
		t.Fatalf("FeedLinks failed: %v", err)
	}

	want := []string{"https://a.example.com", "https://b.example.com", "https://z.example.com"}
	for i, l := range links {
		if l.URL != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], l.URL)
		}
	}
}

func TestFeedLinksValidation(t *testing.T) {
	s := setupTestStore(t)

	queries := []FeedQuery{
		{Skip: intPtr(-1)},
		{Take: intPtr(-5)},
		{OrderBy: []OrderBy{{Field: "id; DROP TABLE links"}}},
	}
	for _, q := range queries {
		_, err := s.FeedLinks(context.Background(), q)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("Expected ValidationError for %+v, got %v", q, err)
		}
	}
}

func TestCountLinks(t *testing.T) {
	s := setupTestStore(t)
	createTestLink(t, s, "Go generics", "https://go.dev", nil)
	createTestLink(t, s, "Rust book", "https://rust-lang.org", nil)

	count, err := s.CountLinks(context.Background(), "Rust")
	if err != nil {
		t.Fatalf("CountLinks failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1, got %d", count)
	}

	count, _ = s.CountLinks(context.Background(), "")
	if count != 2 {
		t.Errorf("Expected 2, got %d", count)
	}
}

func TestUpdateLink(t *testing.T) {
	s := setupTestStore(t)
	user := createTestUser(t, s, "test@example.com")
	link := createTestLink(t, s, "old", "https://old.example.com", &user.ID)

	updated, err := s.UpdateLink(context.Background(), link.ID, LinkUpdate{Description: "new", URL: "https://new.example.com"})
	if err != nil {
		t.Fatalf("UpdateLink failed: %v", err)
	}
	if updated.Description != "new" || updated.URL != "https://new.example.com" {
		t.Errorf("Expected updated fields, got %+v", updated)
	}
	if updated.ID != link.ID {
		t.Errorf("Expected id %d, got %d", link.ID, updated.ID)
	}
	if !updated.CreatedAt.Equal(link.CreatedAt) {
		t.Errorf("Expected CreatedAt unchanged, got %v want %v", updated.CreatedAt, link.CreatedAt)
	}
	if updated.PostedByID == nil || *updated.PostedByID != user.ID {
		t.Errorf("Expected poster unchanged, got %v", updated.PostedByID)
	}
}

func TestUpdateLinkNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.UpdateLink(context.Background(), 99, LinkUpdate{Description: "x", URL: "y"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteLink(t *testing.T) {
	s := setupTestStore(t)
	user := createTestUser(t, s, "test@example.com")
	link := createTestLink(t, s, "doomed", "https://example.com", nil)
	if err := s.Vote(context.Background(), link.ID, user.ID); err != nil {
		t.Fatalf("Vote failed: %v", err)
	}

	deleted, err := s.DeleteLink(context.Background(), link.ID)
	if err != nil {
		t.Fatalf("DeleteLink failed: %v", err)
	}
	if deleted.ID != link.ID {
		t.Errorf("Expected deleted id %d, got %d", link.ID, deleted.ID)
	}

	found, err := s.FindLink(context.Background(), link.ID)
	if err != nil {
		t.Fatalf("FindLink failed: %v", err)
	}
	if found != nil {
		t.Error("Expected link to be gone after delete")
	}

	_, err = s.DeleteLink(context.Background(), link.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestLinksByUser(t *testing.T) {
	s := setupTestStore(t)
	alice := createTestUser(t, s, "alice@example.com")
	bob := createTestUser(t, s, "bob@example.com")
	createTestLink(t, s, "a1", "https://a1", &alice.ID)
	createTestLink(t, s, "a2", "https://a2", &alice.ID)
	createTestLink(t, s, "b1", "https://b1", &bob.ID)

	links, err := s.LinksByUser(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("LinksByUser failed: %v", err)
	}
	if len(links) != 2 {
		t.Errorf("Expected 2 links, got %d", len(links))
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := setupTestStore(t)
	createTestUser(t, s, "test@example.com")

	_, err := s.CreateUser(context.Background(), NewUser{Name: "Again", Email: "test@example.com"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
}

func TestVote(t *testing.T) {
	s := setupTestStore(t)
	user := createTestUser(t, s, "test@example.com")
	link := createTestLink(t, s, "vote me", "https://example.com", nil)

	if err := s.Vote(context.Background(), link.ID, user.ID); err != nil {
		t.Fatalf("Vote failed: %v", err)
	}

	voters, err := s.Voters(context.Background(), link.ID)
	if err != nil {
		t.Fatalf("Voters failed: %v", err)
	}
	if len(voters) != 1 || voters[0].ID != user.ID {
		t.Errorf("Expected voter %d, got %+v", user.ID, voters)
	}

	err = s.Vote(context.Background(), link.ID, user.ID)
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("Expected ErrAlreadyVoted, got %v", err)
	}

	err = s.Vote(context.Background(), 999, user.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing link, got %v", err)
	}
}
