package graph

import (
	"context"

	"github.com/mikepea/hackernews/pkg/hackernews/models"
	"github.com/mikepea/hackernews/pkg/hackernews/store"
)

// Store is the persistence the resolvers depend on. *store.Store implements it.
type Store interface {
	FindLink(ctx context.Context, id uint) (*models.Link, error)
	FeedLinks(ctx context.Context, q store.FeedQuery) ([]models.Link, error)
	CountLinks(ctx context.Context, filter string) (int64, error)
	CreateLink(ctx context.Context, in store.NewLink) (*models.Link, error)
	UpdateLink(ctx context.Context, id uint, in store.LinkUpdate) (*models.Link, error)
	DeleteLink(ctx context.Context, id uint) (*models.Link, error)
	PostedBy(ctx context.Context, linkID uint) (*models.User, error)
	Voters(ctx context.Context, linkID uint) ([]models.User, error)
	LinksByUser(ctx context.Context, userID uint) ([]models.Link, error)
	CreateUser(ctx context.Context, in store.NewUser) (*models.User, error)
	FindUser(ctx context.Context, id uint) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	Vote(ctx context.Context, linkID, userID uint) error
}

// RequestContext carries the per-request dependencies every resolver reads.
// UserID is nil for anonymous requests.
type RequestContext struct {
	Store  Store
	UserID *uint
}

type requestContextKey struct{}

// WithRequestContext returns a copy of ctx carrying rc
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// RequestContextFrom returns the RequestContext attached to ctx, if any
func RequestContextFrom(ctx context.Context) (*RequestContext, bool) {
	if ctx == nil {
		return nil, false
	}
	rc, ok := ctx.Value(requestContextKey{}).(*RequestContext)
	return rc, ok && rc != nil
}
