package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/graphql-go/graphql"
	"github.com/mikepea/hackernews/pkg/hackernews/auth"
	"github.com/mikepea/hackernews/pkg/hackernews/models"
	"github.com/mikepea/hackernews/pkg/hackernews/store"
)

// Messages returned by updateLink and deleteLink
const (
	MsgUpdated      = "UPDATED SUCCESSFULLY"
	MsgDeleted      = "DELETED SUCCESSFULLY"
	MsgLinkNotFound = "LINK NOT FOUND"
)

// Message is the result of a mutation that returns no entity
type Message struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// AuthPayload is returned by signup and login
type AuthPayload struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Vote is returned by the vote mutation
type Vote struct {
	Link *models.Link `json:"link"`
	User *models.User `json:"user"`
}

// TokenIssuer signs tokens for authenticated users. *auth.Decoder implements it.
type TokenIssuer interface {
	GenerateToken(userID uint) (string, error)
}

// Resolver holds the field resolvers. Per-request state, including the
// store, comes from the RequestContext in ResolveParams.Context.
type Resolver struct {
	tokens   TokenIssuer
	validate *validator.Validate
}

// NewResolver creates a Resolver that signs tokens with tokens
func NewResolver(tokens TokenIssuer) *Resolver {
	return &Resolver{tokens: tokens, validate: validator.New()}
}

func requestContext(ctx context.Context) (*RequestContext, error) {
	rc, ok := RequestContextFrom(ctx)
	if !ok || rc.Store == nil {
		return nil, classify(ErrNoRequestContext)
	}
	return rc, nil
}

// Feed resolves Query.feed
func (r *Resolver) Feed(p graphql.ResolveParams) (interface{}, error) {
	rc, err := requestContext(p.Context)
	if err != nil {
		return nil, err
	}
	args, err := parseFeedArgs(p.Args)
	if err != nil {
		return nil, badInput(err)
	}

	links, err := rc.Store.FeedLinks(p.Context, args.Query())
	if err != nil {
		return nil, classify(err)
	}
	return links, nil
}

// FeedCount resolves Query.feedCount
func (r *Resolver) FeedCount(p graphql.ResolveParams) (interface{}, error) {
	rc, err := requestContext(p.Context)
	if err != nil {
		return nil, err
	}

	count, err := rc.Store.CountLinks(p.Context, stringArg(p.Args, "filter"))
	if err != nil {
		return nil, classify(err)
	}
	return int(count), nil
}

// Link resolves Query.link. A missing link resolves to null.
func (r *Resolver) Link(p graphql.ResolveParams) (interface{}, error) {
	rc, err := requestContext(p.Context)
	if err != nil {
		return nil, err
	}
	rawID, _ := intArg(p.Args, "id")
	id, ok := entityID(rawID)
	if !ok {
		return nil, nil
	}

	link, err := rc.Store.FindLink(p.Context, id)
	if err != nil {
		return nil, classify(err)
	}
	if link == nil {
		return nil, nil
	}
	return link, nil
}

// Post resolves Mutation.post
func (r *Resolver) Post(p graphql.ResolveParams) (interface{}, error) {
	rc, err := requestContext(p.Context)
	if err != nil {
		return nil, err
	}
	if rc.UserID == nil {
		return nil, classify(auth.ErrNotAuthenticated)
	}
	args := PostArgs{
		Description: stringArg(p.Args, "description"),
		URL:         stringArg(p.Args, "url"),
	}

	userID := *rc.UserID
	link, err := rc.Store.CreateLink(p.Context, store.NewLink{
		Description: args.Description,
		URL:         args.URL,
		PostedByID:  &userID,
	})
	if err != nil {
		return nil, classify(err)
	}
	return link, nil
}

// UpdateLink resolves Mutation.updateLink. An unknown id is reported as an
// unsuccessful Message rather than an error.
func (r *Resolver) UpdateLink(p graphql.ResolveParams) (interface{}, error) {
	rc, err := requestContext(p.Context)
	if err != nil {
		return nil, err
	}
	args := parseUpdateLinkArgs(p.Args)
	id, ok := entityID(args.ID)
	if !ok {
		return Message{Message: MsgLinkNotFound, Success: false}, nil
	}

	_, err = rc.Store.UpdateLink(p.Context, id, store.LinkUpdate{
		Description: args.Description,
		URL:         args.URL,
	})
	if errors.Is(err, store.ErrNotFound) {
		return Message{Message: MsgLinkNotFound, Success: false}, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return Message{Message: MsgUpdated, Success: true}, nil
}

// DeleteLink resolves Mutation.deleteLink. An unknown id is reported as an
// unsuccessful Message rather than an error.
func (r *Resolver) DeleteLink(p graphql.ResolveParams) (interface{}, error) {
	rc, err := requestContext(p.Context)
	if err != nil {
		return nil, err
	}
	rawID, _ := intArg(p.Args, "id")
	id, ok := entityID(rawID)
	if !ok {
		return Message{Message: MsgLinkNotFound, Success: false}, nil
	}

	_, err = rc.Store.DeleteLink(p.Context, id)
	if errors.Is(err, store.ErrNotFound) {
		return Message{Message: MsgLinkNotFound, Success: false}, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return Message{Message: MsgDeleted, Success: true}, nil
}

// signupRules are the constraints checked before an account is created
type signupRules struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Name     string `validate:"required"`
}

// Signup resolves Mutation.signup
func (r *Resolver) Signup(p graphql.ResolveParams) (interface{}, error) {
	rc, err := requestContext(p.Context)
	if err != nil {
		return nil, err
	}
	args := SignupArgs{
		Email:    strings.TrimSpace(stringArg(p.Args, "email")),
		Password: stringArg(p.Args, "password"),
		Name:     strings.TrimSpace(stringArg(p.Args, "name")),
	}
	if err := r.validateSignup(args); err != nil {
		return nil, badInput(err)
	}

	hash, err := auth.HashPassword(args.Password)
	if err != nil {
		return nil, err
	}
	user, err := rc.Store.CreateUser(p.Context, store.NewUser{
		Name:         args.Name,
		Email:        args.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, classify(err)
	}

	token, err := r.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return AuthPayload{Token: token, User: user}, nil
}

func (r *Resolver) validateSignup(args SignupArgs) error {
	err := r.validate.Struct(signupRules(args))
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag())
	}
	return errors.New(strings.Join(msgs, "; "))
}

// Login resolves Mutation.login
func (r *Resolver) Login(p graphql.ResolveParams) (interface{}, error) {
	rc, err := requestContext(p.Context)
	if err != nil {
		return nil, err
	}
	args := LoginArgs{
		Email:    strings.TrimSpace(stringArg(p.Args, "email")),
		Password: stringArg(p.Args, "password"),
	}

	user, err := rc.Store.FindUserByEmail(p.Context, args.Email)
	if err != nil {
		return nil, classify(err)
	}
	if user == nil || !auth.CheckPassword(args.Password, user.PasswordHash) {
		return nil, classify(auth.ErrInvalidCredentials)
	}

	token, err := r.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return AuthPayload{Token: token, User: user}, nil
}

// Vote resolves Mutation.vote
func (r *Resolver) Vote(p graphql.ResolveParams) (interface{}, error) {
	rc, err := requestContext(p.Context)
	if err != nil {
		return nil, err
	}
	if rc.UserID == nil {
		return nil, classify(auth.ErrNotAuthenticated)
	}
	rawID, _ := intArg(p.Args, "linkId")
	linkID, ok := entityID(rawID)
	if !ok {
		return nil, classify(fmt.Errorf("link %d: %w", rawID, store.ErrNotFound))
	}

	if err := rc.Store.Vote(p.Context, linkID, *rc.UserID); err != nil {
		return nil, classify(err)
	}

	link, err := rc.Store.FindLink(p.Context, linkID)
	if err != nil {
		return nil, classify(err)
	}
	user, err := rc.Store.FindUser(p.Context, *rc.UserID)
	if err != nil {
		return nil, classify(err)
	}
	if link == nil || user == nil {
		return nil, classify(store.ErrNotFound)
	}
	return Vote{Link: link, User: user}, nil
}

// LinkPostedBy resolves Link.postedBy
func (r *Resolver) LinkPostedBy(p graphql.ResolveParams) (interface{}, error) {
	rc, err := requestContext(p.Context)
	if err != nil {
		return nil, err
	}
	link, ok := linkSource(p.Source)
	if !ok {
		return nil, nil
	}

	user, err := rc.Store.PostedBy(p.Context, link.ID)
	if err != nil {
		return nil, classify(err)
	}
	if user == nil {
		return nil, nil
	}
	return user, nil
}

// LinkVoters resolves Link.voters
func (r *Resolver) LinkVoters(p graphql.ResolveParams) (interface{}, error) {
	rc, err := requestContext(p.Context)
	if err != nil {
		return nil, err
	}
	link, ok := linkSource(p.Source)
	if !ok {
		return []models.User{}, nil
	}

	users, err := rc.Store.Voters(p.Context, link.ID)
	if err != nil {
		return nil, classify(err)
	}
	return users, nil
}

// UserLinks resolves User.links
func (r *Resolver) UserLinks(p graphql.ResolveParams) (interface{}, error) {
	rc, err := requestContext(p.Context)
	if err != nil {
		return nil, err
	}
	user, ok := userSource(p.Source)
	if !ok {
		return []models.Link{}, nil
	}

	links, err := rc.Store.LinksByUser(p.Context, user.ID)
	if err != nil {
		return nil, classify(err)
	}
	return links, nil
}

func linkSource(src interface{}) (*models.Link, bool) {
	switch v := src.(type) {
	case *models.Link:
		return v, v != nil
	case models.Link:
		return &v, true
	}
	return nil, false
}

func userSource(src interface{}) (*models.User, bool) {
	switch v := src.(type) {
	case *models.User:
		return v, v != nil
	case models.User:
		return &v, true
	}
	return nil, false
}
