package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikepea/hackernews/pkg/hackernews/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrAlreadyVoted = errors.New("already voted for link")
)

// ValidationError reports a query the store refuses to run
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Store is the persistence layer for links and users. It holds no state of
// its own beyond the shared database handle.
type Store struct {
	db *gorm.DB
}

// New creates a store backed by db
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// NewLink holds the fields a caller may set when creating a link
type NewLink struct {
	Description string
	URL         string
	PostedByID  *uint
}

// LinkUpdate holds the mutable fields of a link
type LinkUpdate struct {
	Description string
	URL         string
}

// NewUser holds the fields needed to create a user
type NewUser struct {
	Name         string
	Email        string
	PasswordHash string
}

// FindLink returns the link with the given id, or nil if there is none
func (s *Store) FindLink(ctx context.Context, id uint) (*models.Link, error) {
	var link models.Link
	if err := s.db.WithContext(ctx).First(&link, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

// FeedLinks returns the links matching q. The result is never nil.
func (s *Store) FeedLinks(ctx context.Context, q FeedQuery) ([]models.Link, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	query := applyFilter(s.db.WithContext(ctx).Model(&models.Link{}), q.Filter)
	for _, o := range q.OrderBy {
		query = query.Order(clause.OrderByColumn{
			Column: clause.Column{Name: string(o.Field)},
			Desc:   o.Desc,
		})
	}
	if q.Skip != nil {
		query = query.Offset(*q.Skip)
	}
	if q.Take != nil {
		query = query.Limit(*q.Take)
	}

	links := []models.Link{}
	if err := query.Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// CountLinks returns the number of links matching filter
func (s *Store) CountLinks(ctx context.Context, filter string) (int64, error) {
	var count int64
	err := applyFilter(s.db.WithContext(ctx).Model(&models.Link{}), filter).Count(&count).Error
	return count, err
}

// applyFilter keeps links whose description or url contains filter.
// instr is a case-sensitive byte match, so LIKE wildcards in filter are literal.
func applyFilter(query *gorm.DB, filter string) *gorm.DB {
	if filter == "" {
		return query
	}
	return query.Where("instr(description, ?) > 0 OR instr(url, ?) > 0", filter, filter)
}

// CreateLink inserts a new link. CreatedAt is assigned by the store.
func (s *Store) CreateLink(ctx context.Context, in NewLink) (*models.Link, error) {
	link := models.Link{
		Description: in.Description,
		URL:         in.URL,
		PostedByID:  in.PostedByID,
	}
	if err := s.db.WithContext(ctx).Create(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// UpdateLink overwrites the description and url of a link and returns the
// updated record. It returns ErrNotFound if the link does not exist.
func (s *Store) UpdateLink(ctx context.Context, id uint, in LinkUpdate) (*models.Link, error) {
	result := s.db.WithContext(ctx).Model(&models.Link{}).Where("id = ?", id).Updates(map[string]interface{}{
		"description": in.Description,
		"url":         in.URL,
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	link, err := s.FindLink(ctx, id)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, ErrNotFound
	}
	return link, nil
}

// DeleteLink removes a link along with its votes and returns the deleted
// record. It returns ErrNotFound if the link does not exist.
func (s *Store) DeleteLink(ctx context.Context, id uint) (*models.Link, error) {
	link, err := s.FindLink(ctx, id)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, ErrNotFound
	}

	if err := s.db.WithContext(ctx).Select("Voters").Delete(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

// PostedBy returns the user who posted a link, or nil if the link has no
// poster or does not exist
func (s *Store) PostedBy(ctx context.Context, linkID uint) (*models.User, error) {
	var link models.Link
	if err := s.db.WithContext(ctx).Preload("PostedBy").First(&link, linkID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return link.PostedBy, nil
}

// Voters returns the users who voted for a link
func (s *Store) Voters(ctx context.Context, linkID uint) ([]models.User, error) {
	users := []models.User{}
	err := s.db.WithContext(ctx).Model(&models.Link{ID: linkID}).Association("Voters").Find(&users)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// LinksByUser returns the links posted by a user
func (s *Store) LinksByUser(ctx context.Context, userID uint) ([]models.Link, error) {
	links := []models.Link{}
	if err := s.db.WithContext(ctx).Where("posted_by_id = ?", userID).Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// CreateUser inserts a new user. It returns ErrEmailTaken if the email is
// already registered.
func (s *Store) CreateUser(ctx context.Context, in NewUser) (*models.User, error) {
	existing, err := s.FindUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	user := models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

// FindUser returns the user with the given id, or nil if there is none
func (s *Store) FindUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByEmail returns the user registered with email, or nil if there is none
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Vote records userID as a voter of linkID. Each user votes at most once
// per link; a second vote returns ErrAlreadyVoted.
func (s *Store) Vote(ctx context.Context, linkID, userID uint) error {
	link, err := s.FindLink(ctx, linkID)
	if err != nil {
		return err
	}
	if link == nil {
		return fmt.Errorf("link %d: %w", linkID, ErrNotFound)
	}
	user, err := s.FindUser(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}

	var count int64
	err = s.db.WithContext(ctx).Table(models.VotersTable).
		Where("link_id = ? AND user_id = ?", linkID, userID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("link %d: %w", linkID, ErrAlreadyVoted)
	}

	return s.db.WithContext(ctx).Model(link).Association("Voters").Append(user)
}
