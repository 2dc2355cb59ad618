package store

import "fmt"

// LinkField is a link column that the feed may be ordered by
type LinkField string

const (
	LinkFieldDescription LinkField = "description"
	LinkFieldURL         LinkField = "url"
	LinkFieldCreatedAt   LinkField = "created_at"
)

// Valid reports whether f is one of the sortable link columns
func (f LinkField) Valid() bool {
	switch f {
	case LinkFieldDescription, LinkFieldURL, LinkFieldCreatedAt:
		return true
	}
	return false
}

// OrderBy is one key of a multi-key sort
type OrderBy struct {
	Field LinkField
	Desc  bool
}

// FeedQuery selects a page of links. A nil Skip or Take means no offset or
// no limit; an empty Filter matches every link; OrderBy keys apply in order.
type FeedQuery struct {
	Filter  string
	Skip    *int
	Take    *int
	OrderBy []OrderBy
}

// Validate checks the pagination bounds and that every sort key is allowed
func (q FeedQuery) Validate() error {
	if q.Skip != nil && *q.Skip < 0 {
		return &ValidationError{Message: fmt.Sprintf("skip must not be negative, got %d", *q.Skip)}
	}
	if q.Take != nil && *q.Take < 0 {
		return &ValidationError{Message: fmt.Sprintf("take must not be negative, got %d", *q.Take)}
	}
	for _, o := range q.OrderBy {
		if !o.Field.Valid() {
			return &ValidationError{Message: fmt.Sprintf("cannot order links by %q", o.Field)}
		}
	}
	return nil
}
