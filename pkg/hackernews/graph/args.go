package graph

import (
	"fmt"

	"github.com/mikepea/hackernews/pkg/hackernews/store"
)

// Sort directions accepted by LinkOrderByInput
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// orderFields lists the LinkOrderByInput fields in the order they are
// applied when one input object sets several of them.
var orderFields = []struct {
	name  string
	field store.LinkField
}{
	{"description", store.LinkFieldDescription},
	{"url", store.LinkFieldURL},
	{"createdAt", store.LinkFieldCreatedAt},
}

// FeedArgs are the arguments of Query.feed
type FeedArgs struct {
	Filter  string
	Skip    *int
	Take    *int
	OrderBy []store.OrderBy
}

// Query converts the arguments to a store query
func (a FeedArgs) Query() store.FeedQuery {
	return store.FeedQuery{
		Filter:  a.Filter,
		Skip:    a.Skip,
		Take:    a.Take,
		OrderBy: a.OrderBy,
	}
}

// PostArgs are the arguments of Mutation.post
type PostArgs struct {
	Description string
	URL         string
}

// UpdateLinkArgs are the arguments of Mutation.updateLink
type UpdateLinkArgs struct {
	ID          int
	Description string
	URL         string
}

// SignupArgs are the arguments of Mutation.signup
type SignupArgs struct {
	Email    string
	Password string
	Name     string
}

// LoginArgs are the arguments of Mutation.login
type LoginArgs struct {
	Email    string
	Password string
}

func parseFeedArgs(args map[string]interface{}) (FeedArgs, error) {
	var out FeedArgs
	out.Filter = stringArg(args, "filter")
	if skip, ok := intArg(args, "skip"); ok {
		out.Skip = &skip
	}
	if take, ok := intArg(args, "take"); ok {
		out.Take = &take
	}

	raw, _ := args["orderBy"].([]interface{})
	for i, item := range raw {
		entry, ok := item.(map[string]interface{})
		if !ok || len(entry) == 0 {
			return FeedArgs{}, fmt.Errorf("orderBy[%d] must set one of description, url, createdAt", i)
		}
		for _, f := range orderFields {
			dir, ok := entry[f.name]
			if !ok {
				continue
			}
			switch dir {
			case SortAsc:
				out.OrderBy = append(out.OrderBy, store.OrderBy{Field: f.field})
			case SortDesc:
				out.OrderBy = append(out.OrderBy, store.OrderBy{Field: f.field, Desc: true})
			default:
				return FeedArgs{}, fmt.Errorf("orderBy[%d].%s: unknown direction %v", i, f.name, dir)
			}
		}
	}
	return out, nil
}

func parseUpdateLinkArgs(args map[string]interface{}) UpdateLinkArgs {
	id, _ := intArg(args, "id")
	return UpdateLinkArgs{
		ID:          id,
		Description: stringArg(args, "description"),
		URL:         stringArg(args, "url"),
	}
}

func intArg(args map[string]interface{}, name string) (int, bool) {
	v, ok := args[name].(int)
	return v, ok
}

func stringArg(args map[string]interface{}, name string) string {
	v, _ := args[name].(string)
	return v
}

// entityID converts a GraphQL Int to a primary key. Ids are never below 1,
// so anything smaller cannot match a row.
func entityID(id int) (uint, bool) {
	if id < 1 {
		return 0, false
	}
	return uint(id), true
}
