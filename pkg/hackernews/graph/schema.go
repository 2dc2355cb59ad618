package graph

import (
	"github.com/graphql-go/graphql"
)

// NewSchema builds the executable schema. tokens signs the tokens returned
// by signup and login.
func NewSchema(tokens TokenIssuer) (graphql.Schema, error) {
	r := NewResolver(tokens)

	sortEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "Sort",
		Values: graphql.EnumValueConfigMap{
			SortAsc:  &graphql.EnumValueConfig{Value: SortAsc},
			SortDesc: &graphql.EnumValueConfig{Value: SortDesc},
		},
	})

	linkOrderByInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "LinkOrderByInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"description": &graphql.InputObjectFieldConfig{Type: sortEnum},
			"url":         &graphql.InputObjectFieldConfig{Type: sortEnum},
			"createdAt":   &graphql.InputObjectFieldConfig{Type: sortEnum},
		},
	})

	// Link and User reference each other, so their fields are thunks
	var linkType, userType *graphql.Object

	linkType = graphql.NewObject(graphql.ObjectConfig{
		Name:        "Link",
		Description: "A link posted to the feed",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
				"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"url":         &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
				"postedBy": &graphql.Field{
					Type:    userType,
					Resolve: r.LinkPostedBy,
				},
				"voters": &graphql.Field{
					Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
					Resolve: r.LinkVoters,
				},
			}
		}),
	})

	userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
				"name":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"email": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"links": &graphql.Field{
					Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(linkType))),
					Resolve: r.UserLinks,
				},
			}
		}),
	})

	messageType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Message",
		Fields: graphql.Fields{
			"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"success": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		},
	})

	authPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"user":  &graphql.Field{Type: graphql.NewNonNull(userType)},
		},
	})

	voteType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Vote",
		Fields: graphql.Fields{
			"link": &graphql.Field{Type: graphql.NewNonNull(linkType)},
			"user": &graphql.Field{Type: graphql.NewNonNull(userType)},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"feed": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(linkType))),
				Args: graphql.FieldConfigArgument{
					"filter":  &graphql.ArgumentConfig{Type: graphql.String},
					"skip":    &graphql.ArgumentConfig{Type: graphql.Int},
					"take":    &graphql.ArgumentConfig{Type: graphql.Int},
					"orderBy": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(linkOrderByInput))},
				},
				Resolve: r.Feed,
			},
			"feedCount": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Args: graphql.FieldConfigArgument{
					"filter": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: r.FeedCount,
			},
			"link": &graphql.Field{
				Type: linkType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.Link,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"post": &graphql.Field{
				Type: graphql.NewNonNull(linkType),
				Args: graphql.FieldConfigArgument{
					"description": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"url":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.Post,
			},
			"updateLink": &graphql.Field{
				Type: graphql.NewNonNull(messageType),
				Args: graphql.FieldConfigArgument{
					"id":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"description": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"url":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.UpdateLink,
			},
			"deleteLink": &graphql.Field{
				Type: graphql.NewNonNull(messageType),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.DeleteLink,
			},
			"signup": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"name":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.Signup,
			},
			"login": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.Login,
			},
			"vote": &graphql.Field{
				Type: graphql.NewNonNull(voteType),
				Args: graphql.FieldConfigArgument{
					"linkId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.Vote,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
