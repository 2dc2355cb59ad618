package graph

import (
	"context"

	"github.com/graphql-go/graphql"
)

// Request is a GraphQL request as sent over HTTP
type Request struct {
	Query         string                 `json:"query" form:"query"`
	OperationName string                 `json:"operationName" form:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Execute runs req against schema with rc available to every resolver
func Execute(ctx context.Context, schema graphql.Schema, rc *RequestContext, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        WithRequestContext(ctx, rc),
	})
}
