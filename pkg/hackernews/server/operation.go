package server

import (
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/mikepea/hackernews/pkg/hackernews/graph"
)

// isMutation reports whether the operation req selects is a mutation.
// Unparseable documents return false and fail later in the executor.
func isMutation(req graph.Request) bool {
	doc, err := parser.Parse(parser.ParseParams{Source: req.Query})
	if err != nil {
		return false
	}
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if req.OperationName != "" && (op.Name == nil || op.Name.Value != req.OperationName) {
			continue
		}
		return op.Operation == ast.OperationTypeMutation
	}
	return false
}
