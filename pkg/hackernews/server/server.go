package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/mikepea/hackernews/pkg/hackernews/auth"
	"github.com/mikepea/hackernews/pkg/hackernews/graph"
	"github.com/mikepea/hackernews/pkg/hackernews/requestid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/mikepea/hackernews/api/swagger"
)

// Handler serves GraphQL requests
type Handler struct {
	schema graphql.Schema
	store  graph.Store
}

// NewHandler creates a new GraphQL handler. store is shared by all requests.
func NewHandler(schema graphql.Schema, store graph.Store) *Handler {
	return &Handler{schema: schema, store: store}
}

// errorResponse mirrors the GraphQL error shape for requests that never
// reach the executor
func errorResponse(message string) gin.H {
	return gin.H{"errors": []gin.H{{"message": message}}}
}

// Post executes a GraphQL request sent as a JSON body
// @Summary Execute a GraphQL operation
// @Description Run a query or mutation. Errors are reported in the "errors" field with status 200.
// @Tags graphql
// @Accept json
// @Produce json
// @Param request body graph.Request true "GraphQL request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Malformed request"
// @Failure 401 {object} map[string]interface{} "Invalid token"
// @Security BearerAuth
// @Router /graphql [post]
func (h *Handler) Post(c *gin.Context) {
	var req graph.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid request body: "+err.Error()))
		return
	}
	h.execute(c, req)
}

// Get executes a GraphQL query passed in the URL
// @Summary Execute a GraphQL query
// @Description Run a query passed as URL parameters. Mutations must use POST.
// @Tags graphql
// @Produce json
// @Param query query string true "GraphQL document"
// @Param operationName query string false "Operation to run"
// @Param variables query string false "JSON-encoded variables"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Malformed request"
// @Security BearerAuth
// @Router /graphql [get]
func (h *Handler) Get(c *gin.Context) {
	req := graph.Request{
		Query:         c.Query("query"),
		OperationName: c.Query("operationName"),
	}
	if vars := c.Query("variables"); vars != "" {
		if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid variables: "+err.Error()))
			return
		}
	}
	if isMutation(req) {
		c.JSON(http.StatusMethodNotAllowed, errorResponse("mutations must be sent with POST"))
		return
	}
	h.execute(c, req)
}

func (h *Handler) execute(c *gin.Context, req graph.Request) {
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, errorResponse("query is required"))
		return
	}

	rc := &graph.RequestContext{Store: h.store}
	if userID, ok := auth.GetUserID(c); ok {
		rc.UserID = &userID
	}

	result := graph.Execute(c.Request.Context(), h.schema, rc, req)
	if result.HasErrors() {
		log.Printf("[%s] graphql errors in %q: %v", requestid.Get(c), req.OperationName, result.Errors)
	}
	c.JSON(http.StatusOK, result)
}

// RegisterRoutes registers the GraphQL routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/graphql", h.Post)
	rg.GET("/graphql", h.Get)
}

// Health reports liveness
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// NewRouter builds the complete HTTP surface: health checks, swagger docs
// and the GraphQL endpoint behind the optional auth middleware.
func NewRouter(schema graphql.Schema, store graph.Store, dec *auth.Decoder, middleware ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(requestid.Middleware())
	r.Use(middleware...)

	r.GET("/health", Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "hackernews",
		})
	})

	handler := NewHandler(schema, store)
	handler.RegisterRoutes(r.Group("", auth.Middleware(dec)))

	return r
}
