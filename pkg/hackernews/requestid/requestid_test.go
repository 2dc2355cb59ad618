package requestid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, Get(c))
	})
	return r
}

func TestGeneratesID(t *testing.T) {
	router := setupTestRouter()

	req, _ := http.NewRequest("GET", "/id", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	id := resp.Header().Get(Header)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("Expected a UUID request ID, got %q", id)
	}
	if resp.Body.String() != id {
		t.Errorf("Expected handler to see %q, got %q", id, resp.Body.String())
	}
}

func TestReusesCallerID(t *testing.T) {
	router := setupTestRouter()

	req, _ := http.NewRequest("GET", "/id", nil)
	req.Header.Set(Header, "abc-123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if got := resp.Header().Get(Header); got != "abc-123" {
		t.Errorf("Expected caller ID to be echoed, got %q", got)
	}
}

func TestRejectsOversizedID(t *testing.T) {
	router := setupTestRouter()

	req, _ := http.NewRequest("GET", "/id", nil)
	req.Header.Set(Header, strings.Repeat("x", 500))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if got := resp.Header().Get(Header); len(got) > maxLength {
		t.Errorf("Expected a fresh ID, got %d chars", len(got))
	}
}

func TestGetWithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := Get(c); got != "-" {
		t.Errorf("Expected placeholder, got %q", got)
	}
}
