package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vichannnnn/holy-grail-sub001/handlers"
	"github.com/vichannnnn/holy-grail-sub001/initializers"
	"github.com/vichannnnn/holy-grail-sub001/websocket"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := initializers.Config{
		Port:           8080,
		JWTSecret:      "0123456789abcdef0123456789abcdef",
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	}
	deps := routerDeps{
		hub:        websocket.NewHub(),
		auth:       handlers.NewAuthHandler(nil, cfg.JWTSecret),
		notes:      handlers.NewNotesHandler(nil),
		taxonomy:   handlers.NewTaxonomyHandler(nil),
		admin:      handlers.NewAdminHandler(nil, nil),
		uploads:    handlers.NewUploadsHandler(nil),
		favourites: handlers.NewFavouritesHandler(nil, nil),
		analytics:  handlers.NewAnalyticsHandler(nil),
	}
	return buildRouter(cfg, deps)
}

// Registering the full route table must not panic; the note detail and note
// download paths in particular share the /note/ prefix and have to coexist
// in the GET tree.
func TestBuildRouterRegistersAllRoutes(t *testing.T) {
	r := testRouter()
	require.NotNil(t, r)

	routes := map[string]bool{}
	for _, ri := range r.Routes() {
		routes[ri.Method+" "+ri.Path] = true
	}
	for _, want := range []string{
		"GET /health",
		"GET /notes/approved",
		"GET /notes/pending",
		"GET /all_category_level",
		"GET /all_document_type",
		"GET /all_subjects",
		"POST /auth/create",
		"POST /auth/login",
		"POST /auth/send_reset_password_mail",
		"POST /auth/update_email",
		"POST /auth/update_password",
		"POST /auth/resend_email_verification_token",
		"GET /note/:id",
		"GET /note/:id/:sub",
		"DELETE /note/:id",
		"POST /upload",
		"POST /favourites/add",
		"POST /favourites/remove",
		"GET /favourites/",
		"GET /favourites/check/:id",
		"PUT /admin/approve/:id",
		"GET /ad_analytics/stats/:ad_id",
		"POST /ad_analytics/ad_click",
		"POST /ad_analytics/ad_view",
		"GET /ws",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

// The download URL shape the clients use must match a route: an
// unauthenticated request should reach the auth middleware (401), never the
// router's 404.
func TestNoteDownloadPathIsRouted(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/note/download/123", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/note/123", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
