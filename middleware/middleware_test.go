package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"simba/models"
	"simba/services/activity"
	"simba/services/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testAuthn() *auth.JWTAuthenticator {
	return &auth.JWTAuthenticator{
		Secret:      []byte("test-secret"),
		AdminTTL:    time.Hour,
		CustomerTTL: time.Hour,
	}
}

func issue(t *testing.T, a *auth.JWTAuthenticator, p *auth.Principal) string {
	t.Helper()
	token, err := a.IssueToken(p)
	require.NoError(t, err)
	return token
}

func serve(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminAuth(t *testing.T) {
	a := testAuthn()
	r := gin.New()
	r.GET("/", AdminAuth(a, auth.ActionPOSRefund), func(c *gin.Context) {
		c.String(http.StatusOK, PrincipalFrom(c).Role)
	})

	staff := issue(t, a, &auth.Principal{ID: "a1", Email: "s@x.com", Role: models.RoleStaff})
	manager := issue(t, a, &auth.Principal{ID: "a2", Email: "m@x.com", Role: models.RoleManager})
	customer := issue(t, a, &auth.Principal{ID: "c1", Email: "c@x.com", IsCustomer: true})

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"garbage token", "not-a-jwt", http.StatusUnauthorized},
		{"customer token", customer, http.StatusUnauthorized},
		{"role too low", staff, http.StatusForbidden},
		{"allowed", manager, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, tt.token)
			assert.Equal(t, tt.status, w.Code)
		})
	}
	assert.Equal(t, models.RoleManager, serve(r, manager).Body.String())
}

func TestCustomerAuth(t *testing.T) {
	a := testAuthn()
	r := gin.New()
	r.GET("/", CustomerAuth(a), func(c *gin.Context) {
		c.String(http.StatusOK, PrincipalFrom(c).ID)
	})

	admin := issue(t, a, &auth.Principal{ID: "a1", Role: models.RoleAdmin})
	customer := issue(t, a, &auth.Principal{ID: "c1", IsCustomer: true})

	assert.Equal(t, http.StatusUnauthorized, serve(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, admin).Code)
	w := serve(r, customer)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "c1", w.Body.String())
}

func TestOptionalCustomer(t *testing.T) {
	a := testAuthn()
	r := gin.New()
	r.GET("/", OptionalCustomer(a), func(c *gin.Context) {
		if p := PrincipalFrom(c); p != nil {
			c.String(http.StatusOK, p.ID)
			return
		}
		c.String(http.StatusOK, "guest")
	})

	assert.Equal(t, "guest", serve(r, "").Body.String())
	assert.Equal(t, "guest", serve(r, "bogus").Body.String())
	assert.Equal(t, "c9", serve(r, issue(t, a, &auth.Principal{ID: "c9", IsCustomer: true})).Body.String())
}

func TestRequestMeta(t *testing.T) {
	r := gin.New()
	r.Use(RequestMeta())
	r.GET("/", func(c *gin.Context) {
		meta := activity.MetaFrom(c.Request.Context())
		c.String(http.StatusOK, meta.IP+"|"+meta.RequestID)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "41.90.1.2, 10.0.0.1")
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "41.90.1.2|req-42", w.Body.String())
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, "").Code)
	assert.Equal(t, http.StatusOK, serve(r, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, "").Code)
}
