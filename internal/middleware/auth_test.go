package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

type staticValidator map[string]models.UserRole

func (v staticValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	role, ok := v[token]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return &models.JWTClaims{UserID: "u-" + token, Role: role}, nil
}

func newGuardedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	validator := staticValidator{"admin": models.RoleAdmin, "staff": models.RoleStaff}
	router.GET("/open", JWT(validator), func(c *gin.Context) {
		c.String(http.StatusOK, Claims(c).UserID)
	})
	router.GET("/admin", JWT(validator), RequireRoles(models.RoleAdmin, models.RoleSuperAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestJWTAndRoles(t *testing.T) {
	router := newGuardedRouter()
	cases := []struct {
		path   string
		header string
		want   int
	}{
		{"/open", "", http.StatusUnauthorized},
		{"/open", "Token admin", http.StatusUnauthorized},
		{"/open", "Bearer ", http.StatusUnauthorized},
		{"/open", "Bearer nope", http.StatusUnauthorized},
		{"/open", "bearer staff", http.StatusOK},
		{"/admin", "Bearer staff", http.StatusForbidden},
		{"/admin", "Bearer admin", http.StatusNoContent},
	}
	for _, tc := range cases {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		router.ServeHTTP(recorder, req)
		if recorder.Code != tc.want {
			t.Fatalf("%s with %q: got %d want %d", tc.path, tc.header, recorder.Code, tc.want)
		}
	}
}

func TestRequireRolesWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RequireRoles(models.RoleAdmin)(c)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}
	if !c.IsAborted() {
		t.Fatalf("expected chain to be aborted")
	}
}

type recordingObserver struct {
	method string
	path   string
	status int
}

func (r *recordingObserver) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	r.method, r.path, r.status = method, path, status
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	observer := &recordingObserver{}
	router := gin.New()
	router.Use(Metrics(observer))
	router.GET("/seating-plans/:id", func(c *gin.Context) {
		c.Status(http.StatusAccepted)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/seating-plans/abc", nil))
	if observer.path != "/seating-plans/:id" || observer.status != http.StatusAccepted {
		t.Fatalf("unexpected observation: %+v", observer)
	}

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	if observer.path != "unmatched" || observer.status != http.StatusNotFound {
		t.Fatalf("unexpected observation: %+v", observer)
	}
}
