package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"crowdfund_webapp/internal/domain"
	"crowdfund_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

func newAuthedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", JWT(), func(c *gin.Context) {
		user, _ := AuthUserFromContext(c)
		c.JSON(200, gin.H{"id": user.ID})
	})
	r.GET("/admin", JWT(), AdminOnly(), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	return r
}

func issueToken(t *testing.T, isAdmin bool) string {
	t.Helper()
	os.Setenv("JWT_SECRET", "test-secret")
	service.InitJWT()

	token, err := service.GenerateJWT(&domain.User{
		ID:      "user-1",
		Email:   "u@example.com",
		Name:    "U",
		IsAdmin: isAdmin,
	})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func TestJWTMissingToken(t *testing.T) {
	r := newAuthedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/private", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestJWTInvalidToken(t *testing.T) {
	r := newAuthedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/private", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestJWTCookieAccepted(t *testing.T) {
	token := issueToken(t, false)
	r := newAuthedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/private", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestJWTBearerFallback(t *testing.T) {
	token := issueToken(t, false)
	r := newAuthedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestAdminOnlyRejectsNonAdmin(t *testing.T) {
	token := issueToken(t, false)
	r := newAuthedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestAdminOnlyAllowsAdmin(t *testing.T) {
	token := issueToken(t, true)
	r := newAuthedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
