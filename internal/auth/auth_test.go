package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

var tokenNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := New(Opts{
		Secret:     "test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
		Now:        func() time.Time { return tokenNow },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return svc
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New(Opts{})
	if err == nil {
		t.Fatal("empty secret accepted")
	}
	if !strings.Contains(err.Error(), "secret") {
		t.Errorf("error = %q", err)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	svc := newTestService(t)

	hash, err := svc.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter22" {
		t.Error("hash equals plaintext")
	}
	if err := svc.CheckPassword(hash, "hunter22"); err != nil {
		t.Errorf("CheckPassword: %v", err)
	}
	if err := svc.CheckPassword(hash, "wrong"); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestHashPassword_TooShort(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.HashPassword("short"); err == nil {
		t.Error("5-char password accepted")
	}
}

func TestTokenRoundtrip(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.IssueToken(42)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	userID, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if userID != 42 {
		t.Errorf("user = %d, want 42", userID)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	svc := newTestService(t)
	other, err := New(Opts{Secret: "different", Now: func() time.Time { return tokenNow }})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	token, _ := svc.IssueToken(1)
	if _, err := other.VerifyToken(token); err == nil {
		t.Error("token signed with another secret accepted")
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	svc := newTestService(t)
	token, _ := svc.IssueToken(1)

	// Reverify as if two hours passed; the TTL is one hour.
	svc.now = func() time.Time { return tokenNow.Add(2 * time.Hour) }
	if _, err := svc.VerifyToken(token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestVerifyToken_Garbage(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.VerifyToken("not.a.token"); err == nil {
		t.Error("garbage accepted")
	}
}

func middlewareRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", Middleware(svc), func(c *gin.Context) {
		id, ok := UserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return r
}

func TestMiddleware_ValidToken(t *testing.T) {
	svc := newTestService(t)
	r := middlewareRouter(svc)
	token, _ := svc.IssueToken(7)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"user_id":7`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestMiddleware_Rejections(t *testing.T) {
	svc := newTestService(t)
	r := middlewareRouter(svc)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"empty token", "Bearer "},
		{"bad token", "Bearer nonsense"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
			if !strings.Contains(w.Body.String(), "Unauthorized") {
				t.Errorf("body = %s", w.Body.String())
			}
		})
	}
}
