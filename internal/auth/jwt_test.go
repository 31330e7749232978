package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/potionworks/potion-api-be/internal/models"
)

func TestGenerateAndValidate_Success(t *testing.T) {
	t.Parallel()

	svc := NewService("super-secret", "potion_token")
	user := models.User{ID: "user-123", Name: "harry"}

	tok, err := svc.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("ValidateToken error: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("userId mismatch: got %q want %q", claims.UserID, user.ID)
	}
	if claims.Username != user.Name {
		t.Fatalf("userName mismatch: got %q want %q", claims.Username, user.Name)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewService("right-secret", "potion_token").GenerateToken(models.User{ID: "u1", Name: "ron"})
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := NewService("wrong-secret", "potion_token").ValidateToken(tok); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	t.Parallel()

	secret := "secret"
	claims := &Claims{
		UserID:   "u2",
		Username: "hermione",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Minute)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	if _, err := NewService(secret, "potion_token").ValidateToken(tok); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestValidateToken_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := NewService("k", "potion_token").ValidateToken("not.a.jwt"); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}

func TestSessionCookie_Attributes(t *testing.T) {
	t.Parallel()

	svc := NewService("secret", "potion_token")
	c := svc.SessionCookie("tok")

	if c.Name != "potion_token" {
		t.Fatalf("cookie name: got %q", c.Name)
	}
	if !c.HttpOnly {
		t.Fatalf("cookie must be HttpOnly")
	}
	if c.SameSite != http.SameSiteStrictMode {
		t.Fatalf("cookie must be SameSite=Strict")
	}
	if c.MaxAge != int(TokenTTL.Seconds()) {
		t.Fatalf("cookie MaxAge: got %d want %d", c.MaxAge, int(TokenTTL.Seconds()))
	}

	cleared := svc.ClearedCookie()
	if cleared.MaxAge >= 0 {
		t.Fatalf("cleared cookie must have negative MaxAge, got %d", cleared.MaxAge)
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	svc := NewService("secret", "potion_token")

	var gotClaims *Claims
	handler := svc.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = r.Context().Value(UserClaimsKey).(*Claims)
		w.WriteHeader(http.StatusOK)
	}))

	// No cookie
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/potions", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing cookie: got %d want 401", rec.Code)
	}

	// Garbage token
	req := httptest.NewRequest(http.MethodPost, "/potions", nil)
	req.AddCookie(&http.Cookie{Name: "potion_token", Value: "garbage"})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: got %d want 401", rec.Code)
	}

	// Valid token
	tok, err := svc.GenerateToken(models.User{ID: "u3", Name: "neville"})
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	req = httptest.NewRequest(http.MethodPost, "/potions", nil)
	req.AddCookie(&http.Cookie{Name: "potion_token", Value: tok})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: got %d want 200", rec.Code)
	}
	if gotClaims == nil || gotClaims.UserID != "u3" || gotClaims.Username != "neville" {
		t.Fatalf("claims not attached to context: %+v", gotClaims)
	}
}
