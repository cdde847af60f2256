package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"kodbank/internal/auth"
	"kodbank/internal/domain"

	"github.com/gin-gonic/gin"
)

type stubTokens struct {
	mu      sync.Mutex
	records map[string]*domain.SessionToken
}

func newStubTokens() *stubTokens {
	return &stubTokens{records: make(map[string]*domain.SessionToken)}
}

func (s *stubTokens) Insert(_ context.Context, record *domain.SessionToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *record
	s.records[record.Token] = &copy
	return nil
}

func (s *stubTokens) Find(_ context.Context, token string) (*domain.SessionToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copy := *record
	return &copy, nil
}

func (s *stubTokens) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, token)
	return nil
}

func (s *stubTokens) DeleteExpired(_ context.Context, now int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed int64
	for token, record := range s.records {
		if record.Expiry <= now {
			delete(s.records, token)
			removed++
		}
	}
	return removed, nil
}

func newProtectedRouter(authority *auth.TokenAuthority) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", SessionAuth(authority), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"username": c.GetString("username"),
			"role":     c.GetString("role"),
			"uid":      c.GetString("uid"),
		})
	})
	return r
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body.Error
}

func TestSessionAuth_MissingCookie(t *testing.T) {
	authority := auth.NewTokenAuthority(newStubTokens(), "secret", time.Hour)
	r := newProtectedRouter(authority)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "Unauthorized" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestSessionAuth_ValidCookie(t *testing.T) {
	tokens := newStubTokens()
	authority := auth.NewTokenAuthority(tokens, "secret", time.Hour)
	r := newProtectedRouter(authority)

	account := &domain.Account{UID: "u1", Username: "alice", Role: domain.RoleAdmin}
	token, _, err := authority.Issue(context.Background(), account)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Username string `json:"username"`
		Role     string `json:"role"`
		UID      string `json:"uid"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Username != "alice" || body.Role != domain.RoleAdmin || body.UID != "u1" {
		t.Fatalf("claims not injected: %+v", body)
	}
}

func TestSessionAuth_RevokedToken(t *testing.T) {
	tokens := newStubTokens()
	authority := auth.NewTokenAuthority(tokens, "secret", time.Hour)
	r := newProtectedRouter(authority)

	account := &domain.Account{UID: "u1", Username: "alice", Role: domain.RoleCustomer}
	token, _, err := authority.Issue(context.Background(), account)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if err := authority.Revoke(context.Background(), token); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "Invalid session" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestSessionAuth_GarbageToken(t *testing.T) {
	authority := auth.NewTokenAuthority(newStubTokens(), "secret", time.Hour)
	r := newProtectedRouter(authority)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-token"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "Invalid token" {
		t.Fatalf("unexpected message: %q", msg)
	}
}
