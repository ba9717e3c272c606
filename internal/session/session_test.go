package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func issueCookie(t *testing.T, m *Manager, userID int64) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := m.Issue(rec, userID); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestIssueAndVerify(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	cookie := issueCookie(t, m, 7)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	id, ok := m.UserID(req)
	if !ok {
		t.Fatal("valid session not recognized")
	}
	if id != 7 {
		t.Errorf("user id = %d, want 7", id)
	}
}

func TestMissingCookieIsAnonymous(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if _, ok := m.UserID(req); ok {
		t.Error("request without cookie treated as authenticated")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	cookie := issueCookie(t, m, 7)
	cookie.Value += "x"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	if _, ok := m.UserID(req); ok {
		t.Error("tampered token accepted")
	}
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := NewManager("test-secret", time.Hour)
	verifier := NewManager("other-secret", time.Hour)
	cookie := issueCookie(t, issuer, 7)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	if _, ok := verifier.UserID(req); ok {
		t.Error("token signed with a different secret accepted")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)
	cookie := issueCookie(t, m, 7)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	if _, ok := m.UserID(req); ok {
		t.Error("expired token accepted")
	}
}

func TestClearExpiresCookie(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	rec := httptest.NewRecorder()
	m.Clear(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("unexpected cookies: %v", cookies)
	}
	if cookies[0].MaxAge >= 0 {
		t.Errorf("MaxAge = %d, want negative", cookies[0].MaxAge)
	}
}
