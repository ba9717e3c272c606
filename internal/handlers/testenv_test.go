package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/avelichko/postbook/internal/events"
	"github.com/avelichko/postbook/internal/models"
	"github.com/avelichko/postbook/internal/render"
	"github.com/avelichko/postbook/internal/session"
	"github.com/avelichko/postbook/internal/store"
)

// testEnv runs the full router against the in-memory store, so requests
// exercise the real middleware, guards and templates.
type testEnv struct {
	t        *testing.T
	store    *store.MemoryStore
	sessions *session.Manager
	router   http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := store.NewMemory()
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	sessions := session.NewManager("test-secret", time.Hour)
	h := New(st, renderer, sessions, events.Nop{}, 10)

	return &testEnv{t: t, store: st, sessions: sessions, router: h.Router()}
}

func (e *testEnv) createUser(username string) *models.User {
	e.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("p@$sworD"), bcrypt.MinCost)
	if err != nil {
		e.t.Fatal(err)
	}
	u := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
	}
	if err := e.store.CreateUser(context.Background(), u); err != nil {
		e.t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func (e *testEnv) createGroup(title, slug string) *models.Group {
	e.t.Helper()
	g := &models.Group{Title: title, Slug: slug, Description: "Тестовое описание"}
	if err := e.store.CreateGroup(context.Background(), g); err != nil {
		e.t.Fatalf("create group %s: %v", slug, err)
	}
	return g
}

func (e *testEnv) createPost(author *models.User, text string, groupID *int64, createdAt time.Time) *models.Post {
	e.t.Helper()
	p := &models.Post{Text: text, AuthorID: author.ID, GroupID: groupID, CreatedAt: createdAt}
	if err := e.store.CreatePost(context.Background(), p); err != nil {
		e.t.Fatalf("create post: %v", err)
	}
	return p
}

// sessionCookie builds a valid session cookie for the user, the same
// way the login handler would.
func (e *testEnv) sessionCookie(u *models.User) *http.Cookie {
	e.t.Helper()
	rec := httptest.NewRecorder()
	if err := e.sessions.Issue(rec, u.ID); err != nil {
		e.t.Fatalf("issue session: %v", err)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	e.t.Fatal("no session cookie issued")
	return nil
}

func (e *testEnv) get(path string, as *models.User) *httptest.ResponseRecorder {
	e.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if as != nil {
		req.AddCookie(e.sessionCookie(as))
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) postForm(path string, form url.Values, as *models.User) *httptest.ResponseRecorder {
	e.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if as != nil {
		req.AddCookie(e.sessionCookie(as))
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) postCount() int {
	e.t.Helper()
	posts, err := e.store.Posts(context.Background(), store.PostFilter{})
	if err != nil {
		e.t.Fatal(err)
	}
	return len(posts)
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body: %.200s)", rec.Code, want, rec.Body.String())
	}
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d (body: %.200s)", rec.Code, http.StatusFound, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}

func assertContains(t *testing.T, rec *httptest.ResponseRecorder, substr string) {
	t.Helper()
	if !strings.Contains(rec.Body.String(), substr) {
		t.Fatalf("body does not contain %q (body: %.500s)", substr, rec.Body.String())
	}
}

func assertNotContains(t *testing.T, rec *httptest.ResponseRecorder, substr string) {
	t.Helper()
	if strings.Contains(rec.Body.String(), substr) {
		t.Fatalf("body unexpectedly contains %q", substr)
	}
}
