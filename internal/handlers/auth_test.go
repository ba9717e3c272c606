package handlers

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/avelichko/postbook/internal/session"
)

func signupForm() url.Values {
	return url.Values{
		"first_name": {"First"},
		"last_name":  {"Last"},
		"username":   {"usrnm"},
		"email":      {"eml@eml.inl"},
		"password1":  {"p@$sworD"},
		"password2":  {"p@$sworD"},
	}
}

func TestSignup(t *testing.T) {
	e := newTestEnv(t)

	rec := e.postForm("/auth/signup/", signupForm(), nil)
	assertRedirect(t, rec, "/")

	u, err := e.store.UserByUsername(context.Background(), "usrnm")
	if err != nil {
		t.Fatalf("user not created: %v", err)
	}
	if u.FirstName != "First" || u.LastName != "Last" || u.Email != "eml@eml.inl" {
		t.Errorf("user fields wrong: %+v", u)
	}
	if u.Password == "p@$sworD" || u.Password == "" {
		t.Error("password stored unhashed")
	}
}

func TestSignupPasswordMismatch(t *testing.T) {
	e := newTestEnv(t)

	form := signupForm()
	form.Set("password2", "different")
	rec := e.postForm("/auth/signup/", form, nil)

	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec, "Пароли не совпадают.")

	if _, err := e.store.UserByUsername(context.Background(), "usrnm"); err == nil {
		t.Error("user created despite password mismatch")
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	e := newTestEnv(t)
	e.createUser("usrnm")

	rec := e.postForm("/auth/signup/", signupForm(), nil)
	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec, "уже существует")
}

func TestLoginSetsSessionAndRedirects(t *testing.T) {
	e := newTestEnv(t)
	e.createUser("auth") // password is p@$sworD

	rec := e.postForm("/auth/login/", url.Values{
		"username": {"auth"},
		"password": {"p@$sworD"},
		"next":     {"/create/"},
	}, nil)

	assertRedirect(t, rec, "/create/")

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("no session cookie set on login")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	e := newTestEnv(t)
	e.createUser("auth")

	rec := e.postForm("/auth/login/", url.Values{
		"username": {"auth"},
		"password": {"wrong"},
	}, nil)

	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec, "Неверное имя пользователя или пароль.")
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			t.Error("session cookie set on failed login")
		}
	}
}

func TestLoginUnknownUser(t *testing.T) {
	e := newTestEnv(t)

	rec := e.postForm("/auth/login/", url.Values{
		"username": {"ghost"},
		"password": {"whatever"},
	}, nil)

	assertStatus(t, rec, http.StatusOK)
	assertContains(t, rec, "Неверное имя пользователя или пароль.")
}

func TestLoginNextIsSanitized(t *testing.T) {
	e := newTestEnv(t)
	e.createUser("auth")

	rec := e.postForm("/auth/login/", url.Values{
		"username": {"auth"},
		"password": {"p@$sworD"},
		"next":     {"https://evil.example/phish"},
	}, nil)

	assertRedirect(t, rec, "/")
}

func TestLogoutClearsSession(t *testing.T) {
	e := newTestEnv(t)
	user := e.createUser("auth")

	rec := e.postForm("/auth/logout/", url.Values{}, user)
	assertRedirect(t, rec, "/")

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie not cleared on logout")
	}
}
