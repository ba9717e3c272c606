package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/avelichko/postbook/internal/forms"
	"github.com/avelichko/postbook/internal/middleware"
	"github.com/avelichko/postbook/internal/models"
	"github.com/avelichko/postbook/internal/render"
	"github.com/avelichko/postbook/internal/session"
	"github.com/avelichko/postbook/internal/store"
)

type AuthHandler struct {
	Store    store.Store
	Renderer *render.Renderer
	Sessions *session.Manager
}

// safeNext only allows same-site relative redirect targets; anything
// else falls back to the index.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}

// -------------- SIGN UP ----------------------

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	form := forms.NewSignupForm()

	if r.Method == http.MethodGet {
		h.Renderer.HTML(w, http.StatusOK, "signup.html", signupPage{
			basePage: basePage{User: user},
			Form:     form,
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}
	form.Bind(r.PostForm)

	if !form.Valid() {
		h.Renderer.HTML(w, http.StatusOK, "signup.html", signupPage{
			basePage: basePage{User: user},
			Form:     form,
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password1), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("signup: hash password: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	newUser := &models.User{
		Username:  form.Username,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  string(hash),
	}

	err = h.Store.CreateUser(r.Context(), newUser)
	if errors.Is(err, store.ErrDuplicate) {
		h.Renderer.HTML(w, http.StatusOK, "signup.html", signupPage{
			basePage:  basePage{User: user},
			Form:      form,
			FormError: "Пользователь с таким именем или почтой уже существует.",
		})
		return
	}
	if err != nil {
		log.Printf("signup: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// -------------- LOGIN ------------------------

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	form := forms.NewLoginForm()

	if r.Method == http.MethodGet {
		h.Renderer.HTML(w, http.StatusOK, "login.html", loginPage{
			basePage: basePage{User: user},
			Form:     form,
			Next:     safeNext(r.URL.Query().Get("next")),
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}
	form.Bind(r.PostForm)
	next := safeNext(r.PostForm.Get("next"))

	rerender := func(msg string) {
		h.Renderer.HTML(w, http.StatusOK, "login.html", loginPage{
			basePage:  basePage{User: user},
			Form:      form,
			FormError: msg,
			Next:      next,
		})
	}

	if !form.Valid() {
		rerender("")
		return
	}

	account, err := h.Store.UserByUsername(r.Context(), form.Username)
	if errors.Is(err, store.ErrNotFound) {
		rerender("Неверное имя пользователя или пароль.")
		return
	}
	if err != nil {
		log.Printf("login: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(form.Password)) != nil {
		rerender("Неверное имя пользователя или пароль.")
		return
	}

	if err := h.Sessions.Issue(w, account.ID); err != nil {
		log.Printf("login: issue session: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, next, http.StatusFound)
}

// -------------- LOGOUT -----------------------

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusFound)
}
