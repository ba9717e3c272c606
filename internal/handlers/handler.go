package handlers

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/avelichko/postbook/internal/events"
	"github.com/avelichko/postbook/internal/metrics"
	"github.com/avelichko/postbook/internal/middleware"
	"github.com/avelichko/postbook/internal/render"
	"github.com/avelichko/postbook/internal/session"
	"github.com/avelichko/postbook/internal/store"
)

type Handler struct {
	Auth  *AuthHandler
	Posts *PostHandler
	Pages *PageHandler

	store    store.Store
	sessions *session.Manager
}

func New(st store.Store, rnd *render.Renderer, sessions *session.Manager, pub events.Publisher, pageSize int) *Handler {
	return &Handler{
		Auth:     &AuthHandler{Store: st, Renderer: rnd, Sessions: sessions},
		Posts:    &PostHandler{Store: st, Renderer: rnd, Events: pub, PageSize: pageSize},
		Pages:    &PageHandler{Renderer: rnd},
		store:    st,
		sessions: sessions,
	}
}

// Router assembles the full route table. Listings and the detail view
// are public; create and edit guard themselves inside the handler so
// the redirect semantics stay in one place.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.CurrentUser(h.sessions, h.store))
	r.Use(metrics.Middleware)

	r.Get("/", h.Posts.Index)
	r.Get("/group/{slug}/", h.Posts.GroupPosts)
	r.Get("/profile/{username}/", h.Posts.Profile)
	r.Get("/posts/{postID}/", h.Posts.Detail)

	r.Get("/create/", h.Posts.Create)
	r.Post("/create/", h.Posts.Create)
	r.Get("/posts/{postID}/edit/", h.Posts.Edit)
	r.Post("/posts/{postID}/edit/", h.Posts.Edit)

	r.Get("/auth/signup/", h.Auth.Signup)
	r.Post("/auth/signup/", h.Auth.Signup)
	r.Get("/auth/login/", h.Auth.Login)
	r.Post("/auth/login/", h.Auth.Login)
	r.Post("/auth/logout/", h.Auth.Logout)

	r.Get("/about/author/", h.Pages.AboutAuthor)
	r.Get("/about/tech/", h.Pages.AboutTech)

	r.Get("/metrics", metrics.Handler().ServeHTTP)

	r.NotFound(h.Pages.NotFound)
	return r
}
