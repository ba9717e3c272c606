package handlers

import (
	"net/http"

	"github.com/avelichko/postbook/internal/middleware"
	"github.com/avelichko/postbook/internal/render"
)

// PageHandler serves the static pages.
type PageHandler struct {
	Renderer *render.Renderer
}

func (h *PageHandler) AboutAuthor(w http.ResponseWriter, r *http.Request) {
	h.Renderer.HTML(w, http.StatusOK, "about_author.html", basePage{
		User: middleware.UserFrom(r.Context()),
	})
}

func (h *PageHandler) AboutTech(w http.ResponseWriter, r *http.Request) {
	h.Renderer.HTML(w, http.StatusOK, "about_tech.html", basePage{
		User: middleware.UserFrom(r.Context()),
	})
}

func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Renderer.HTML(w, http.StatusNotFound, "not_found.html", basePage{
		User: middleware.UserFrom(r.Context()),
	})
}
