package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avelichko/postbook/internal/events"
	"github.com/avelichko/postbook/internal/forms"
	"github.com/avelichko/postbook/internal/metrics"
	"github.com/avelichko/postbook/internal/middleware"
	"github.com/avelichko/postbook/internal/models"
	"github.com/avelichko/postbook/internal/pagination"
	"github.com/avelichko/postbook/internal/render"
	"github.com/avelichko/postbook/internal/store"
)

type PostHandler struct {
	Store    store.Store
	Renderer *render.Renderer
	Events   events.Publisher
	PageSize int
}

// ---------------------- helpers ----------------------

func (h *PostHandler) notFound(w http.ResponseWriter, r *http.Request) {
	h.Renderer.HTML(w, http.StatusNotFound, "not_found.html", basePage{
		User: middleware.UserFrom(r.Context()),
	})
}

func (h *PostHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// requireUser is the authentication guard: it hands back the current
// user, or redirects to the login page with a next parameter and
// returns nil. Callers must stop when they get nil.
func (h *PostHandler) requireUser(w http.ResponseWriter, r *http.Request) *models.User {
	if user := middleware.UserFrom(r.Context()); user != nil {
		return user
	}
	http.Redirect(w, r, "/auth/login/?next="+url.QueryEscape(r.URL.Path), http.StatusFound)
	return nil
}

// requireAuthor is the ownership guard for the edit workflow: anyone
// who is not the post's author, anonymous included, gets a silent
// redirect to the detail page.
func (h *PostHandler) requireAuthor(w http.ResponseWriter, r *http.Request, post *models.Post) *models.User {
	user := middleware.UserFrom(r.Context())
	if user != nil && user.ID == post.AuthorID {
		return user
	}
	http.Redirect(w, r, detailPath(post.ID), http.StatusFound)
	return nil
}

func detailPath(postID int64) string {
	return fmt.Sprintf("/posts/%d/", postID)
}

func postIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
}

// page fetches posts matching the filter and slices out the requested
// page. All three listings share this shape.
func (h *PostHandler) page(r *http.Request, f store.PostFilter) (pagination.Page, error) {
	posts, err := h.Store.Posts(r.Context(), f)
	if err != nil {
		return pagination.Page{}, err
	}
	return pagination.Paginate(posts, h.PageSize, pagination.RequestedPage(r.URL.Query())), nil
}

// ---------------------- LISTINGS ----------------------

func (h *PostHandler) Index(w http.ResponseWriter, r *http.Request) {
	page, err := h.page(r, store.PostFilter{})
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.Renderer.HTML(w, http.StatusOK, "index.html", indexPage{
		basePage: basePage{User: middleware.UserFrom(r.Context())},
		Page:     page,
	})
}

func (h *PostHandler) GroupPosts(w http.ResponseWriter, r *http.Request) {
	group, err := h.Store.GroupBySlug(r.Context(), chi.URLParam(r, "slug"))
	if errors.Is(err, store.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	page, err := h.page(r, store.PostFilter{GroupID: &group.ID})
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.Renderer.HTML(w, http.StatusOK, "group_list.html", groupPage{
		basePage: basePage{User: middleware.UserFrom(r.Context())},
		Group:    group,
		Page:     page,
	})
}

func (h *PostHandler) Profile(w http.ResponseWriter, r *http.Request) {
	author, err := h.Store.UserByUsername(r.Context(), chi.URLParam(r, "username"))
	if errors.Is(err, store.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	page, err := h.page(r, store.PostFilter{AuthorID: &author.ID})
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.Renderer.HTML(w, http.StatusOK, "profile.html", profilePage{
		basePage: basePage{User: middleware.UserFrom(r.Context())},
		Author:   author,
		Page:     page,
	})
}

// ---------------------- DETAIL ----------------------

func (h *PostHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := postIDParam(r)
	if err != nil {
		h.notFound(w, r)
		return
	}

	post, err := h.Store.PostByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	authorPosts, err := h.page(r, store.PostFilter{AuthorID: &post.AuthorID})
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	user := middleware.UserFrom(r.Context())
	h.Renderer.HTML(w, http.StatusOK, "post_detail.html", detailPage{
		basePage:    basePage{User: user},
		Post:        post,
		AuthorPosts: authorPosts,
		CanEdit:     user != nil && user.ID == post.AuthorID,
	})
}

// ---------------------- CREATE ----------------------

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := h.requireUser(w, r)
	if user == nil {
		return
	}

	groups, err := h.Store.Groups(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	form := forms.NewPostForm(groups)

	if r.Method == http.MethodGet {
		h.Renderer.HTML(w, http.StatusOK, "create_post.html", postFormPage{
			basePage: basePage{User: user},
			Form:     form,
			IsEdit:   false,
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}
	form.Bind(r.PostForm)

	// Validation failure re-renders the same page with field errors;
	// nothing is persisted.
	if !form.Valid() {
		h.Renderer.HTML(w, http.StatusOK, "create_post.html", postFormPage{
			basePage: basePage{User: user},
			Form:     form,
			IsEdit:   false,
		})
		return
	}

	post := &models.Post{
		Text:     form.Text,
		AuthorID: user.ID,
		GroupID:  form.GroupID,
	}
	if err := h.Store.CreatePost(r.Context(), post); err != nil {
		h.serverError(w, r, err)
		return
	}

	h.Events.PostCreated(r.Context(), post.ID, post.AuthorID, post.GroupID)
	metrics.PostsCreated.Inc()

	http.Redirect(w, r, "/profile/"+url.PathEscape(user.Username)+"/", http.StatusFound)
}

// ---------------------- EDIT ----------------------

func (h *PostHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := postIDParam(r)
	if err != nil {
		h.notFound(w, r)
		return
	}

	post, err := h.Store.PostByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.notFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	// Ownership is checked before any form processing, on GET and POST
	// alike.
	user := h.requireAuthor(w, r, post)
	if user == nil {
		return
	}

	groups, err := h.Store.Groups(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	form := forms.NewPostForm(groups)

	if r.Method == http.MethodGet {
		form.Text = post.Text
		form.GroupID = post.GroupID
		h.Renderer.HTML(w, http.StatusOK, "create_post.html", postFormPage{
			basePage: basePage{User: user},
			Form:     form,
			IsEdit:   true,
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}
	form.Bind(r.PostForm)

	if !form.Valid() {
		h.Renderer.HTML(w, http.StatusOK, "create_post.html", postFormPage{
			basePage: basePage{User: user},
			Form:     form,
			IsEdit:   true,
		})
		return
	}

	// Only text and group change; author and timestamp stay as created.
	post.Text = form.Text
	post.GroupID = form.GroupID
	if err := h.Store.UpdatePost(r.Context(), post); err != nil {
		h.serverError(w, r, err)
		return
	}

	h.Events.PostUpdated(r.Context(), post.ID, post.AuthorID, post.GroupID)
	metrics.PostsEdited.Inc()

	http.Redirect(w, r, detailPath(post.ID), http.StatusFound)
}
