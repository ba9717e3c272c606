package handlers

import (
	"github.com/avelichko/postbook/internal/forms"
	"github.com/avelichko/postbook/internal/models"
	"github.com/avelichko/postbook/internal/pagination"
)

// One view-model struct per template. The renderer boundary is a typed
// contract; templates never see an open-ended map.

type basePage struct {
	User *models.User
}

type indexPage struct {
	basePage
	Page pagination.Page
}

type groupPage struct {
	basePage
	Group *models.Group
	Page  pagination.Page
}

type profilePage struct {
	basePage
	Author *models.User
	Page   pagination.Page
}

type detailPage struct {
	basePage
	Post        *models.Post
	AuthorPosts pagination.Page
	CanEdit     bool
}

type postFormPage struct {
	basePage
	Form   *forms.PostForm
	IsEdit bool
}

type loginPage struct {
	basePage
	Form      *forms.LoginForm
	FormError string
	Next      string
}

type signupPage struct {
	basePage
	Form      *forms.SignupForm
	FormError string
}
