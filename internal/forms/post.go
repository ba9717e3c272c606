// Package forms binds and validates user-submitted form data. Field
// metadata (labels, help texts) lives here so templates and tests share
// one declaration.
package forms

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/avelichko/postbook/internal/models"
)

// FieldMeta is display metadata for a form field, independent of any
// submitted value.
type FieldMeta struct {
	Label    string
	HelpText string
}

var PostFieldMeta = map[string]FieldMeta{
	"text": {
		Label:    "Текст",
		HelpText: "Это текст вашего поста",
	},
	"group": {
		Label:    "Группа",
		HelpText: "Укажите группу, к которой будет относится ваш пост",
	},
}

const (
	errRequired      = "Обязательное поле."
	errInvalidChoice = "Выберите корректный вариант."
)

// PostForm carries the post fields through the create/edit workflow. It
// never touches author or timestamp; those belong to the workflow.
type PostForm struct {
	Text    string
	GroupID *int64

	// Groups are the valid choices for the group select.
	Groups []models.Group
	Errors map[string]string
}

func NewPostForm(groups []models.Group) *PostForm {
	return &PostForm{Groups: groups, Errors: map[string]string{}}
}

// Bind reads submitted values into the form. An unparsable group id is
// kept as a validation error rather than a request error so the page
// re-renders with a field message.
func (f *PostForm) Bind(values url.Values) {
	f.Text = strings.TrimSpace(values.Get("text"))
	f.GroupID = nil

	raw := strings.TrimSpace(values.Get("group"))
	if raw == "" {
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		f.Errors["group"] = errInvalidChoice
		return
	}
	f.GroupID = &id
}

// Valid runs validation: text is required, group (when given) must be an
// existing choice. Field errors accumulate in f.Errors.
func (f *PostForm) Valid() bool {
	if f.Text == "" {
		f.Errors["text"] = errRequired
	}
	if f.GroupID != nil && !f.knownGroup(*f.GroupID) {
		f.Errors["group"] = errInvalidChoice
	}
	return len(f.Errors) == 0
}

func (f *PostForm) knownGroup(id int64) bool {
	for _, g := range f.Groups {
		if g.ID == id {
			return true
		}
	}
	return false
}

func (f *PostForm) Meta(field string) FieldMeta { return PostFieldMeta[field] }

// SelectedGroup tells the template which option to pre-select.
func (f *PostForm) SelectedGroup(id int64) bool {
	return f.GroupID != nil && *f.GroupID == id
}
