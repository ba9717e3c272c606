package forms

import (
	"net/url"
	"testing"

	"github.com/avelichko/postbook/internal/models"
)

var testGroups = []models.Group{
	{ID: 1, Title: "Тестовая группа", Slug: "test_slug"},
	{ID: 2, Title: "Тестовая группа 2", Slug: "test_slug2"},
}

func TestPostFieldMeta(t *testing.T) {
	wantLabels := map[string]string{
		"text":  "Текст",
		"group": "Группа",
	}
	wantHelp := map[string]string{
		"text":  "Это текст вашего поста",
		"group": "Укажите группу, к которой будет относится ваш пост",
	}

	for field, label := range wantLabels {
		if got := PostFieldMeta[field].Label; got != label {
			t.Errorf("label for %q = %q, want %q", field, got, label)
		}
	}
	for field, help := range wantHelp {
		if got := PostFieldMeta[field].HelpText; got != help {
			t.Errorf("help text for %q = %q, want %q", field, got, help)
		}
	}
}

func TestPostFormMetaIndependentOfValues(t *testing.T) {
	form := NewPostForm(testGroups)
	form.Bind(url.Values{"text": {"что-то"}, "group": {"2"}})

	if form.Meta("text").Label != "Текст" || form.Meta("group").Label != "Группа" {
		t.Error("field metadata changed after binding submitted values")
	}
}

func TestPostFormValidation(t *testing.T) {
	cases := []struct {
		name       string
		values     url.Values
		wantValid  bool
		wantErrors []string
	}{
		{
			name:      "text with group",
			values:    url.Values{"text": {"Тестовый текст"}, "group": {"1"}},
			wantValid: true,
		},
		{
			name:      "text without group",
			values:    url.Values{"text": {"Тестовый текст"}},
			wantValid: true,
		},
		{
			name:       "empty text",
			values:     url.Values{"text": {""}},
			wantValid:  false,
			wantErrors: []string{"text"},
		},
		{
			name:       "whitespace only text",
			values:     url.Values{"text": {"   "}},
			wantValid:  false,
			wantErrors: []string{"text"},
		},
		{
			name:       "unknown group id",
			values:     url.Values{"text": {"Тестовый текст"}, "group": {"99"}},
			wantValid:  false,
			wantErrors: []string{"group"},
		},
		{
			name:       "non-numeric group",
			values:     url.Values{"text": {"Тестовый текст"}, "group": {"abc"}},
			wantValid:  false,
			wantErrors: []string{"group"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			form := NewPostForm(testGroups)
			form.Bind(c.values)

			if got := form.Valid(); got != c.wantValid {
				t.Fatalf("Valid() = %v, want %v (errors: %v)", got, c.wantValid, form.Errors)
			}
			for _, field := range c.wantErrors {
				if form.Errors[field] == "" {
					t.Errorf("expected an error on field %q, got none", field)
				}
			}
		})
	}
}

func TestPostFormBindGroup(t *testing.T) {
	form := NewPostForm(testGroups)
	form.Bind(url.Values{"text": {"t"}, "group": {"2"}})

	if form.GroupID == nil || *form.GroupID != 2 {
		t.Fatalf("GroupID = %v, want 2", form.GroupID)
	}
	if !form.SelectedGroup(2) || form.SelectedGroup(1) {
		t.Error("SelectedGroup does not match the bound group")
	}
}
