package forms

import (
	"net/mail"
	"net/url"
	"strings"
)

// SignupForm is the registration form: username, optional names, email
// and a password typed twice.
type SignupForm struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password1 string
	Password2 string

	Errors map[string]string
}

func NewSignupForm() *SignupForm {
	return &SignupForm{Errors: map[string]string{}}
}

func (f *SignupForm) Bind(values url.Values) {
	f.Username = strings.TrimSpace(values.Get("username"))
	f.FirstName = strings.TrimSpace(values.Get("first_name"))
	f.LastName = strings.TrimSpace(values.Get("last_name"))
	f.Email = strings.TrimSpace(values.Get("email"))
	f.Password1 = values.Get("password1")
	f.Password2 = values.Get("password2")
}

func (f *SignupForm) Valid() bool {
	if f.Username == "" {
		f.Errors["username"] = errRequired
	}
	if f.Email == "" {
		f.Errors["email"] = errRequired
	} else if _, err := mail.ParseAddress(f.Email); err != nil {
		f.Errors["email"] = "Введите правильный адрес электронной почты."
	}
	if f.Password1 == "" {
		f.Errors["password1"] = errRequired
	} else if len(f.Password1) < 6 {
		f.Errors["password1"] = "Пароль должен содержать минимум 6 символов."
	}
	if f.Password2 != f.Password1 {
		f.Errors["password2"] = "Пароли не совпадают."
	}
	return len(f.Errors) == 0
}

// LoginForm authenticates by username and password.
type LoginForm struct {
	Username string
	Password string

	Errors map[string]string
}

func NewLoginForm() *LoginForm {
	return &LoginForm{Errors: map[string]string{}}
}

func (f *LoginForm) Bind(values url.Values) {
	f.Username = strings.TrimSpace(values.Get("username"))
	f.Password = values.Get("password")
}

func (f *LoginForm) Valid() bool {
	if f.Username == "" {
		f.Errors["username"] = errRequired
	}
	if f.Password == "" {
		f.Errors["password"] = errRequired
	}
	return len(f.Errors) == 0
}
