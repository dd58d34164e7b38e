package handler

import (
	"net/http"
	"net/mail"
	"sort"
	"strings"

	"qrmenu/internal/model"
)

// ValidationError lists the form fields that block a submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return "invalid form: " + strings.Join(names, ", ")
}

type fieldChecker map[string]string

func (f fieldChecker) required(name, value, msg string) {
	if strings.TrimSpace(value) == "" {
		f[name] = msg
	}
}

func (f fieldChecker) email(name, value string) {
	if _, ok := f[name]; ok {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		f[name] = "Enter a valid email address."
	}
}

func (f fieldChecker) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

func credentialsForm(r *http.Request) (model.Credentials, map[string]string) {
	c := model.Credentials{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	return c, map[string]string{"email": c.Email}
}

func validateCredentials(c model.Credentials) error {
	f := fieldChecker{}
	f.required("email", c.Email, "Email is required.")
	f.required("password", c.Password, "Password is required.")
	return f.err()
}

func registrationForm(r *http.Request) (model.Registration, map[string]string) {
	reg := model.Registration{
		FirstName: strings.TrimSpace(r.PostFormValue("firstName")),
		LastName:  strings.TrimSpace(r.PostFormValue("lastName")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		Password:  r.PostFormValue("password"),
	}
	return reg, map[string]string{
		"firstName": reg.FirstName,
		"lastName":  reg.LastName,
		"email":     reg.Email,
	}
}

func validateRegistration(reg model.Registration) error {
	f := fieldChecker{}
	f.required("firstName", reg.FirstName, "First name is required.")
	f.required("lastName", reg.LastName, "Last name is required.")
	f.required("email", reg.Email, "Email is required.")
	f.email("email", reg.Email)
	f.required("password", reg.Password, "Password is required.")
	return f.err()
}
