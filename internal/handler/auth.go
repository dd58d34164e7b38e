package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"qrmenu/internal/guard"
	"qrmenu/internal/model"
	"qrmenu/internal/mw"
	"qrmenu/internal/service"
	"qrmenu/internal/session"
	"qrmenu/internal/token"
)

type AccountService interface {
	Login(ctx context.Context, creds model.Credentials) (string, error)
	Register(ctx context.Context, reg model.Registration) (string, error)
}

// SessionForgetter drops per-session state kept outside the store.
type SessionForgetter interface {
	Forget(sid string)
}

func HomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var dashboard string
		if rs := mw.FromContext(r.Context()); rs.Authenticated && rs.Role != "" {
			if v := guard.ViewFor(rs.Role); v != guard.Fallback {
				dashboard = v
			}
		}
		render(w, r, "home", http.StatusOK, page{Title: "Home", Data: dashboard})
	}
}

func LoginFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, "login", http.StatusOK, page{Title: "Log in"})
	}
}

func LoginHandler(accounts AccountService, store session.Store, forget SessionForgetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds, form := credentialsForm(r)

		if err := validateCredentials(creds); err != nil {
			renderValidation(w, r, "login", "Log in", form, err)
			return
		}

		tok, err := accounts.Login(r.Context(), creds)
		if err != nil {
			code, msg := http.StatusBadGateway, "Login failed. Please try again later."
			if service.IsStatus(err, http.StatusUnauthorized) || service.IsStatus(err, http.StatusBadRequest) || service.IsStatus(err, http.StatusNotFound) {
				code, msg = http.StatusUnauthorized, "Invalid email or password."
			} else {
				slog.Error("login failed", "error", err)
			}
			render(w, r, "login", code, page{Title: "Log in", Flash: msg, Form: form})
			return
		}

		startSession(w, r, store, forget, tok)
	}
}

func RegisterFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, "register", http.StatusOK, page{Title: "Register"})
	}
}

func RegisterHandler(accounts AccountService, store session.Store, forget SessionForgetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reg, form := registrationForm(r)

		if err := validateRegistration(reg); err != nil {
			renderValidation(w, r, "register", "Register", form, err)
			return
		}

		tok, err := accounts.Register(r.Context(), reg)
		if err != nil {
			code, msg := http.StatusBadGateway, "Registration failed. Please try again later."
			switch {
			case service.IsStatus(err, http.StatusConflict):
				code, msg = http.StatusConflict, "An account with this email already exists."
			case service.IsStatus(err, http.StatusBadRequest):
				code, msg = http.StatusUnprocessableEntity, "The registration details were rejected."
			default:
				slog.Error("registration failed", "error", err)
			}
			render(w, r, "register", code, page{Title: "Register", Flash: msg, Form: form})
			return
		}

		startSession(w, r, store, forget, tok)
	}
}

// startSession stores the credential under a freshly issued session id and
// sends the browser to its role view. The pre-login id is discarded.
func startSession(w http.ResponseWriter, r *http.Request, store session.Store, forget SessionForgetter, tok string) {
	oldSID := mw.FromContext(r.Context()).ID

	var (
		profile model.Profile
		role    model.Role
	)
	if claims, err := token.Decode(tok); err != nil {
		slog.Warn("issued credential is not decodable", "error", err)
	} else {
		profile = claims.Profile()
		role = claims.AccountType
	}

	sid := uuid.NewString()
	if err := store.Set(r.Context(), sid, tok, profile); err != nil {
		slog.Error("failed to store session", "error", err)
		renderError(w, r, http.StatusInternalServerError, "Could not start your session. Please try again.")
		return
	}
	mw.SetSessionID(w, r, sid)

	if oldSID != "" {
		if err := store.Clear(r.Context(), oldSID); err != nil {
			slog.Warn("failed to clear previous session", "error", err)
		}
		forget.Forget(oldSID)
	}

	http.Redirect(w, r, guard.ViewFor(role), http.StatusSeeOther)
}

func LogoutHandler(store session.Store, forget SessionForgetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := mw.FromContext(r.Context()).ID

		if err := store.Clear(r.Context(), sid); err != nil {
			slog.Error("failed to clear session", "error", err)
			renderError(w, r, http.StatusInternalServerError, "Could not log you out. Please try again.")
			return
		}
		forget.Forget(sid)

		http.Redirect(w, r, guard.Fallback, http.StatusSeeOther)
	}
}

func renderValidation(w http.ResponseWriter, r *http.Request, name, title string, form map[string]string, err error) {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		renderError(w, r, http.StatusBadRequest, "Invalid form.")
		return
	}
	render(w, r, name, http.StatusUnprocessableEntity, page{Title: title, Form: form, Errors: ve.Fields})
}
