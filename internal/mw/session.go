package mw

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"qrmenu/internal/guard"
	"qrmenu/internal/model"
	"qrmenu/internal/session"
)

type contextKey string

const sessionCtxKey contextKey = "session"

const SessionCookie = "qrmenu_sid"

// RequestSession is what the session middleware attaches to a request.
type RequestSession struct {
	ID string
	model.Session

	opts SessionOptions
}

type SessionOptions struct {
	Secure bool
	MaxAge time.Duration
}

// Session resolves the browser session of every request. A new session id
// cookie is issued when the request carries none.
func Session(resolver *session.Resolver, opts SessionOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := sessionID(r)
			if sid == "" {
				sid = uuid.NewString()
				setCookie(w, sid, opts)
			}

			sess, err := resolver.Resolve(r.Context(), sid)
			if err != nil {
				slog.Error("failed to resolve session", "error", err)
				sess = model.Session{}
			}

			ctx := context.WithValue(r.Context(), sessionCtxKey, RequestSession{ID: sid, Session: sess, opts: opts})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SetSessionID points the browser at sid, with the cookie options of the
// session middleware that handled r.
func SetSessionID(w http.ResponseWriter, r *http.Request, sid string) {
	setCookie(w, sid, FromContext(r.Context()).opts)
}

func setCookie(w http.ResponseWriter, sid string, opts SessionOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(opts.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func sessionID(r *http.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return ""
	}
	return c.Value
}

func FromContext(ctx context.Context) RequestSession {
	rs, _ := ctx.Value(sessionCtxKey).(RequestSession)
	return rs
}

// RequireRole redirects to the public fallback before the protected handler
// runs unless the session holds exactly role.
func RequireRole(role model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !guard.CanAccess(role, FromContext(r.Context()).Session) {
				http.Redirect(w, r, guard.Fallback, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
