package session

import (
	"context"
	"log/slog"

	"qrmenu/internal/model"
	"qrmenu/internal/token"
)

// Resolver derives the session of a request from the store. Results are
// never cached: the store may change between two requests.
type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve reports a session as authenticated whenever a credential is
// stored. The role is only set when the credential decodes.
func (r *Resolver) Resolve(ctx context.Context, sid string) (model.Session, error) {
	if sid == "" {
		return model.Session{}, nil
	}

	entry, err := r.store.Get(ctx, sid)
	if err != nil {
		return model.Session{}, err
	}
	if entry.Credential == "" {
		return model.Session{}, nil
	}

	sess := model.Session{Authenticated: true, Profile: entry.Profile}

	claims, err := token.Decode(entry.Credential)
	if err != nil {
		slog.Debug("credential not decodable", "error", err)
		sess.Profile.AccountType = ""
		return sess, nil
	}

	sess.Role = claims.AccountType
	sess.Profile = mergeProfile(entry.Profile, claims.Profile())
	sess.Profile.AccountType = claims.AccountType
	return sess, nil
}

func mergeProfile(stored, fromClaims model.Profile) model.Profile {
	if stored.FirstName == "" {
		stored.FirstName = fromClaims.FirstName
	}
	if stored.LastName == "" {
		stored.LastName = fromClaims.LastName
	}
	if stored.ProfilePicture == "" {
		stored.ProfilePicture = fromClaims.ProfilePicture
	}
	return stored
}
