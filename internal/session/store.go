// Package session keeps the credential of each browser session and resolves
// it into a model.Session on every request.
package session

import (
	"context"

	"qrmenu/internal/model"
)

// Entry keys. Every field is stored as an independent entry.
const (
	KeyToken          = "token"
	KeyAccountType    = "accountType"
	KeyFirstName      = "firstName"
	KeyLastName       = "lastName"
	KeyProfilePicture = "profilePicture"
)

var entryKeys = []string{KeyToken, KeyAccountType, KeyFirstName, KeyLastName, KeyProfilePicture}

type Entry struct {
	Credential string
	Profile    model.Profile
}

// Store persists credentials by browser session id. It never checks expiry.
// Get returns a zero Entry when nothing is stored. Clear removes every entry
// of the session at once.
type Store interface {
	Get(ctx context.Context, sid string) (Entry, error)
	Set(ctx context.Context, sid, credential string, profile model.Profile) error
	Clear(ctx context.Context, sid string) error
}

func toFields(credential string, p model.Profile) map[string]string {
	return map[string]string{
		KeyToken:          credential,
		KeyAccountType:    string(p.AccountType),
		KeyFirstName:      p.FirstName,
		KeyLastName:       p.LastName,
		KeyProfilePicture: p.ProfilePicture,
	}
}

func fromFields(fields map[string]string) Entry {
	return Entry{
		Credential: fields[KeyToken],
		Profile: model.Profile{
			AccountType:    model.Role(fields[KeyAccountType]),
			FirstName:      fields[KeyFirstName],
			LastName:       fields[KeyLastName],
			ProfilePicture: fields[KeyProfilePicture],
		},
	}
}
