package model

import "github.com/golang-jwt/jwt/v5"

type Role string

const (
	RoleAdmin  Role = "ROLE_ADMIN"
	RoleUser   Role = "ROLE_USER"
	RoleWaiter Role = "ROLE_WAITER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleWaiter:
		return true
	}
	return false
}

// Claims is the payload carried by a credential. It is decoded without
// signature verification and must only drive what the console displays.
type Claims struct {
	AccountType    Role   `json:"accountType,omitempty"`
	FirstName      string `json:"firstName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	jwt.RegisteredClaims
}

func (c Claims) Profile() Profile {
	return Profile{
		AccountType:    c.AccountType,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		ProfilePicture: c.ProfilePicture,
	}
}

// Profile holds the display fields stored next to the credential.
type Profile struct {
	AccountType    Role
	FirstName      string
	LastName       string
	ProfilePicture string
}

func (p Profile) DisplayName() string {
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	default:
		return p.LastName
	}
}

// Session is the per-request view over the stored credential.
// Role is empty when the credential is absent or cannot be decoded.
type Session struct {
	Authenticated bool
	Role          Role
	Profile       Profile
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	AccountType Role   `json:"accountType,omitempty"`
}
