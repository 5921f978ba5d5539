package model

import "errors"

var (
	ErrUserExists         = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrBlankCredentials   = errors.New("username and password must not be blank")
	ErrNoSession          = errors.New("no active session")
)

// UserRecord is one entry of the user directory. The password is kept and
// compared as plaintext: this is a local demo account store, not a
// credential system. A real deployment would replace it with salted
// hashes.
type UserRecord struct {
	Pass    string `json:"pass"`
	Created int64  `json:"created"`
}

// Directory maps username to its record. Usernames are unique and
// case-sensitive.
type Directory map[string]UserRecord

// AuthSession lives in exactly one storage scope: the durable one when
// the user asked to be remembered, the ephemeral one otherwise.
type AuthSession struct {
	User  string `json:"user"`
	At    int64  `json:"at"`
	Token string `json:"token,omitempty"`
}
