// Package user implements local account registration and login, issuing
// identity tokens on success. It stands in for the original deployment's
// external identity provider.
package user

import "time"

// User is a registered account. PasswordHash never leaves this package.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}

// AuthResult is returned from register/login: the public profile plus a
// freshly issued token.
type AuthResult struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Token       string `json:"token"`
}
