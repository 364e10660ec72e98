// Package domain holds the value types shared across modules.
package domain

// Identity is the authenticated caller resolved from a verified token.
// It is immutable for the lifetime of the request.
type Identity struct {
	SubjectID   string
	Email       string
	DisplayName string
}
