// Package models defines the client-side data shapes of readtrack: the
// cached session record and the book records returned by the backend.
package models

import "errors"

var ErrIncompleteSession = errors.New("session record must carry token, user id and email")

// Session is the authenticated user's token and identity. It is replaced
// wholesale, never patched.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Validate reports ErrIncompleteSession unless every field is set.
func (s Session) Validate() error {
	if s.Token == "" || s.UserID == "" || s.Email == "" {
		return ErrIncompleteSession
	}
	return nil
}
