// Package common contains constants shared by the readtrack client layers.
package common

const (
	// AuthorizationHeader carries the session token on authenticated requests.
	AuthorizationHeader = "Authorization"

	// BearerPrefix precedes the token in AuthorizationHeader.
	BearerPrefix = "Bearer "

	// RequestIDHeader correlates a client request with backend and local logs.
	RequestIDHeader = "X-Request-ID"

	// SessionKey is the local store key holding the serialized session record.
	SessionKey = "userData"
)
