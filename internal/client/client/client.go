package client

import (
	"context"

	"github.com/dmitrijs2005/readtrack/internal/client/models"
)

// LoginResult is the backend's answer to a successful sign-in.
type LoginResult struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// Session converts the result into the record cached by the session holder.
func (r LoginResult) Session() models.Session {
	return models.Session{Token: r.Token, UserID: r.User.ID, Email: r.User.Email}
}

// Client is the remote reading-tracker API. Authenticated calls take the
// token explicitly; implementations never cache credentials.
type Client interface {
	Login(ctx context.Context, email string, password []byte) (LoginResult, error)
	SignUp(ctx context.Context, email string, password []byte) error
	SearchTitle(ctx context.Context, query string) ([]models.BookSummary, error)
	LookupISBN(ctx context.Context, isbn string) (models.BookDetails, error)
	BookDetails(ctx context.Context, workID string) (models.BookDetails, error)
	MyBooks(ctx context.Context, token string) ([]models.LibraryEntry, error)
	AddBook(ctx context.Context, token string, workID string, status models.Status) error
}
