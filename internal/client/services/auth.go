// Package services contains the application services used by the CLI.
// This file defines the authentication service: sign-in, sign-up and
// sign-out on top of the remote API and the session holder.
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/readtrack/internal/client/client"
	"github.com/dmitrijs2005/readtrack/internal/client/models"
	"github.com/dmitrijs2005/readtrack/internal/client/session"
	"github.com/dmitrijs2005/readtrack/internal/logging"
)

var (
	ErrPasswordMismatch   = errors.New("passwords don't match")
	ErrMissingCredentials = errors.New("email and password are required")
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - SignIn: authenticate against the server and hand the record to the holder.
//   - SignUp: create an account; the confirmation is checked locally first.
//   - SignOut: drop the session from memory and from local storage.
//
// A session.ErrPersistence from SignIn or SignOut means the in-memory
// state changed but local storage did not.
type AuthService interface {
	SignIn(ctx context.Context, email string, password []byte) error
	SignUp(ctx context.Context, email string, password, confirm []byte) error
	SignOut(ctx context.Context) error
	Current() (models.Session, bool)
}

type authService struct {
	client client.Client
	holder *session.Holder
	logger logging.Logger
}

func NewAuthService(c client.Client, holder *session.Holder, logger logging.Logger) AuthService {
	return &authService{client: c, holder: holder, logger: logger}
}

func (a *authService) SignIn(ctx context.Context, email string, password []byte) error {
	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return ErrMissingCredentials
	}

	res, err := a.client.Login(ctx, email, password)
	if err != nil {
		a.logger.Warn(ctx, "login failed", "email", email, "error", err)
		return fmt.Errorf("login: %w", err)
	}

	if err := a.holder.SignIn(ctx, res.Session()); err != nil {
		if errors.Is(err, session.ErrPersistence) {
			return err
		}
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

// SignUp sends no request when the confirmation differs from password.
func (a *authService) SignUp(ctx context.Context, email string, password, confirm []byte) error {
	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return ErrMissingCredentials
	}
	if !bytes.Equal(password, confirm) {
		return ErrPasswordMismatch
	}

	if err := a.client.SignUp(ctx, email, password); err != nil {
		a.logger.Warn(ctx, "signup failed", "email", email, "error", err)
		return fmt.Errorf("signup: %w", err)
	}
	a.logger.Info(ctx, "account created", "email", email)
	return nil
}

func (a *authService) SignOut(ctx context.Context) error {
	return a.holder.SignOut(ctx)
}

func (a *authService) Current() (models.Session, bool) {
	return a.holder.Current()
}
