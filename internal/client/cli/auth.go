package cli

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/readtrack/internal/client/client"
	"github.com/dmitrijs2005/readtrack/internal/client/services"
	"github.com/dmitrijs2005/readtrack/internal/client/session"
	"github.com/dmitrijs2005/readtrack/internal/common"
)

// Register prompts for an email, a password and its confirmation and
// creates the account. It does not sign in; the user logs in afterwards.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if err := a.auth.SignUp(ctx, email, password, confirm); err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordMismatch):
			a.println(notice("Passwords don't match"))
		case errors.Is(err, services.ErrMissingCredentials):
			a.println(notice("Email and password are required"))
		default:
			a.println(notice(client.MessageOr(err, "Signup failed")))
		}
		return err
	}

	a.println(success("Account created. You can now log in."))
	return nil
}

// Login prompts for credentials and signs in. The greeting is printed by
// the navigation shell once the session holder changes.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.SignIn(ctx, email, password); err != nil {
		switch {
		case errors.Is(err, session.ErrPersistence):
			a.println(notice("Signed in, but the session could not be saved; you will need to log in again next time."))
			return nil
		case errors.Is(err, services.ErrMissingCredentials):
			a.println(notice("Email and password are required"))
		default:
			a.println(notice(client.MessageOr(err, "Login failed")))
		}
		return err
	}
	return nil
}

// Logout clears the session. A storage failure is reported but the
// session is gone from memory either way.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.SignOut(ctx); err != nil {
		a.println(notice("Signed out, but the stored session could not be removed."))
		return err
	}
	return nil
}

// Profile prints who is signed in and what the token says about itself.
func (a *App) Profile(ctx context.Context) error {
	cur, ok := a.auth.Current()
	if !ok {
		a.println("Not signed in.")
		return services.ErrNotSignedIn
	}

	a.println(heading("Profile"))
	a.println("Email:   " + cur.Email)
	a.println("User ID: " + cur.UserID)

	if info, err := session.InspectToken(cur.Token); err == nil && !info.ExpiresAt.IsZero() {
		line := "Token expires: " + info.ExpiresAt.Local().Format(time.RFC1123)
		if info.Expired(a.now()) {
			line += " " + badge("expired")
		}
		a.println(line)
	} else {
		a.println("Token expires: " + muted("unknown"))
	}

	if a.times != nil {
		at, ok, err := a.times.SavedAt(ctx)
		switch {
		case err != nil:
			a.logger.Warn(ctx, "reading session time failed", "error", err)
		case ok:
			a.println("Signed in since: " + at.Local().Format(time.RFC1123))
		}
	}

	a.println(muted("Type 'logout' to sign out."))
	return nil
}
