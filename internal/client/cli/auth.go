package cli

import (
	"context"
	"fmt"

	"github.com/echowave/echowave/internal/client/api"
	"github.com/echowave/echowave/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for account details and creates the account. On success
// the session manager immediately logs in with the same credentials, so a
// successful registration ends authenticated.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email (optional)", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.session.Register(ctx, api.RegisterRequest{
		Username: username,
		Email:    email,
		Password: string(password),
	})
	if !res.OK {
		printlnFn(res.Err)
		return nil
	}
	printlnFn("Welcome to EchoWave,", username+"!")
	return nil
}

// Login prompts for credentials and authenticates via the session manager.
// Failures are reported inline with the server-provided message.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.session.Login(ctx, api.Credentials{Username: username, Password: string(password)})
	if !res.OK {
		printlnFn(res.Err)
		return nil
	}
	printlnFn("Logged in.")
	return nil
}

// Logout ends the session. Local state is always cleared.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}

// Me prints the cached profile of the current user.
func (a *App) Me(ctx context.Context) error {
	user := a.session.CurrentUser()
	if user == nil {
		printlnFn("Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s)\n", user.Username, user.ID)
	if user.DisplayName != "" {
		fmt.Fprintln(a.out, "Display name:", user.DisplayName)
	}
	if user.Bio != "" {
		fmt.Fprintln(a.out, "Bio:", user.Bio)
	}
	return nil
}

// Users lists the profiles visible to the caller.
func (a *App) Users(ctx context.Context) error {
	users, err := a.api.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		printlnFn("No users.")
		return nil
	}
	for _, u := range users {
		fmt.Fprintf(a.out, "%s (%s)\n", u.Username, u.ID)
	}
	return nil
}

// Refresh re-fetches the profile. A failed refresh ends the session.
func (a *App) Refresh(ctx context.Context) error {
	res := a.session.RefreshUser(ctx)
	if !res.OK {
		printlnFn("Refresh failed:", res.Err)
		return nil
	}
	printlnFn("Profile refreshed.")
	return nil
}
