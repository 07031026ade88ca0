package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/common"
)

// Indirections over the interactive input helpers, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getMultiline  = GetMultiline
	getPassword   = GetPassword
	confirm       = Confirm
)

// Register prompts for name, email and password, creates the account and
// signs the user in. The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, name, email, password); err != nil {
		return err
	}

	a.userEmail = email
	fmt.Fprintln(a.out, "Registration successful")
	return nil
}

// Login prompts for credentials and caches the issued token. The password
// is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, password); err != nil {
		return err
	}

	a.userEmail = email
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout forgets the cached session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.userEmail = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
