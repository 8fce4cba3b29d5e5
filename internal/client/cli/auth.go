package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/portal/internal/client/models"
	"github.com/dmitrijs2005/portal/internal/client/profile"
	"github.com/dmitrijs2005/portal/internal/client/router"
	"github.com/dmitrijs2005/portal/internal/common"
)

// getSimpleText and getTextWithDefault are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText      = GetSimpleText
	getTextWithDefault = GetTextWithDefault
)

// formFields lists the profile form in display order.
var formFields = []string{"username", "jobTitle"}

// Login opens the login view. When a profile already exists the entry
// guard sends the user to the catalog instead.
func (a *App) Login(ctx context.Context) error {
	a.nav.Push(router.PathAuth)
	return a.render(ctx)
}

// Logout clears the profile and re-renders; protected views then redirect
// to the login view. State tied to the user is dropped by sessionChanged.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return a.render(ctx)
}

// Profile opens the profile view.
func (a *App) Profile(ctx context.Context) error {
	a.nav.Push(router.PathProfile)
	return a.render(ctx)
}

// Edit updates the stored profile. Empty answers keep the current value.
func (a *App) Edit(ctx context.Context) error {
	current := a.session.Profile()
	if current == nil {
		fmt.Fprintln(a.out, "Please log in first.")
		return nil
	}

	fmt.Fprintln(a.out, "Edit Profile")
	username, jobTitle, err := a.profileForm(current)
	if err != nil {
		return err
	}

	if !a.session.Update(ctx, username, jobTitle) {
		fmt.Fprintln(a.out, "Could not save your profile. Please try again.")
		return nil
	}
	fmt.Fprintln(a.out, "Profile updated.")

	if a.nav.Route().View == router.ViewProfile {
		return a.render(ctx)
	}
	return nil
}

// renderAuth is the login view: a banner and the profile form. A saved
// profile moves the user to the catalog.
func (a *App) renderAuth(ctx context.Context) error {
	fmt.Fprintf(a.out, "Welcome to %s\n", common.AppName)
	fmt.Fprintln(a.out, "Please enter your details to continue")
	fmt.Fprintln(a.out, "Get Started")

	username, jobTitle, err := a.profileForm(nil)
	if err != nil {
		return err
	}

	if !a.session.Login(ctx, username, jobTitle) {
		fmt.Fprintln(a.out, "Could not save your profile. Please try again.")
		return nil
	}

	a.nav.Push(router.PathInformation)
	return nil
}

// profileForm asks for both fields until they validate. current, when not
// nil, supplies defaults.
func (a *App) profileForm(current *models.Profile) (string, string, error) {
	for {
		var username, jobTitle string
		var err error

		if current != nil {
			username, err = getTextWithDefault(a.reader, "Username", current.Username, a.out)
		} else {
			username, err = getSimpleText(a.reader, "Username", a.out)
		}
		if err != nil {
			return "", "", err
		}

		if current != nil {
			jobTitle, err = getTextWithDefault(a.reader, "Job Title", current.JobTitle, a.out)
		} else {
			jobTitle, err = getSimpleText(a.reader, "Job Title", a.out)
		}
		if err != nil {
			return "", "", err
		}

		err = profile.Validate(username, jobTitle)
		if err == nil {
			return strings.TrimSpace(username), strings.TrimSpace(jobTitle), nil
		}

		var fe profile.FieldErrors
		if !errors.As(err, &fe) {
			return "", "", err
		}
		for _, f := range formFields {
			if msg, ok := fe[f]; ok {
				fmt.Fprintf(a.out, "  %s\n", msg)
			}
		}
	}
}
