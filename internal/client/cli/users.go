package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/usermgr/internal/client/api"
	"github.com/dmitrijs2005/usermgr/internal/client/models"
)

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", arg)
	}
	return id, nil
}

// canDelete reports whether the delete affordance is rendered for a row:
// only admins see it, and never on their own account. This is a UI guard;
// the server remains the authority.
func canDelete(viewer *models.User, row *models.User) bool {
	if viewer == nil || !viewer.IsAdmin() {
		return false
	}
	return row.ID != viewer.ID
}

// renderUsers writes the user table. It is a pure function of its inputs, so
// rendering the same list twice produces identical output.
func renderUsers(w io.Writer, viewer *models.User, users []models.User, source string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tROLE\tCREATED\tACTIONS")
	for i := range users {
		u := &users[i]
		actions := ""
		if canDelete(viewer, u) {
			actions = "delete"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			u.ID, u.Username, u.Email, u.Role, u.CreatedLocal(), actions)
	}
	tw.Flush()
	fmt.Fprintf(w, "%d user(s), source: %s\n", len(users), source)
}

func renderUser(w io.Writer, u *models.User) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", u.ID)
	fmt.Fprintf(tw, "Username:\t%s\n", u.Username)
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Role:\t%s\n", u.Role)
	fmt.Fprintf(tw, "Created:\t%s\n", u.CreatedLocal())
	tw.Flush()
}

// List fetches and renders the user directory.
//
// Each fetch takes a sequence number; if another fetch supersedes this one
// before its response is rendered, the stale response is dropped so it cannot
// overwrite a newer list. On failure the previously rendered list is left
// as is and only an error line is printed.
func (a *App) List(ctx context.Context) error {
	seq := a.listSeq.Add(1)

	users, source, err := a.userService.List(ctx)
	if err != nil {
		printlnFn(errorMessage(err))
		return err
	}

	if a.listSeq.Load() != seq {
		a.log.Debug(ctx, "discarding stale user list response", "seq", seq)
		return nil
	}

	renderUsers(a.out, a.currentUser, users, source)
	return nil
}

// Show renders a single user fetched by id.
func (a *App) Show(ctx context.Context, idArg string) error {
	id, err := parseID(idArg)
	if err != nil {
		printlnFn("Usage: show <id>")
		return err
	}

	u, err := a.userService.Get(ctx, id)
	if err != nil {
		printlnFn(errorMessage(err))
		return err
	}

	renderUser(a.out, u)
	return nil
}

// Update edits a user account (admin only). Empty answers leave the
// corresponding field unchanged; at least one field must be given.
func (a *App) Update(ctx context.Context, idArg string) error {
	if a.currentUser == nil || !a.currentUser.IsAdmin() {
		printlnFn("Only admins can update users.")
		return nil
	}

	id, err := parseID(idArg)
	if err != nil {
		printlnFn("Usage: update <id>")
		return err
	}

	email, err := getSimpleText(a.reader, "New email (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "New role, user or admin (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	var upd api.UserUpdate
	if email != "" {
		upd.Email = &email
	}
	if role != "" {
		r := models.Role(role)
		if r != models.RoleUser && r != models.RoleAdmin {
			printlnFn("Role must be 'user' or 'admin'.")
			return nil
		}
		upd.Role = &r
	}
	if upd.Email == nil && upd.Role == nil {
		printlnFn("Nothing to update.")
		return nil
	}

	u, err := a.userService.Update(ctx, id, upd)
	if err != nil {
		printlnFn(errorMessage(err))
		return err
	}

	printlnFn("User updated.")
	renderUser(a.out, u)
	return nil
}

// Delete removes a user account after an interactive confirmation.
//
// The command mirrors the affordance rules of the list: non-admins are
// refused, and the viewer's own account is protected. A declined
// confirmation aborts silently. The list is refreshed only after the server
// confirms the deletion; nothing is removed optimistically.
func (a *App) Delete(ctx context.Context, idArg string) error {
	if a.currentUser == nil || !a.currentUser.IsAdmin() {
		printlnFn("Only admins can delete users.")
		return nil
	}

	id, err := parseID(idArg)
	if err != nil {
		printlnFn("Usage: delete <id>")
		return err
	}

	if id == a.currentUser.ID {
		printlnFn("You cannot delete your own account.")
		return nil
	}

	if !confirmFn(a.reader, fmt.Sprintf("Delete user %d?", id), os.Stdout) {
		return nil
	}

	if err := a.userService.Delete(ctx, id); err != nil {
		printlnFn(errorMessage(err))
		return err
	}

	printlnFn("User deleted.")
	return a.List(ctx)
}
