package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/usermgr/internal/client/models"
)

// renderStats writes the cache-layer diagnostics panel. When the cache is not
// connected only the raw status string is shown; the metric fields are not
// meaningful in that case.
func renderStats(w io.Writer, s *models.RedisStats) {
	if !s.Connected() {
		fmt.Fprintf(w, "Cache status: %s\n", s.Status)
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Status:\t%s\n", s.Status)
	fmt.Fprintf(tw, "Redis version:\t%s\n", s.RedisVersion)
	fmt.Fprintf(tw, "Connected clients:\t%d\n", s.ConnectedClients)
	fmt.Fprintf(tw, "Used memory:\t%s\n", s.UsedMemoryHuman)
	fmt.Fprintf(tw, "Total connections:\t%d\n", s.TotalConnectionsReceived)
	fmt.Fprintf(tw, "Keys:\t%d\n", s.Keyspace)
	tw.Flush()
	fmt.Fprintln(w, "The cache backs user-list caching and failed-login throttling.")
}

// Stats fetches and renders the cache diagnostics (admin only).
func (a *App) Stats(ctx context.Context) error {
	if a.currentUser == nil || !a.currentUser.IsAdmin() {
		printlnFn("Only admins can view cache diagnostics.")
		return nil
	}

	s, err := a.userService.Stats(ctx)
	if err != nil {
		printlnFn(errorMessage(err))
		return err
	}

	renderStats(a.out, s)
	return nil
}
