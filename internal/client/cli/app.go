package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/usermgr/internal/client/api"
	"github.com/dmitrijs2005/usermgr/internal/client/config"
	"github.com/dmitrijs2005/usermgr/internal/client/localdb"
	"github.com/dmitrijs2005/usermgr/internal/client/models"
	"github.com/dmitrijs2005/usermgr/internal/client/services"
	"github.com/dmitrijs2005/usermgr/internal/client/session"
	"github.com/dmitrijs2005/usermgr/internal/filex"
	"github.com/dmitrijs2005/usermgr/internal/logging"

	_ "modernc.org/sqlite"
)

// Mode reflects the last known reachability of the backend, shown in the
// prompt and maintained by the status watcher.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// App owns the session, the active view and the services behind the REPL
// commands. All mutations happen on the REPL goroutine; handlers run to
// completion before the next command is read.
type App struct {
	config      *config.Config
	authService services.AuthService
	userService services.UserService

	view        View
	currentUser *models.User
	Mode        Mode

	reader *bufio.Reader
	out    io.Writer
	log    logging.Logger

	// listSeq tags user-list fetches so a response belonging to a superseded
	// fetch is discarded instead of overwriting a newer render.
	listSeq atomic.Uint64
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.New(c.LogLevel)

	dsn := c.DatabaseDSN
	if !filepath.IsAbs(dsn) {
		dir, err := filex.EnsureSubDir("data")
		if err != nil {
			return nil, err
		}
		dsn = filepath.Join(dir, dsn)
	}

	repos, err := localdb.InitDatabase(ctx, dsn)
	if err != nil {
		log.Error(ctx, "error initializing local database", "err", err)
		return nil, err
	}

	apiClient, err := api.NewRESTClient(c.ServerBaseURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	store := session.NewMetadataStore(repos.Metadata, log)
	as := services.NewAuthService(apiClient, store, c.AutoLoginDelay, log)
	us := services.NewUserService(apiClient, repos.UserCache, log)

	return &App{
		config:      c,
		authService: as,
		userService: us,
		Mode:        ModeOnline,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		log:         log,
	}, nil
}

// Run restores the persisted session, picks the initial view and enters the
// REPL. It blocks until the user exits or the scanner hits EOF.
func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)

	printlnFn("Welcome to usermgr (type 'help' for commands)")

	a.restoreSession(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

// restoreSession derives the initial view from the persisted session:
// absent (or unreadable) session lands on the login view.
func (a *App) restoreSession(ctx context.Context) {
	user, err := a.authService.Restore(ctx)
	if err != nil {
		a.log.Warn(ctx, "session restore failed, starting logged out", "err", err)
		a.ShowLogin()
		return
	}
	if user == nil {
		a.ShowLogin()
		return
	}
	a.showAuthenticated(ctx, user)
}

func (a *App) isLoggedIn() bool {
	return a.currentUser != nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

func (a *App) getStatus() string {
	s := ""
	if a.currentUser != nil {
		s = a.currentUser.Username + " "
	}
	return "(" + s + string(a.Mode) + ")"
}

// StartOnlineStatusWatcher periodically probes the server and flips the Mode
// between online and offline. It returns when ctx is cancelled.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.authService.Ping(probeCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
