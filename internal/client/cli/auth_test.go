package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/usermgr/internal/client/models"
	"github.com/dmitrijs2005/usermgr/internal/client/services"
	"github.com/dmitrijs2005/usermgr/internal/logging"
)

// ------------ helpers ------------

// capturePrintln replaces printlnFn and collects every printed line.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimRight(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func stubInputs(t *testing.T, texts []string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(texts) {
			return "", io.EOF
		}
		s := texts[i]
		i++
		return s, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) {
		return append([]byte(nil), password...), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func stubConfirm(t *testing.T, answer bool) *int {
	t.Helper()
	orig := confirmFn
	calls := 0
	confirmFn = func(_ *bufio.Reader, _ string, _ io.Writer) bool {
		calls++
		return answer
	}
	t.Cleanup(func() { confirmFn = orig })
	return &calls
}

func newTestApp(auth services.AuthService, users services.UserService) *App {
	return &App{
		authService: auth,
		userService: users,
		out:         &bytes.Buffer{},
		log:         logging.Nop(),
		view:        ViewLogin,
	}
}

func alice() *models.User {
	return &models.User{ID: 7, Username: "alice", Email: "alice@example.org", Role: models.RoleAdmin}
}

type fakeAuth struct {
	restoreUser *models.User
	restoreErr  error

	loginUser *models.User
	loginErr  error
	loginName string
	loginPass []byte

	regUser  *models.User
	regErr   error
	regName  string
	regEmail string

	logoutCalled bool
	logoutErr    error
}

func (f *fakeAuth) Restore(context.Context) (*models.User, error) {
	return f.restoreUser, f.restoreErr
}
func (f *fakeAuth) Login(_ context.Context, username string, password []byte) (*models.User, error) {
	f.loginName = username
	f.loginPass = append([]byte(nil), password...)
	return f.loginUser, f.loginErr
}
func (f *fakeAuth) Register(_ context.Context, username, email string, _ []byte) (*models.User, error) {
	f.regName, f.regEmail = username, email
	return f.regUser, f.regErr
}
func (f *fakeAuth) RegisterAndLogin(_ context.Context, username, email string, _ []byte) (*models.User, error) {
	f.regName, f.regEmail = username, email
	return f.regUser, f.regErr
}
func (f *fakeAuth) Logout(context.Context) error { f.logoutCalled = true; return f.logoutErr }
func (f *fakeAuth) Ping(context.Context) error   { return nil }
func (f *fakeAuth) Close(context.Context) error  { return nil }

// ------------ tests ------------

func TestLogin_Success(t *testing.T) {
	capturePrintln(t)
	stubInputs(t, []string{"alice"}, []byte("secret"))

	f := &fakeAuth{loginUser: alice()}
	a := newTestApp(f, &fakeUsers{})

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if f.loginName != "alice" || string(f.loginPass) != "secret" {
		t.Fatalf("credentials mismatch: %q / %q", f.loginName, f.loginPass)
	}
	if a.currentView() != ViewAuthenticated {
		t.Fatalf("expected authenticated view, got %v", a.currentView())
	}
	if a.currentUser == nil || a.currentUser.Username != "alice" {
		t.Fatalf("currentUser not set: %+v", a.currentUser)
	}
}

func TestLogin_Failure_StaysLoggedOut(t *testing.T) {
	capturePrintln(t)
	stubInputs(t, []string{"alice"}, []byte("wrong"))

	f := &fakeAuth{loginErr: errors.New("invalid credentials")}
	a := newTestApp(f, &fakeUsers{})

	if err := a.Login(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if a.currentView() != ViewLogin {
		t.Fatalf("view changed on failed login: %v", a.currentView())
	}
	if a.currentUser != nil {
		t.Fatalf("currentUser set on failed login: %+v", a.currentUser)
	}
}

func TestSignup_Success(t *testing.T) {
	capturePrintln(t)
	stubInputs(t, []string{"bob", "bob@example.org"}, []byte("pw"))

	f := &fakeAuth{regUser: &models.User{ID: 2, Username: "bob", Role: models.RoleUser}}
	a := newTestApp(f, &fakeUsers{})
	a.view = ViewRegister

	if err := a.Signup(context.Background()); err != nil {
		t.Fatalf("Signup err: %v", err)
	}
	if f.regName != "bob" || f.regEmail != "bob@example.org" {
		t.Fatalf("registration fields mismatch: %q / %q", f.regName, f.regEmail)
	}
	if a.currentView() != ViewAuthenticated {
		t.Fatalf("expected authenticated view, got %v", a.currentView())
	}
}

func TestSignup_Rejected_KeepsRegisterView(t *testing.T) {
	capturePrintln(t)
	stubInputs(t, []string{"bob", "bob@example.org"}, []byte("pw"))

	f := &fakeAuth{regErr: errors.New("Username already registered")}
	a := newTestApp(f, &fakeUsers{})
	a.view = ViewRegister

	if err := a.Signup(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if a.currentView() != ViewRegister {
		t.Fatalf("expected register view kept, got %v", a.currentView())
	}
}

func TestSignup_AutoLoginFailed_GoesToLoginView(t *testing.T) {
	capturePrintln(t)
	stubInputs(t, []string{"bob", "bob@example.org"}, []byte("pw"))

	f := &fakeAuth{
		regUser: &models.User{ID: 2, Username: "bob"},
		regErr:  services.ErrAutoLoginFailed,
	}
	a := newTestApp(f, &fakeUsers{})
	a.view = ViewRegister

	if err := a.Signup(context.Background()); err != nil {
		t.Fatalf("auto-login failure must not surface as an error: %v", err)
	}
	if a.currentView() != ViewLogin {
		t.Fatalf("expected login view, got %v", a.currentView())
	}
	if a.currentUser != nil {
		t.Fatalf("must stay logged out after auto-login failure")
	}
}

func TestLogout(t *testing.T) {
	capturePrintln(t)

	f := &fakeAuth{}
	a := newTestApp(f, &fakeUsers{})
	a.view = ViewAuthenticated
	a.currentUser = alice()

	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	if !f.logoutCalled {
		t.Fatal("authService.Logout not called")
	}
	if a.currentView() != ViewLogin || a.currentUser != nil {
		t.Fatalf("expected logged-out login view, got %v / %+v", a.currentView(), a.currentUser)
	}
}

func TestWhoAmI(t *testing.T) {
	lines := capturePrintln(t)

	a := newTestApp(&fakeAuth{}, &fakeUsers{})
	if err := a.WhoAmI(); err != nil {
		t.Fatalf("WhoAmI err: %v", err)
	}

	a.currentUser = alice()
	if err := a.WhoAmI(); err != nil {
		t.Fatalf("WhoAmI err: %v", err)
	}

	if len(*lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(*lines))
	}
	if (*lines)[0] != "Not logged in." {
		t.Fatalf("unexpected logged-out line: %q", (*lines)[0])
	}
	if want := "Logged in as alice (admin), id 7"; (*lines)[1] != want {
		t.Fatalf("got %q, want %q", (*lines)[1], want)
	}
}
