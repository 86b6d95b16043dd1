package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewString(t *testing.T) {
	assert.Equal(t, "login", ViewLogin.String())
	assert.Equal(t, "register", ViewRegister.String())
	assert.Equal(t, "authenticated", ViewAuthenticated.String())
	assert.Equal(t, "unknown", View(99).String())
}

func TestShowLogin_ClearsUser(t *testing.T) {
	capturePrintln(t)

	a := newTestApp(&fakeAuth{}, &fakeUsers{})
	a.view = ViewAuthenticated
	a.currentUser = alice()

	a.ShowLogin()

	assert.Equal(t, ViewLogin, a.currentView())
	assert.Nil(t, a.currentUser)
}

func TestShowRegister_FromLogin(t *testing.T) {
	capturePrintln(t)

	a := newTestApp(&fakeAuth{}, &fakeUsers{})
	a.ShowRegister()

	assert.Equal(t, ViewRegister, a.currentView())
	assert.Nil(t, a.currentUser)
}

func TestShowAuthenticated_TriggersListFetch(t *testing.T) {
	capturePrintln(t)

	f := &fakeUsers{listUsers: sampleUsers(), listSource: "cache"}
	a := newTestApp(&fakeAuth{}, f)

	a.showAuthenticated(context.Background(), alice())

	assert.Equal(t, ViewAuthenticated, a.currentView())
	assert.Equal(t, "alice", a.currentUser.Username)
	assert.Equal(t, 1, f.listCalls)
}

func TestShowAuthenticated_AdminHint(t *testing.T) {
	lines := capturePrintln(t)

	a := newTestApp(&fakeAuth{}, &fakeUsers{})
	a.showAuthenticated(context.Background(), alice())

	found := false
	for _, l := range *lines {
		if l == "Admin panel available: 'stats' shows cache-layer diagnostics." {
			found = true
		}
	}
	assert.True(t, found, "admin hint missing: %v", *lines)
}

func TestRestoreSession_InitialView(t *testing.T) {
	capturePrintln(t)

	tests := []struct {
		name string
		auth *fakeAuth
		want View
	}{
		{"absent session", &fakeAuth{}, ViewLogin},
		{"restore error", &fakeAuth{restoreErr: assert.AnError}, ViewLogin},
		{"present session", &fakeAuth{restoreUser: alice()}, ViewAuthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(tt.auth, &fakeUsers{})
			a.restoreSession(context.Background())
			assert.Equal(t, tt.want, a.currentView())
		})
	}
}
