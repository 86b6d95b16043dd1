package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/usermgr/internal/client/models"
)

func TestStats_NonAdminRefused(t *testing.T) {
	lines := capturePrintln(t)

	f := &fakeUsers{stats: &models.RedisStats{Status: models.StatusConnected}}
	a := newTestApp(&fakeAuth{}, f)
	a.currentUser = &models.User{ID: 2, Username: "bob", Role: models.RoleUser}

	require.NoError(t, a.Stats(context.Background()))
	assert.Empty(t, a.out.(*bytes.Buffer).String())
	require.Len(t, *lines, 1)
	assert.Contains(t, (*lines)[0], "Only admins")
}

func TestStats_Connected(t *testing.T) {
	capturePrintln(t)

	f := &fakeUsers{stats: &models.RedisStats{
		Status:                   models.StatusConnected,
		RedisVersion:             "7.2.4",
		ConnectedClients:         3,
		UsedMemoryHuman:          "1.05M",
		TotalConnectionsReceived: 128,
		Keyspace:                 12,
	}}
	a := newTestApp(&fakeAuth{}, f)
	a.currentUser = alice()

	require.NoError(t, a.Stats(context.Background()))

	out := a.out.(*bytes.Buffer).String()
	assert.Contains(t, out, "7.2.4")
	assert.Contains(t, out, "1.05M")
	assert.Contains(t, out, "128")
	assert.Contains(t, out, "throttling")
}

func TestStats_Disconnected_StatusOnly(t *testing.T) {
	capturePrintln(t)

	f := &fakeUsers{stats: &models.RedisStats{Status: "unavailable"}}
	a := newTestApp(&fakeAuth{}, f)
	a.currentUser = alice()

	require.NoError(t, a.Stats(context.Background()))

	out := a.out.(*bytes.Buffer).String()
	assert.Equal(t, "Cache status: unavailable\n", out)
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestStats_FetchFailure(t *testing.T) {
	lines := capturePrintln(t)

	f := &fakeUsers{statsErr: assert.AnError}
	a := newTestApp(&fakeAuth{}, f)
	a.currentUser = alice()

	require.Error(t, a.Stats(context.Background()))
	require.Len(t, *lines, 1)
	assert.Contains(t, (*lines)[0], "Something went wrong")
}
