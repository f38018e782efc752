package lfclient_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/lostandfound/lostandfound/internal/database"
	"github.com/lostandfound/lostandfound/internal/ledger"
	"github.com/lostandfound/lostandfound/internal/server"
	"github.com/lostandfound/lostandfound/pkg/lfclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) lfclient.Client {
	t.Helper()

	db, err := database.StormOpen(filepath.Join(t.TempDir(), "lfclient.db"), "")
	require.NoError(t, err)

	ts := httptest.NewServer(server.EchoEngine(server.Controller{
		Version:  "test",
		Database: db,
		Ledger:   ledger.New(db, ledger.FoundItemAward),
	}))
	t.Cleanup(func() {
		ts.Close()
		db.Close()
	})

	client, err := lfclient.NewDefaultClient(ts.URL)
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	_, err := lfclient.NewDefaultClient("not an url")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	client := setup(t)

	version, err := client.Version()
	assert.NoError(t, err)
	assert.Equal(t, "test", version)
}

func TestReportAndList(t *testing.T) {
	client := setup(t)

	_, err := client.Report(lfclient.Report{Status: lfclient.StatusLost, Category: "Keys"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, err.(*lfclient.Error).StatusCode)
	assert.Equal(t, "invalid-auth", err.(*lfclient.Error).Tag())

	owner, err := client.Register("George", "Abitbol", "owner-token")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, client.Identity())
	assert.True(t, owner.Notifiable)

	lost, err := client.Report(lfclient.Report{
		Status:        lfclient.StatusLost,
		Category:      "Keys",
		SecretDetails: "Red keychain",
		Location:      lfclient.Location{Latitude: 44.8125, Longitude: 20.4612},
	})
	require.NoError(t, err)
	assert.False(t, lost.Awarded)
	assert.Equal(t, "Red keychain", lost.Item.SecretDetails)

	finder, err := client.Register("Pavle", "P", "")
	require.NoError(t, err)

	found, err := client.Report(lfclient.Report{
		Status:        lfclient.StatusFound,
		Category:      "Keys",
		SecretDetails: "red KEYCHAIN",
	})
	require.NoError(t, err)
	assert.True(t, found.Awarded)
	assert.EqualValues(t, 5, found.Points)
	assert.Empty(t, found.PointsError)

	items, err := client.Items(lfclient.Filter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		if item.UserID != finder.ID {
			assert.Empty(t, item.SecretDetails)
		}
	}

	items, err = client.Items(lfclient.Filter{Status: lfclient.StatusLost, Near: &lfclient.Location{Latitude: 44.81, Longitude: 20.46}, Radius: 5000})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, lost.Item.ID, items[0].ID)

	item, err := client.Item(lost.Item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keys", item.Category)
	assert.Empty(t, item.SecretDetails)

	_, err = client.Item("unknown")
	assert.EqualError(t, err, "Item not found.")

	_, err = client.Items(lfclient.Filter{Status: "STOLEN"})
	assert.EqualError(t, err, "Status must be LOST or FOUND.")
}

func TestUsers(t *testing.T) {
	client := setup(t)

	_, err := client.SetNotificationToken("token")
	assert.EqualError(t, err, "no identity defined")

	george, err := client.Register("George", "Abitbol", "")
	require.NoError(t, err)
	assert.False(t, george.Notifiable)

	user, err := client.SetNotificationToken("device-token")
	require.NoError(t, err)
	assert.True(t, user.Notifiable)

	_, err = client.Report(lfclient.Report{Status: lfclient.StatusFound, Category: "Phone"})
	require.NoError(t, err)

	_, err = client.Register("Pavle", "P", "")
	require.NoError(t, err)

	users, err := client.Leaderboard(0)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, george.ID, users[0].ID)
	assert.EqualValues(t, 5, users[0].Points)
	assert.Equal(t, 1, users[0].Rank)

	users, err = client.Leaderboard(1)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	user, err = client.User(george.ID)
	require.NoError(t, err)
	assert.Equal(t, "George", user.FirstName)

	_, err = client.User("unknown")
	assert.EqualError(t, err, "User not found.")
}
