package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserStore(t *testing.T, users []User) *UserStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	s := NewUserStore(path)
	require.NoError(t, s.write(&userFile{Users: users}))
	return s
}

func TestUserStore_Get(t *testing.T) {
	s := newTestUserStore(t, []User{
		{Username: "Alice", Score: 300},
		{Username: "bob", Score: 100},
	})

	u, found, err := s.Get("Alice")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 300, u.Score)

	// usernames are case-sensitive
	_, found, err = s.Get("alice")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUserStore_GetOrCreate(t *testing.T) {
	s := newTestUserStore(t, nil)

	u, err := s.GetOrCreate("Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Username)
	assert.Zero(t, u.Score)
	assert.Nil(t, u.ActiveQuest)

	// a created record is not persisted until Save
	_, found, err := s.Get("Alice")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUserStore_Save(t *testing.T) {
	s := newTestUserStore(t, []User{{Username: "Alice", Score: 100}})

	require.NoError(t, s.Save(User{Username: "Bob", Score: 200}))
	require.NoError(t, s.Save(User{Username: "Alice", Score: 400}))

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 400, all[0].Score)
	assert.Equal(t, "Bob", all[1].Username)
}

func TestUserStore_ActiveQuestRoundTrip(t *testing.T) {
	s := newTestUserStore(t, nil)

	quest := &Quest{Difficulty: 2, Title: "Supply Run", Description: "Deliver the goods."}
	require.NoError(t, s.Save(User{Username: "Alice", ActiveQuest: quest}))

	u, found, err := s.Get("Alice")
	require.NoError(t, err)
	require.True(t, found)
	require.NotNil(t, u.ActiveQuest)
	assert.Equal(t, "Supply Run", u.ActiveQuest.Title)

	// clearing the quest drops the field from the file entirely
	u.ActiveQuest = nil
	require.NoError(t, s.Save(u))
	data, err := os.ReadFile(s.path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "active_quest")
}

func TestUserStore_MissingFile(t *testing.T) {
	s := NewUserStore(filepath.Join(t.TempDir(), "missing.json"))

	_, _, err := s.Get("Alice")
	assert.Error(t, err)
}
