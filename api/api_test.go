package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/divebot/divequest/config"
	"github.com/divebot/divequest/notify"
	"github.com/divebot/divequest/quest"
	"github.com/divebot/divequest/store"
)

func newTestServer(t *testing.T, sender notify.Sender) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	cfg := &config.Config{
		Listen:           "127.0.0.1:0",
		DataDir:          dir,
		QuestCatalog:     filepath.Join(dir, "quest_list.json"),
		TeamQuestCatalog: filepath.Join(dir, "team_quest_list.json"),
	}

	writeJSON(t, cfg.UserFile(), map[string]any{"users": []any{}})
	writeJSON(t, cfg.TeamQuestFile(), map[string]any{"team_quests": []any{}})
	writeJSON(t, cfg.QuestCatalog, map[string]any{"quests": []store.Quest{
		{Difficulty: 1, Title: "Patrol Duty", Description: "Walk the beat."},
	}})
	writeJSON(t, cfg.TeamQuestCatalog, map[string]any{"team_quests": []store.Quest{
		{Difficulty: 1, Title: "Squad Drill", Description: "Drill together."},
	}})

	if sender == nil {
		sender = notify.Noop{}
	}
	return New(cfg, quest.New(cfg), sender, false).Handler()
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestHealth(t *testing.T) {
	router := newTestServer(t, nil)

	w, resp := doRequest(t, router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", resp["status"])
}

func TestAssignQuest_DefaultDifficulty(t *testing.T) {
	router := newTestServer(t, nil)

	// difficulty omitted defaults to 1
	w, resp := doRequest(t, router, http.MethodPost, "/api/quests/assign", `{"username":"Alice"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, resp["text"], "NEW QUEST ASSIGNED")
	assert.Contains(t, resp["text"], "Patrol Duty")
}

func TestAssignQuest_InvalidDifficulty(t *testing.T) {
	router := newTestServer(t, nil)

	w, resp := doRequest(t, router, http.MethodPost, "/api/quests/assign", `{"username":"Alice","difficulty":4}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Difficulty must be between 1 and 3.", resp["text"])
}

func TestAssignQuest_MissingUsername(t *testing.T) {
	router := newTestServer(t, nil)

	w, _ := doRequest(t, router, http.MethodPost, "/api/quests/assign", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompleteQuestFlow(t *testing.T) {
	router := newTestServer(t, nil)

	_, _ = doRequest(t, router, http.MethodPost, "/api/quests/assign", `{"username":"Alice"}`)
	w, resp := doRequest(t, router, http.MethodPost, "/api/quests/complete", `{"username":"Alice"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, resp["text"], "+100 points")

	w, resp = doRequest(t, router, http.MethodGet, "/api/users/Alice/stats", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, resp["text"], "**Total Score:** 100")
}

func TestAbandonQuest(t *testing.T) {
	router := newTestServer(t, nil)

	_, _ = doRequest(t, router, http.MethodPost, "/api/quests/assign", `{"username":"Alice"}`)
	w, resp := doRequest(t, router, http.MethodPost, "/api/quests/abandon", `{"username":"Alice"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, resp["text"], "abandoned")

	// no points awarded
	_, resp = doRequest(t, router, http.MethodGet, "/api/users/Alice/stats", "")
	assert.Contains(t, resp["text"], "**Total Score:** 0")
}

func TestUserStats_Unknown(t *testing.T) {
	router := newTestServer(t, nil)

	w, resp := doRequest(t, router, http.MethodGet, "/api/users/Alice/stats", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No stats found for Alice.", resp["text"])
}

func TestLeaderboard_Empty(t *testing.T) {
	router := newTestServer(t, nil)

	w, resp := doRequest(t, router, http.MethodGet, "/api/leaderboard", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No users found on the leaderboard yet.", resp["text"])
}

func TestTeamQuestFlow(t *testing.T) {
	router := newTestServer(t, nil)

	w, resp := doRequest(t, router, http.MethodPost, "/api/team-quests/assign", `{"players":["Bob","Carol"],"difficulty":1}`)
	assert.Equal(t, http.StatusOK, w.Code)
	text := resp["text"].(string)
	assert.Contains(t, text, "TEAM QUEST ASSIGNED")

	// pull the generated ID from the active list
	_, resp = doRequest(t, router, http.MethodGet, "/api/team-quests", "")
	listText := resp["text"].(string)
	idx := strings.Index(listText, "**Quest ID:** ")
	require.GreaterOrEqual(t, idx, 0)
	questID := listText[idx+len("**Quest ID:** ") : idx+len("**Quest ID:** ")+8]

	w, resp = doRequest(t, router, http.MethodPost, "/api/team-quests/"+questID+"/complete", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, resp["text"], "Team quest completed!")

	// both players scored, the quest is gone
	_, resp = doRequest(t, router, http.MethodGet, "/api/users/Bob/stats", "")
	assert.Contains(t, resp["text"], "**Total Score:** 100")
	w, resp = doRequest(t, router, http.MethodPost, "/api/team-quests/"+questID+"/complete", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, resp["text"], "not found")
}

func TestAssignTeamQuest_NoPlayers(t *testing.T) {
	router := newTestServer(t, nil)

	w, resp := doRequest(t, router, http.MethodPost, "/api/team-quests/assign", `{"players":[]}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Mention at least one player for a team quest.", resp["text"])
}

func TestDirectMessage_RelayDisabled(t *testing.T) {
	router := newTestServer(t, notify.Noop{})

	w, resp := doRequest(t, router, http.MethodPost, "/api/dm", `{"username":"Alice","text":"hi"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp["delivered"])
}

type stubSender struct {
	err error
}

func (s stubSender) SendDirectMessage(_ context.Context, _, _ string) error { return s.err }
func (s stubSender) PostToChannel(_ context.Context, _, _ string) error     { return s.err }

func TestDirectMessage_Delivered(t *testing.T) {
	router := newTestServer(t, stubSender{})

	w, resp := doRequest(t, router, http.MethodPost, "/api/dm", `{"username":"Alice","text":"hi"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["delivered"])
}

func TestDirectMessage_Forbidden(t *testing.T) {
	router := newTestServer(t, stubSender{err: notify.ErrForbidden})

	w, resp := doRequest(t, router, http.MethodPost, "/api/dm", `{"username":"Alice","text":"hi"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp["delivered"])
	assert.Contains(t, resp["text"], "Could not deliver")
}

func TestBroadcast_CountsFailures(t *testing.T) {
	router := newTestServer(t, notify.Noop{})

	w, resp := doRequest(t, router, http.MethodPost, "/api/dm/broadcast", `{"usernames":["Alice","Bob"],"text":"squad up"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), resp["delivered"])
	assert.Equal(t, float64(2), resp["failed"])
}

func TestBroadcast_Delivered(t *testing.T) {
	router := newTestServer(t, stubSender{})

	w, resp := doRequest(t, router, http.MethodPost, "/api/dm/broadcast", `{"usernames":["Alice","Bob","Carol"],"text":"squad up"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), resp["delivered"])
	assert.Equal(t, float64(0), resp["failed"])
}

func TestHelp(t *testing.T) {
	router := newTestServer(t, nil)

	w, resp := doRequest(t, router, http.MethodGet, "/api/help", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, resp["text"], "AVAILABLE COMMANDS")
}
