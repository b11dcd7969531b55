package quest

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/divebot/divequest/store"
)

// AssignTeamQuest picks a random team quest template at the requested
// difficulty and records it in the active store under a freshly generated ID.
// Player names are taken as-is: they are not checked against the user store
// and may overlap with players holding solo quests.
func (s *Service) AssignTeamQuest(players []string, difficulty int) (string, error) {
	if len(players) == 0 {
		return msgNoPlayersMentioned, nil
	}
	if !validDifficulty(difficulty) {
		return msgDifficultyRange, nil
	}

	candidates, err := s.teamCatalog.ByDifficulty(difficulty)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return fmt.Sprintf("No team quests available for difficulty %d.", difficulty), nil
	}

	chosen := candidates[rand.IntN(len(candidates))]
	// Short IDs read better in chat; a collision among the handful of active
	// quests is accepted as negligible.
	questID := uuid.NewString()[:8]

	tq := store.TeamQuest{
		QuestID: questID,
		Quest:   chosen,
		Players: players,
		Status:  store.TeamQuestInProgress,
	}
	if err := s.teamQuests.Append(tq); err != nil {
		return "", err
	}

	log.Debug("assigned team quest", "id", questID, "quest", chosen.Title, "players", strings.Join(players, ","))
	return teamQuestAssignedMessage(tq), nil
}

// CompleteTeamQuest awards difficulty*100 points to every listed player (a
// player listed twice is awarded twice) and removes the quest from the active
// store. A second completion of the same ID reports not found.
func (s *Service) CompleteTeamQuest(questID string) (string, error) {
	tq, found, err := s.teamQuests.Get(questID)
	if err != nil {
		return "", err
	}
	if !found {
		return fmt.Sprintf("❌ Team quest with ID %s not found.", questID), nil
	}

	points := tq.Quest.Difficulty * pointsPerDifficulty
	rewardText, err := s.AwardPoints(tq.Players, points)
	if err != nil {
		return "", err
	}

	if err := s.teamQuests.Remove(questID); err != nil {
		return "", err
	}

	log.Debug("completed team quest", "id", questID, "points_each", points)
	return fmt.Sprintf("✅ Team quest completed! Quest ID: %s\n\n%s", questID, rewardText), nil
}

// ListActiveTeamQuests renders every currently active team quest.
func (s *Service) ListActiveTeamQuests() (string, error) {
	quests, err := s.teamQuests.All()
	if err != nil {
		return "", err
	}
	if len(quests) == 0 {
		return "No active team quests at the moment.", nil
	}
	return activeTeamQuestsMessage(quests), nil
}
