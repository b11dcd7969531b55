package quest

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/divebot/divequest/config"
	"github.com/divebot/divequest/store"
)

// Service is the quest and scoring state machine. It owns the user store, the
// active team quest store and both template catalogs, and turns every
// operation into formatted text for the chat dispatcher.
//
// All operations are synchronous read-modify-write against the store files.
// Domain outcomes (validation failures, missing quests, empty catalogs) come
// back as user-facing text; only store I/O faults are returned as errors.
type Service struct {
	users       *store.UserStore
	teamQuests  *store.TeamQuestStore
	catalog     *store.QuestCatalog
	teamCatalog *store.TeamQuestCatalog
}

// New creates a new Service instance from the configured store paths.
func New(cfg *config.Config) *Service {
	return &Service{
		users:       store.NewUserStore(cfg.UserFile()),
		teamQuests:  store.NewTeamQuestStore(cfg.TeamQuestFile()),
		catalog:     store.NewQuestCatalog(cfg.QuestCatalog),
		teamCatalog: store.NewTeamQuestCatalog(cfg.TeamQuestCatalog),
	}
}

func validDifficulty(difficulty int) bool {
	return difficulty >= 1 && difficulty <= 3
}

// AssignQuest picks a random solo quest template at the requested difficulty
// and attaches a snapshot of it to the user. A user with an active quest is
// rejected without mutation.
func (s *Service) AssignQuest(username string, difficulty int) (string, error) {
	if !validDifficulty(difficulty) {
		return msgDifficultyRange, nil
	}

	user, err := s.users.GetOrCreate(username)
	if err != nil {
		return "", err
	}
	if user.ActiveQuest != nil {
		return questAlreadyActiveMessage(username, user.ActiveQuest.Title), nil
	}

	candidates, err := s.catalog.ByDifficulty(difficulty)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return msgNoQuestsAvailable, nil
	}

	chosen := candidates[rand.IntN(len(candidates))]
	user.ActiveQuest = &chosen
	if err := s.users.Save(user); err != nil {
		return "", err
	}

	log.Debug("assigned quest", "user", username, "quest", chosen.Title, "difficulty", chosen.Difficulty)
	return questAssignedMessage(username, chosen), nil
}

// CompleteQuest clears the user's active quest and awards difficulty*100
// points through the shared scoring path.
func (s *Service) CompleteQuest(username string) (string, error) {
	user, err := s.users.GetOrCreate(username)
	if err != nil {
		return "", err
	}
	if user.ActiveQuest == nil {
		return fmt.Sprintf("No active quest to complete for %s.", username), nil
	}

	points := user.ActiveQuest.Difficulty * pointsPerDifficulty
	user.ActiveQuest = nil
	if err := s.users.Save(user); err != nil {
		return "", err
	}

	rewardText, err := s.AwardPoints([]string{username}, points)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Quest completed for %s.\n%s", username, rewardText), nil
}

// AbandonQuest clears the user's active quest without awarding any points.
func (s *Service) AbandonQuest(username string) (string, error) {
	user, err := s.users.GetOrCreate(username)
	if err != nil {
		return "", err
	}
	if user.ActiveQuest == nil {
		return fmt.Sprintf("No active quest to abandon for %s.", username), nil
	}

	title := user.ActiveQuest.Title
	user.ActiveQuest = nil
	if err := s.users.Save(user); err != nil {
		return "", err
	}

	log.Debug("abandoned quest", "user", username, "quest", title)
	return fmt.Sprintf("Quest '%s' abandoned, %s. Better luck next time, helldiver!", title, username), nil
}

// UserStats renders the current score of a single user. Unknown users get a
// "no stats" message rather than an implicit record.
func (s *Service) UserStats(username string) (string, error) {
	user, found, err := s.users.Get(username)
	if err != nil {
		return "", err
	}
	if !found {
		return fmt.Sprintf("No stats found for %s.", username), nil
	}
	return userStatsMessage(user), nil
}
