package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
)

// TeamQuestStore is a whole-file JSON store of currently active team quests
// keyed by their generated quest ID. Same single-writer, full-rewrite contract
// as the user store.
type TeamQuestStore struct {
	path string
}

type teamQuestFile struct {
	TeamQuests []TeamQuest `json:"team_quests"`
}

// NewTeamQuestStore creates a team quest store backed by the JSON file at path.
func NewTeamQuestStore(path string) *TeamQuestStore {
	return &TeamQuestStore{path: path}
}

func (s *TeamQuestStore) load() (*teamQuestFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read team quest store: %w", err)
	}
	var f teamQuestFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse team quest store: %w", err)
	}
	return &f, nil
}

func (s *TeamQuestStore) write(f *teamQuestFile) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode team quest store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write team quest store: %w", err)
	}
	return nil
}

// Get returns the active team quest with the given ID, or found=false.
func (s *TeamQuestStore) Get(questID string) (TeamQuest, bool, error) {
	f, err := s.load()
	if err != nil {
		return TeamQuest{}, false, err
	}
	for _, tq := range f.TeamQuests {
		if tq.QuestID == questID {
			return tq, true, nil
		}
	}
	return TeamQuest{}, false, nil
}

// All returns every active team quest in store order.
func (s *TeamQuestStore) All() ([]TeamQuest, error) {
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	return f.TeamQuests, nil
}

// Append adds a new team quest to the active collection.
func (s *TeamQuestStore) Append(tq TeamQuest) error {
	f, err := s.load()
	if err != nil {
		return err
	}
	f.TeamQuests = append(f.TeamQuests, tq)
	return s.write(f)
}

// Remove drops the team quest with the given ID and rewrites the filtered
// collection. Removing an unknown ID is a no-op rewrite.
func (s *TeamQuestStore) Remove(questID string) error {
	f, err := s.load()
	if err != nil {
		return err
	}
	f.TeamQuests = lo.Filter(f.TeamQuests, func(tq TeamQuest, _ int) bool {
		return tq.QuestID != questID
	})
	return s.write(f)
}
