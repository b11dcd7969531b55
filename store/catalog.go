package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
)

// QuestCatalog is the read-only collection of solo quest templates. The file
// is loaded fresh on every lookup so catalog edits take effect without a
// restart.
type QuestCatalog struct {
	path string
}

type questCatalogFile struct {
	Quests []Quest `json:"quests"`
}

// NewQuestCatalog creates a catalog backed by the JSON file at path.
func NewQuestCatalog(path string) *QuestCatalog {
	return &QuestCatalog{path: path}
}

// ByDifficulty returns all templates matching the given difficulty.
func (c *QuestCatalog) ByDifficulty(difficulty int) ([]Quest, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read quest catalog: %w", err)
	}
	var f questCatalogFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse quest catalog: %w", err)
	}
	return lo.Filter(f.Quests, func(q Quest, _ int) bool {
		return q.Difficulty == difficulty
	}), nil
}

// TeamQuestCatalog is the read-only collection of team quest templates.
type TeamQuestCatalog struct {
	path string
}

type teamQuestCatalogFile struct {
	TeamQuests []Quest `json:"team_quests"`
}

// NewTeamQuestCatalog creates a catalog backed by the JSON file at path.
func NewTeamQuestCatalog(path string) *TeamQuestCatalog {
	return &TeamQuestCatalog{path: path}
}

// ByDifficulty returns all team templates matching the given difficulty.
func (c *TeamQuestCatalog) ByDifficulty(difficulty int) ([]Quest, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read team quest catalog: %w", err)
	}
	var f teamQuestCatalogFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse team quest catalog: %w", err)
	}
	return lo.Filter(f.TeamQuests, func(q Quest, _ int) bool {
		return q.Difficulty == difficulty
	}), nil
}
