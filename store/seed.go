package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Seeding for the init-data command. Existing files are never overwritten.

func seedFile(path string, v any) error {
	if _, err := os.Stat(path); err == nil {
		log.Info("File already exists, skipping", "path", path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode seed data: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Info("Created file", "path", path)
	return nil
}

// SeedStores creates empty user and team quest store files if absent.
func SeedStores(userPath, teamQuestPath string) error {
	if err := seedFile(userPath, userFile{Users: []User{}}); err != nil {
		return err
	}
	return seedFile(teamQuestPath, teamQuestFile{TeamQuests: []TeamQuest{}})
}

// SeedCatalogs creates the template catalogs with starter quests if absent.
func SeedCatalogs(questPath, teamQuestPath string) error {
	quests := questCatalogFile{Quests: []Quest{
		{Difficulty: 1, Title: "Patrol Duty", Description: "Post three helpful messages in the help channel."},
		{Difficulty: 1, Title: "First Contact", Description: "Welcome a new member to the server."},
		{Difficulty: 2, Title: "Supply Run", Description: "Share a guide or resource the community has been asking for."},
		{Difficulty: 2, Title: "Recon Sweep", Description: "Test a community build and report back with screenshots."},
		{Difficulty: 3, Title: "Deep Strike", Description: "Organize and host a community event this week."},
	}}
	if err := seedFile(questPath, quests); err != nil {
		return err
	}

	teamQuests := teamQuestCatalogFile{TeamQuests: []Quest{
		{Difficulty: 1, Title: "Squad Drill", Description: "Complete a full mission together without a single reinforcement."},
		{Difficulty: 2, Title: "Joint Operation", Description: "Run a co-op session and post the after-action report."},
		{Difficulty: 3, Title: "Helldive", Description: "Clear the hardest difficulty as a full squad."},
	}}
	return seedFile(teamQuestPath, teamQuests)
}
