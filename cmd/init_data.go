package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/divebot/divequest/config"
	"github.com/divebot/divequest/store"
)

var initDataCmd = &cobra.Command{
	Use:   "init-data",
	Short: "Seed the store files and example catalogs",
	Long:  `Create the user and team quest store files plus starter quest catalogs at the configured paths. Existing files are left untouched.`,
	Run:   initData,
}

func init() {
	rootCmd.AddCommand(initDataCmd)
}

func initData(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := store.SeedStores(cfg.UserFile(), cfg.TeamQuestFile()); err != nil {
		log.Fatalf("failed to seed store files: %v", err)
	}
	if err := store.SeedCatalogs(cfg.QuestCatalog, cfg.TeamQuestCatalog); err != nil {
		log.Fatalf("failed to seed catalogs: %v", err)
	}

	log.Info("data files ready", "data_dir", cfg.DataDir)
}
