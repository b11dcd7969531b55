package store

// Quest is a mission template or a snapshot of one. Templates live in the
// read-only catalogs; a snapshot copy is embedded into a user or team quest
// record on assignment, so later catalog edits never touch assigned quests.
type Quest struct {
	Difficulty  int    `json:"difficulty"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// User is a single tracked chat user. ActiveQuest is nil when the user has no
// quest in progress; a user holds at most one active quest at a time.
type User struct {
	Username    string `json:"username"`
	ActiveQuest *Quest `json:"active_quest,omitempty"`
	Score       int    `json:"score"`
}

// TeamQuestStatus represents the status of a team quest.
type TeamQuestStatus string

const (
	TeamQuestInProgress TeamQuestStatus = "in progress"
	TeamQuestCompleted  TeamQuestStatus = "completed"
	TeamQuestFailed     TeamQuestStatus = "failed"
)

// TeamQuest is a multi-player mission instance. Players is kept in mention
// order and is not deduplicated. Completed team quests are removed from the
// active store rather than archived.
type TeamQuest struct {
	QuestID string          `json:"quest_id"`
	Quest   Quest           `json:"quest"`
	Players []string        `json:"players"`
	Status  TeamQuestStatus `json:"status"`
}
