package quest

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/divebot/divequest/store"
)

// Chat message rendering. The dispatcher relays these verbatim, so they use
// the markdown flavor the chat platform understands.

const bannerRule = "════════════════════════════════════════"

const (
	msgDifficultyRange    = "Difficulty must be between 1 and 3."
	msgNoQuestsAvailable  = "No quests available for that difficulty."
	msgNoPlayersMentioned = "Mention at least one player for a team quest."
)

func stars(difficulty int) string {
	return strings.Repeat("⭐", difficulty)
}

func banner(title string) string {
	pad := (utf8.RuneCountInString(bannerRule) - utf8.RuneCountInString(title)) / 2
	if pad < 0 {
		pad = 0
	}
	return fmt.Sprintf("%s\n%s%s\n%s", bannerRule, strings.Repeat(" ", pad), title, bannerRule)
}

func questAssignedMessage(username string, q store.Quest) string {
	return fmt.Sprintf(`
%s

**helldiver:** %s
**Mission:** %s
**Difficulty:** %s

**Briefing:**
%s

Good luck, helldiver!
%s
`, banner("NEW QUEST ASSIGNED"), username, q.Title, stars(q.Difficulty), q.Description, bannerRule)
}

func questAlreadyActiveMessage(username, title string) string {
	return fmt.Sprintf(`
%s

**helldiver:** %s

You already have an active quest:
**%s**

Complete or abandon it before requesting a new one!
`, banner("QUEST ALREADY ACTIVE"), username, title)
}

func userStatsMessage(u store.User) string {
	return fmt.Sprintf(`
%s

**Soldier:** %s
**Total Score:** %d

Keep fighting, soldier!
`, banner("SOLDIER STATS"), u.Username, u.Score)
}

func leaderboardMessage(lines []string) string {
	return fmt.Sprintf(`
%s

%s

%s`, banner("GLOBAL LEADERBOARD"), strings.Join(lines, "\n"), bannerRule)
}

func teamQuestAssignedMessage(tq store.TeamQuest) string {
	return fmt.Sprintf(`
%s

**Mission:** %s
**Team:** %s
**Difficulty:** %s
**Quest ID:** %s

**Briefing:**
%s

Good luck, Helldivers!
%s
`, banner("TEAM QUEST ASSIGNED"), tq.Quest.Title, strings.Join(tq.Players, ", "),
		stars(tq.Quest.Difficulty), tq.QuestID, tq.Quest.Description, bannerRule)
}

func activeTeamQuestsMessage(quests []store.TeamQuest) string {
	var b strings.Builder
	b.WriteString("\n" + banner("ACTIVE TEAM QUESTS") + "\n\n")
	for _, tq := range quests {
		fmt.Fprintf(&b, `**Quest ID:** %s
**Mission:** %s
**Team:** %s
**Difficulty:** %s
**Status:** %s

`, tq.QuestID, tq.Quest.Title, strings.Join(tq.Players, ", "), stars(tq.Quest.Difficulty), tq.Status)
	}
	b.WriteString(bannerRule)
	return b.String()
}

// HelpText is the command reference the dispatcher posts on request.
func HelpText() string {
	return fmt.Sprintf(`
%s

**!get_quest [difficulty]**
Request a new quest. Difficulty: 1-3 (default: 1)

**!complete_quest**
Complete your active quest and earn points based on difficulty.

**!abandon_quest**
Abandon your active quest (no points awarded).

**!team_quest @players [difficulty]**
Request a team quest for the mentioned players.

**!complete_team_quest <id>**
Complete an active team quest and reward every player.

**!team_quests**
List all active team quests.

**!stats**
View your personal score and statistics.

**!leaderboard**
View the global leaderboard of all helldivers ranked by score.

%s
`, banner("AVAILABLE COMMANDS"), bannerRule)
}
