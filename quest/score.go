package quest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/divebot/divequest/store"
)

// pointsPerDifficulty is the score awarded per difficulty star on completion.
const pointsPerDifficulty = 100

// AwardPoints adds pointsEach to every listed player's score and returns one
// reward line per player. This is the only path through which scores change.
// Players are processed in input order; a duplicate name is awarded once per
// occurrence, each time on top of its freshly reloaded score.
func (s *Service) AwardPoints(players []string, pointsEach int) (string, error) {
	var b strings.Builder
	for _, name := range players {
		user, err := s.users.GetOrCreate(name)
		if err != nil {
			return "", err
		}
		user.Score += pointsEach
		if err := s.users.Save(user); err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "🎉 %s: +%s points (Total: %s)\n",
			name, humanize.Comma(int64(pointsEach)), humanize.Comma(int64(user.Score)))
	}
	return b.String(), nil
}

// Leaderboard renders all users ranked by score. Ties are broken by username
// ascending so the ordering is deterministic across runs.
func (s *Service) Leaderboard() (string, error) {
	users, err := s.users.All()
	if err != nil {
		return "", err
	}
	if len(users) == 0 {
		return "No users found on the leaderboard yet.", nil
	}

	sort.Slice(users, func(i, j int) bool {
		if users[i].Score != users[j].Score {
			return users[i].Score > users[j].Score
		}
		return users[i].Username < users[j].Username
	})

	lines := lo.Map(users, func(u store.User, i int) string {
		return fmt.Sprintf("%s %s: %s points", rankMarker(i+1), u.Username, humanize.Comma(int64(u.Score)))
	})
	return leaderboardMessage(lines), nil
}

func rankMarker(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("#%d", rank)
	}
}
