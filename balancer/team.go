package balancer

import (
	"strings"

	"github.com/Dosada05/tournament-ops/models"
)

const teamNameSeparator = " & "

// Member - место в команде. Kills при сборке всегда 0.
type Member struct {
	PlayerID int              `json:"player_id"`
	Name     string           `json:"name"`
	Tier     models.SkillTier `json:"tier"`
	Kills    int              `json:"kills"`
}

// Team - собранная команда. Name - ники участников через " & ".
type Team struct {
	Name    string   `json:"name"`
	Members []Member `json:"members"`
}

// lineup - команда в процессе сборки. Имя не хранится, а выводится из состава.
type lineup struct {
	members []models.Player
}

func newLineup(members ...models.Player) *lineup {
	return &lineup{members: members}
}

func (l *lineup) name() string {
	names := make([]string, len(l.members))
	for i, m := range l.members {
		names[i] = m.Nickname
	}
	return strings.Join(names, teamNameSeparator)
}

func (l *lineup) size() int {
	return len(l.members)
}

func (l *lineup) count(match func(models.SkillTier) bool) int {
	n := 0
	for _, m := range l.members {
		if match(m.Tier) {
			n++
		}
	}
	return n
}

// weakest returns the index of the lowest-tier member accepted by match,
// the first one on ties, or -1.
func (l *lineup) weakest(match func(models.SkillTier) bool) int {
	idx := -1
	for i, m := range l.members {
		if !match(m.Tier) {
			continue
		}
		if idx == -1 || m.Tier < l.members[idx].Tier {
			idx = i
		}
	}
	return idx
}

func (l *lineup) freeze() Team {
	members := make([]Member, len(l.members))
	for i, m := range l.members {
		members[i] = Member{PlayerID: m.ID, Name: m.Nickname, Tier: m.Tier}
	}
	return Team{Name: l.name(), Members: members}
}

func anyTier(models.SkillTier) bool { return true }

func isStrong(t models.SkillTier) bool { return t.Strong() }

func isWeak(t models.SkillTier) bool { return !t.Strong() }

func is(tier models.SkillTier) func(models.SkillTier) bool {
	return func(t models.SkillTier) bool { return t == tier }
}
