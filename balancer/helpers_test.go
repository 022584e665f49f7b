package balancer

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/Dosada05/tournament-ops/models"
	"github.com/stretchr/testify/require"
)

func player(id int, tier models.SkillTier) models.Player {
	return models.Player{ID: id, Nickname: fmt.Sprintf("%s-%d", tier, id), Tier: tier}
}

// buildRoster creates counts[tier] players per tier and selects all of them.
func buildRoster(counts map[models.SkillTier]int) (Roster, Selection) {
	roster := Roster{}
	sel := Selection{}
	id := 0
	for _, tier := range models.Tiers {
		for i := 0; i < counts[tier]; i++ {
			id++
			p := player(id, tier)
			roster[tier] = append(roster[tier], p)
			sel[tier] = append(sel[tier], p.ID)
		}
	}
	return roster, sel
}

func teamTiers(team Team) []models.SkillTier {
	tiers := make([]models.SkillTier, len(team.Members))
	for i, m := range team.Members {
		tiers[i] = m.Tier
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i] < tiers[j] })
	return tiers
}

func lineupOf(players ...models.Player) *lineup {
	return newLineup(players...)
}

// countingSource records how often the engine asked for randomness.
type countingSource struct {
	calls int
	src   Source
}

func (c *countingSource) Intn(n int) int {
	c.calls++
	return c.src.Intn(n)
}

// requireValidPartition checks the invariants every successful assembly must hold.
func requireValidPartition(t *testing.T, res *Result, roster Roster, sel Selection, size int) {
	t.Helper()

	expected := make(map[int]bool)
	for _, tier := range models.Tiers {
		selected := make(map[int]bool)
		for _, id := range sel[tier] {
			selected[id] = true
		}
		for _, p := range roster[tier] {
			if selected[p.ID] && !p.Deleted {
				expected[p.ID] = true
			}
		}
	}

	seen := make(map[int]bool)
	swaps := 0
	for _, team := range res.Teams {
		require.NotEmpty(t, team.Members)
		require.LessOrEqual(t, len(team.Members), size, "team %q is too large", team.Name)

		names := make([]string, len(team.Members))
		for i, m := range team.Members {
			require.True(t, expected[m.PlayerID], "player %d was not selected", m.PlayerID)
			require.False(t, seen[m.PlayerID], "player %d placed twice", m.PlayerID)
			require.Zero(t, m.Kills)
			seen[m.PlayerID] = true
			names[i] = m.Name
		}
		require.Equal(t, strings.Join(names, teamNameSeparator), team.Name)
	}
	require.Len(t, seen, len(expected), "players were dropped")

	for _, p := range res.Passes {
		require.False(t, p.Stalled, "pass %s stalled", p.Name)
		swaps += p.Swaps
	}
	require.LessOrEqual(t, swaps, len(expected))
}
