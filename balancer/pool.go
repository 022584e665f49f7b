package balancer

import "github.com/Dosada05/tournament-ops/models"

// Roster - полный ростер по уровням. Уровень игрока определяется ключом, а не полем Player.Tier.
type Roster map[models.SkillTier][]models.Player

// Selection - выбранные ID игроков по уровням.
type Selection map[models.SkillTier][]int

// pool - перемешанная очередь игроков, читаемая через курсор.
type pool struct {
	players []models.Player
	next    int
}

func (p *pool) remaining() int {
	return len(p.players) - p.next
}

func (p *pool) pop() models.Player {
	player := p.players[p.next]
	p.next++
	return player
}

// pools индексируется models.SkillTier.
type pools [len(tierOrder)]pool

var tierOrder = [...]models.SkillTier{models.TierUltraNoob, models.TierNoob, models.TierPro, models.TierUltraPro}

// newPools оставляет выбранных и не удалённых игроков каждого уровня и перемешивает пулы.
// Игрок попадает в пул не больше одного раза, даже если выбран в нескольких уровнях.
func newPools(src Source, roster Roster, sel Selection) *pools {
	var ps pools
	placed := make(map[int]bool)

	for _, tier := range tierOrder {
		selected := make(map[int]bool, len(sel[tier]))
		for _, id := range sel[tier] {
			selected[id] = true
		}

		players := make([]models.Player, 0, len(selected))
		for _, player := range roster[tier] {
			if !selected[player.ID] || player.Deleted || placed[player.ID] {
				continue
			}
			placed[player.ID] = true
			player.Tier = tier
			players = append(players, player)
		}

		shuffle(src, players)
		ps[tier] = pool{players: players}
	}
	return &ps
}

func (ps *pools) get(tier models.SkillTier) *pool {
	return &ps[tier]
}

func (ps *pools) total() int {
	total := 0
	for i := range ps {
		total += ps[i].remaining()
	}
	return total
}
