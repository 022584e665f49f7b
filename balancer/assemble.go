package balancer

import "github.com/Dosada05/tournament-ops/models"

// Result - готовая сборка: перемешанные команды и отчёты проходов ребалансировки.
type Result struct {
	Teams  []Team       `json:"teams"`
	Passes []PassReport `json:"passes"`
}

// Stalled - был ли прерван хотя бы один проход.
func (r *Result) Stalled() bool {
	for _, p := range r.Passes {
		if p.Stalled {
			return true
		}
	}
	return false
}

// Assemble разбивает выбранных и не удалённых игроков ростера на команды не больше size.
// Неподдерживаемый размер (*UnsupportedSizeError) отклоняется до построения пулов,
// пустой выбор - ErrNoPlayersSelected.
//
// Случайность берётся только из src: порядок пулов и итоговый порядок команд.
// При src == nil используется источник от текущего времени.
func Assemble(src Source, roster Roster, sel Selection, size int) (*Result, error) {
	chain, err := rulesFor(size)
	if err != nil {
		return nil, err
	}
	if src == nil {
		src = NewRandomSource()
	}

	ps := newPools(src, roster, sel)
	total := ps.total()
	if total == 0 {
		return nil, ErrNoPlayersSelected
	}

	teams := make([]*lineup, 0, total)
	for _, table := range chain {
		teams = applyRules(ps, table, teams)
	}
	teams = drainLeftovers(ps, teams)

	reports := rebalance(teams, passesFor(size), total+1)

	shuffle(src, teams)

	result := &Result{
		Teams:  make([]Team, len(teams)),
		Passes: reports,
	}
	for i, l := range teams {
		result.Teams[i] = l.freeze()
	}
	return result, nil
}

// applyRules forms teams rule by rule, repeating each rule until one of its pools runs short.
func applyRules(ps *pools, table []rule, teams []*lineup) []*lineup {
	for _, r := range table {
		for r.fits(ps) {
			members := make([]models.Player, len(r))
			for i, tier := range r {
				members[i] = ps.get(tier).pop()
			}
			teams = append(teams, newLineup(members...))
		}
	}
	return teams
}

// drainLeftovers: каждый оставшийся игрок - одиночная команда, от сильных уровней к слабым.
func drainLeftovers(ps *pools, teams []*lineup) []*lineup {
	for i := len(tierOrder) - 1; i >= 0; i-- {
		p := ps.get(tierOrder[i])
		for p.remaining() > 0 {
			teams = append(teams, newLineup(p.pop()))
		}
	}
	return teams
}
