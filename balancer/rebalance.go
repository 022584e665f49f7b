package balancer

// PassReport - итог одного прохода. Remaining - сколько нарушений шаблона осталось;
// Stalled - обмен не уменьшил потенциал или кончился бюджет итераций.
type PassReport struct {
	Name      string `json:"name"`
	Swaps     int    `json:"swaps"`
	Remaining int    `json:"remaining"`
	Stalled   bool   `json:"stalled"`
}

// pass targets one undesirable composition. Every swap it performs must lower potential.
type pass struct {
	name   string
	target func(*lineup) bool
	donor  func(*lineup) bool
	// pick chooses the member index to trade out of the target and out of the donor.
	pick      func(target, donor *lineup) (int, int)
	potential func([]*lineup) int
}

var (
	leaderlessPass = pass{
		name:   "leaderless",
		target: leaderless,
		donor:  multiLeader,
		pick: func(target, donor *lineup) (int, int) {
			return target.weakest(anyTier), donor.weakest(isStrong)
		},
		potential: countMatching(leaderless),
	}

	weakSoloPass = pass{
		name:   "weak-solo",
		target: weakSolo,
		donor:  multiLeader,
		pick: func(target, donor *lineup) (int, int) {
			return 0, donor.weakest(isStrong)
		},
		potential: countMatching(weakSolo),
	}

	ultraNoobStackPass = pass{
		name:   "ultra-noob-stack",
		target: ultraNoobStack,
		donor: func(l *lineup) bool {
			return l.size() >= 2 && l.count(is(ultraNoob)) == 0
		},
		pick: func(target, donor *lineup) (int, int) {
			return target.weakest(is(ultraNoob)), donor.weakest(anyTier)
		},
		potential: func(teams []*lineup) int {
			excess := 0
			for _, l := range teams {
				if n := l.count(is(ultraNoob)); n > 1 {
					excess += n - 1
				}
			}
			return excess
		},
	}

	proSoloPass = pass{
		name:   "pro-solo",
		target: proSolo,
		donor: func(l *lineup) bool {
			return l.size() >= 2 && l.count(is(ultraPro)) > 0
		},
		pick: func(target, donor *lineup) (int, int) {
			return 0, donor.weakest(is(ultraPro))
		},
		potential: countMatching(proSolo),
	}
)

func leaderless(l *lineup) bool {
	return l.size() >= 2 && l.count(isStrong) == 0
}

func multiLeader(l *lineup) bool {
	return l.size() >= 2 && l.count(isStrong) >= 2
}

func weakSolo(l *lineup) bool {
	return l.size() == 1 && isWeak(l.members[0].Tier)
}

func ultraNoobStack(l *lineup) bool {
	return l.count(is(ultraNoob)) >= 2
}

func proSolo(l *lineup) bool {
	return l.size() == 1 && l.members[0].Tier == pro
}

func countMatching(match func(*lineup) bool) func([]*lineup) int {
	return func(teams []*lineup) int {
		n := 0
		for _, l := range teams {
			if match(l) {
				n++
			}
		}
		return n
	}
}

// passesFor returns the rebalancing passes for a team size, in the order they run.
func passesFor(size int) []pass {
	switch size {
	case Duo:
		return []pass{ultraNoobStackPass, weakSoloPass, leaderlessPass, proSoloPass}
	case Trio, Squad:
		return []pass{leaderlessPass, weakSoloPass, ultraNoobStackPass, proSoloPass}
	default:
		return nil
	}
}

// findTeamIndex возвращает наименьший индекс команды, подходящей под match.
func findTeamIndex(teams []*lineup, match func(*lineup) bool) (int, bool) {
	for i, l := range teams {
		if match(l) {
			return i, true
		}
	}
	return -1, false
}

func rebalance(teams []*lineup, passes []pass, budget int) []PassReport {
	reports := make([]PassReport, 0, len(passes))
	for _, p := range passes {
		reports = append(reports, runPass(teams, p, budget))
	}
	return reports
}

// runPass swaps members between the first target team and the first donor team
// until no target or no donor is left. A swap that does not lower the potential,
// or running past budget, aborts the pass.
func runPass(teams []*lineup, p pass, budget int) PassReport {
	report := PassReport{Name: p.name}
	current := p.potential(teams)

	for {
		ti, ok := findTeamIndex(teams, p.target)
		if !ok {
			break
		}
		target := teams[ti]
		di, ok := findTeamIndex(teams, func(l *lineup) bool {
			return l != target && p.donor(l)
		})
		if !ok {
			break
		}
		if report.Swaps >= budget {
			report.Stalled = true
			break
		}

		donor := teams[di]
		a, b := p.pick(target, donor)
		target.members[a], donor.members[b] = donor.members[b], target.members[a]
		report.Swaps++

		next := p.potential(teams)
		if next >= current {
			current = next
			report.Stalled = true
			break
		}
		current = next
	}

	report.Remaining = current
	return report
}
