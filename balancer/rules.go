package balancer

import "github.com/Dosada05/tournament-ops/models"

const (
	Solo  = 1
	Duo   = 2
	Trio  = 3
	Squad = 4
)

const (
	ultraNoob = models.TierUltraNoob
	noob      = models.TierNoob
	pro       = models.TierPro
	ultraPro  = models.TierUltraPro
)

// rule is one tier combination; the assembler takes one pool head per entry.
type rule []models.SkillTier

func (r rule) need() (counts [len(tierOrder)]int) {
	for _, tier := range r {
		counts[tier]++
	}
	return counts
}

func (r rule) ultraNoobOnly() bool {
	for _, tier := range r {
		if tier != ultraNoob {
			return false
		}
	}
	return true
}

// fits reports whether the pools can still form one team from r.
// Ultra-Noob-only teams are formed only once every other pool is empty.
func (r rule) fits(ps *pools) bool {
	counts := r.need()
	for tier, n := range counts {
		if ps[tier].remaining() < n {
			return false
		}
	}
	if r.ultraNoobOnly() {
		return ps.total() == ps.get(ultraNoob).remaining()
	}
	return true
}

// Extreme tiers are paired first; bottom-tier-only teams come last.
var duoRules = []rule{
	{ultraPro, ultraNoob},
	{pro, ultraNoob},
	{pro, noob},
	{ultraPro, noob},

	{ultraPro, pro},
	{ultraPro, ultraPro},
	{pro, pro},

	{noob, noob},
	{ultraNoob, noob},
	{ultraNoob, ultraNoob},
}

var trioRules = []rule{
	// one leader, balanced followers
	{ultraPro, noob, ultraNoob},
	{pro, noob, ultraNoob},
	{ultraPro, ultraNoob, ultraNoob},
	{pro, ultraNoob, ultraNoob},
	{ultraPro, noob, noob},
	{pro, noob, noob},

	// doubled leader
	{ultraPro, pro, ultraNoob},
	{pro, pro, ultraNoob},
	{ultraPro, ultraPro, ultraNoob},
	{ultraPro, pro, noob},
	{pro, pro, noob},
	{ultraPro, ultraPro, noob},

	{ultraPro, pro, pro},
	{ultraPro, ultraPro, pro},
	{pro, pro, pro},
	{ultraPro, ultraPro, ultraPro},

	{noob, noob, ultraNoob},
	{noob, noob, noob},
	{noob, ultraNoob, ultraNoob},
	{ultraNoob, ultraNoob, ultraNoob},
}

var squadRules = []rule{
	{ultraPro, pro, noob, ultraNoob},

	// one leader
	{ultraPro, noob, ultraNoob, ultraNoob},
	{pro, noob, ultraNoob, ultraNoob},
	{ultraPro, noob, noob, ultraNoob},
	{pro, noob, noob, ultraNoob},
	{ultraPro, ultraNoob, ultraNoob, ultraNoob},
	{pro, ultraNoob, ultraNoob, ultraNoob},
	{ultraPro, noob, noob, noob},
	{pro, noob, noob, noob},

	// doubled leader
	{ultraPro, pro, ultraNoob, ultraNoob},
	{ultraPro, pro, noob, noob},
	{pro, pro, noob, ultraNoob},
	{pro, pro, ultraNoob, ultraNoob},
	{pro, pro, noob, noob},
	{ultraPro, ultraPro, noob, ultraNoob},
	{ultraPro, ultraPro, ultraNoob, ultraNoob},
	{ultraPro, ultraPro, noob, noob},

	// tripled leader
	{ultraPro, pro, pro, ultraNoob},
	{ultraPro, pro, pro, noob},
	{ultraPro, ultraPro, pro, ultraNoob},
	{ultraPro, ultraPro, pro, noob},
	{pro, pro, pro, ultraNoob},
	{pro, pro, pro, noob},
	{ultraPro, ultraPro, ultraPro, ultraNoob},
	{ultraPro, ultraPro, ultraPro, noob},

	{ultraPro, ultraPro, pro, pro},
	{ultraPro, pro, pro, pro},
	{ultraPro, ultraPro, ultraPro, pro},
	{pro, pro, pro, pro},
	{ultraPro, ultraPro, ultraPro, ultraPro},

	{noob, noob, noob, ultraNoob},
	{noob, noob, ultraNoob, ultraNoob},
	{noob, ultraNoob, ultraNoob, ultraNoob},
	{noob, noob, noob, noob},
	{ultraNoob, ultraNoob, ultraNoob, ultraNoob},
}

// ValidateSize проверяет размер команды без построения пулов.
func ValidateSize(size int) error {
	_, err := rulesFor(size)
	return err
}

// rulesFor возвращает цепочку таблиц правил для размера команды. Большие размеры
// проходят через таблицы меньших, остаток уходит в одиночные команды.
func rulesFor(size int) ([][]rule, error) {
	switch size {
	case Solo:
		return nil, nil
	case Duo:
		return [][]rule{duoRules}, nil
	case Trio:
		return [][]rule{trioRules, duoRules}, nil
	case Squad:
		return [][]rule{squadRules, trioRules, duoRules}, nil
	default:
		return nil, &UnsupportedSizeError{Size: size}
	}
}
