package balancer

import (
	"math/rand"
	"time"
)

// Source - единственный источник случайности движка. Подходит *rand.Rand.
type Source interface {
	Intn(n int) int
}

// NewSource - детерминированный источник: одинаковый seed даёт одинаковые составы.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// NewRandomSource - источник от текущего времени, для продакшена.
func NewRandomSource() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// shuffle is an in-place Fisher–Yates permutation.
func shuffle[T any](src Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
