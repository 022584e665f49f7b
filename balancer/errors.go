package balancer

import (
	"errors"
	"fmt"
)

var (
	// Ни в одном уровне нет выбранных не удалённых игроков.
	ErrNoPlayersSelected = errors.New("select at least one player")

	// Совпадает с любым *UnsupportedSizeError через errors.Is.
	ErrUnsupportedTeamSize = errors.New("unsupported team size")
)

type UnsupportedSizeError struct {
	Size int
}

func (e *UnsupportedSizeError) Error() string {
	return fmt.Sprintf("unsupported team size: %d (supported sizes are %d-%d)", e.Size, Solo, Squad)
}

func (e *UnsupportedSizeError) Is(target error) bool {
	return target == ErrUnsupportedTeamSize
}
