package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
)

const ContentTypeJSON = "application/json"

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader - объектное хранилище для архивных листов составов.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	GetPublicURL(key string) string
}

// LineupSheetKey - ключ объекта с листом состава турнира.
func LineupSheetKey(tournamentID int, lineupID uuid.UUID) string {
	return fmt.Sprintf("lineups/tournament_%d/%s.json", tournamentID, lineupID)
}
