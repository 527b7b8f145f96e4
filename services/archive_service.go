package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/storage"
	"golang.org/x/sync/errgroup"
)

const archiveContentType = "application/json"

// RoundArchiver persists a snapshot of a started round outside the database.
type RoundArchiver interface {
	ArchiveRound(ctx context.Context, standings []models.Standing, round *models.RoundPairings) ([]*storage.UploadResult, error)
}

type storageRoundArchiver struct {
	uploader storage.FileUploader
	prefix   string
}

func NewRoundArchiver(uploader storage.FileUploader, prefix string) RoundArchiver {
	if prefix == "" {
		prefix = "rounds"
	}
	return &storageRoundArchiver{uploader: uploader, prefix: prefix}
}

type archiveObject struct {
	key  string
	body interface{}
}

func (a *storageRoundArchiver) ArchiveRound(ctx context.Context, standings []models.Standing, round *models.RoundPairings) ([]*storage.UploadResult, error) {
	if round == nil {
		return nil, fmt.Errorf("%w: nothing to archive", ErrValidationFailed)
	}
	dir := path.Join(a.prefix, fmt.Sprint(round.Round))
	objects := []archiveObject{
		{key: path.Join(dir, "standings.json"), body: standings},
		{key: path.Join(dir, "pairings.json"), body: round},
	}

	results := make([]*storage.UploadResult, len(objects))
	g, gctx := errgroup.WithContext(ctx)
	for i, obj := range objects {
		g.Go(func() error {
			data, err := json.MarshalIndent(obj.body, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode %s: %w", obj.key, err)
			}
			res, err := a.uploader.Upload(gctx, obj.key, archiveContentType, bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("failed to upload %s: %w", obj.key, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
