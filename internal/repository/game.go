package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const saveGameKeyPrefix = "savegame:"

type SaveRepository interface {
	Save(ctx context.Context, slot string, snapshot *entity.Snapshot) error
	Load(ctx context.Context, slot string) (*entity.Snapshot, error)
}

type dbSaveGame struct {
	client *redis.Client
}

func NewSaveRepository(client *redis.Client) SaveRepository {
	return &dbSaveGame{
		client: client,
	}
}

func (that *dbSaveGame) Save(ctx context.Context, slot string, snapshot *entity.Snapshot) error {
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	err = that.client.Set(ctx, saveGameKeyPrefix+slot, snapshotJSON, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}

	return nil
}

func (that *dbSaveGame) Load(ctx context.Context, slot string) (*entity.Snapshot, error) {
	response, err := that.client.Get(ctx, saveGameKeyPrefix+slot).Bytes()

	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: slot %q", apperror.ErrSaveNotFound, slot)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	return decodeSnapshot(response)
}

// decodeSnapshot - unmarshals and validates a stored snapshot.
func decodeSnapshot(data []byte) (*entity.Snapshot, error) {
	var snapshot entity.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrCorruptSave, err)
	}

	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	return &snapshot, nil
}
