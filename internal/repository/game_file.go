package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	saveFileExt  = ".json"
	saveFileMode = 0o644
	saveDirMode  = 0o755
)

var errInvalidSlot = errors.New("invalid save slot")

type fileSaveGame struct {
	dir string
}

// NewFileSaveRepository - keeps every slot as <dir>/<slot>.json.
func NewFileSaveRepository(dir string) SaveRepository {
	return &fileSaveGame{
		dir: dir,
	}
}

func (that *fileSaveGame) Save(_ context.Context, slot string, snapshot *entity.Snapshot) error {
	path, err := that.slotPath(slot)
	if err != nil {
		return err
	}

	snapshotJSON, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	if err = os.MkdirAll(that.dir, saveDirMode); err != nil {
		return fmt.Errorf("failed to create save dir: %w", err)
	}

	// write next to the target and rename so a crash never leaves half a file behind
	tmp, err := os.CreateTemp(that.dir, slot+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(snapshotJSON); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err = os.Chmod(tmp.Name(), saveFileMode); err != nil {
		return fmt.Errorf("failed to chmod snapshot: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move snapshot in place: %w", err)
	}

	return nil
}

func (that *fileSaveGame) Load(_ context.Context, slot string) (*entity.Snapshot, error) {
	path, err := that.slotPath(slot)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: slot %q", apperror.ErrSaveNotFound, slot)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	return decodeSnapshot(data)
}

func (that *fileSaveGame) slotPath(slot string) (string, error) {
	if slot == "" || slot != filepath.Base(slot) || strings.HasPrefix(slot, ".") {
		return "", fmt.Errorf("%w: %q", errInvalidSlot, slot)
	}

	return filepath.Join(that.dir, slot+saveFileExt), nil
}
