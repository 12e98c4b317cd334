// Package store persists the task sequence into a single diskv key, the
// slot, and reports changes made to it from outside the process.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/things/pkg/task"
)

// DefaultSlot is the key holding the task sequence.
const DefaultSlot = "todos"

// backupSuffix names the copy kept by Backup.
const backupSuffix = ".bak"

var (
	// ErrSlotEmpty is returned by Load when nothing has been saved yet.
	ErrSlotEmpty = errors.New("store: slot is empty")

	// ErrMalformed wraps decode failures of the slot contents.
	ErrMalformed = errors.New("store: slot is malformed")
)

// Persistence defines the contract for the task slot.
type Persistence interface {
	// Load returns the saved sequence verbatim, ErrSlotEmpty when the slot
	// is absent or blank, or an error wrapping ErrMalformed.
	Load(ctx context.Context) ([]task.Task, error)
	// Save overwrites the slot with the whole sequence.
	Save(tasks []task.Task) error
	// Backup copies the current slot contents next to it and returns where.
	Backup() (string, error)
	Watch(ctx context.Context) (<-chan Event, error)
	Path() string
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	slot := cfg.Slot()
	if slot == "" {
		slot = DefaultSlot
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		TempDir:           filepath.Join(basePath, ".tmp"),
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath, slot: slot}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	slot     string
}

func (p *persistence) Path() string {
	return filepath.Join(p.basePath, p.slot)
}

func (p *persistence) Load(ctx context.Context) ([]task.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := p.read()
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrSlotEmpty
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if tasks == nil {
		return nil, ErrSlotEmpty
	}
	return tasks, nil
}

func (p *persistence) read() ([]byte, error) {
	if !p.d.Has(p.slot) {
		return nil, ErrSlotEmpty
	}
	// Read around the cache so writes from other processes are seen.
	rc, err := p.d.ReadStream(p.slot, true)
	if err != nil {
		return nil, fmt.Errorf("store: read slot: %w", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("store: read slot: %w", err)
	}
	return data, nil
}

func (p *persistence) Backup() (string, error) {
	data, err := p.read()
	if err != nil {
		return "", err
	}
	key := p.slot + backupSuffix
	if err := p.d.Write(key, data); err != nil {
		return "", fmt.Errorf("store: write backup: %w", err)
	}
	return filepath.Join(p.basePath, key), nil
}

func (p *persistence) Save(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("store: encode tasks: %w", err)
	}
	if err := p.d.Write(p.slot, data); err != nil {
		return fmt.Errorf("store: write slot: %w", err)
	}
	return nil
}

// The slot lives directly under the base path.
func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: key,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
