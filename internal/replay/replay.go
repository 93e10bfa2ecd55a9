// Package replay stores finished runs as msgpack files and re-simulates them
// to check that a recorded result is reproducible.
package replay

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/paper-runner/internal/config"
	"github.com/vovakirdan/paper-runner/internal/core"
	"github.com/vovakirdan/paper-runner/internal/games/runner"
	"github.com/vovakirdan/paper-runner/internal/progression"
)

// FormatVersion is bumped whenever File changes incompatibly.
const FormatVersion = 1

var (
	// ErrMismatch means re-simulating a file did not reproduce its result.
	ErrMismatch = errors.New("replay: result mismatch")
	// ErrVersion means the file was written by an incompatible version.
	ErrVersion = errors.New("replay: unsupported format version")
)

// File is a recorded run.
type File struct {
	Version    int                  `msgpack:"version"`
	RunID      string               `msgpack:"run_id"`
	Profile    string               `msgpack:"profile"`
	RecordedAt time.Time            `msgpack:"recorded_at"`
	Config     config.RunnerConfig  `msgpack:"config"`
	Seed       int64                `msgpack:"seed"`
	Stats      progression.Stats    `msgpack:"stats"`
	ViewW      float64              `msgpack:"view_w"`
	ViewH      float64              `msgpack:"view_h"`
	Inputs     []core.Action        `msgpack:"inputs"`
	Resizes    []runner.ResizeEvent `msgpack:"resizes"`
	Finished   bool                 `msgpack:"finished"`
	Score      int                  `msgpack:"score"`
	Coins      int                  `msgpack:"coins"`
}

// FromJournal builds a file from a session journal and the config it ran with.
func FromJournal(cfg config.RunnerConfig, j *runner.Journal, runID, profile string) *File {
	return &File{
		Version:    FormatVersion,
		RunID:      runID,
		Profile:    profile,
		RecordedAt: time.Now().UTC(),
		Config:     cfg,
		Seed:       j.Seed,
		Stats:      j.Stats,
		ViewW:      j.ViewW,
		ViewH:      j.ViewH,
		Inputs:     append([]core.Action(nil), j.Inputs...),
		Resizes:    append([]runner.ResizeEvent(nil), j.Resizes...),
		Finished:   j.Finished,
		Score:      j.Score,
		Coins:      j.Coins,
	}
}

// Save writes f to path, creating parent directories.
func Save(path string, f *File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("replay: cannot create directory: %w", err)
	}

	data, err := msgpack.Marshal(f)
	if err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("replay: write %s: %w", path, err)
	}
	return nil
}

// Load reads a file written by Save.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: read %s: %w", path, err)
	}

	var f File
	if err := msgpack.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("replay: decode %s: %w", path, err)
	}
	if f.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, f.Version)
	}
	return &f, nil
}

// Result is the outcome of re-simulating a file.
type Result struct {
	Frames   int
	Score    int
	Coins    int
	Finished bool
}

// Simulate replays f against an in-memory progression store.
// Nothing is persisted.
func Simulate(f *File) (Result, error) {
	if f.Version != FormatVersion {
		return Result{}, fmt.Errorf("%w: %d", ErrVersion, f.Version)
	}
	if err := f.Config.Validate(); err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}

	store := progression.NewStore(progression.NewMemoryPort(f.Stats), f.Config.Progression, nil)
	s := runner.NewSession(f.Config, store)
	s.Resize(f.ViewW, f.ViewH)
	if !s.StartWithSeed(f.Seed) {
		return Result{}, errors.New("replay: session did not start")
	}

	resizes := f.Resizes
	for i, bits := range f.Inputs {
		for len(resizes) > 0 && resizes[0].Frame <= i {
			s.Resize(resizes[0].Width, resizes[0].Height)
			resizes = resizes[1:]
		}
		if s.State() != runner.StatePlaying {
			return Result{}, fmt.Errorf("%w: run ended at frame %d of %d", ErrMismatch, i, len(f.Inputs))
		}
		s.Step(core.InputFrame{Bits: bits})
	}

	snap := s.Snapshot()
	return Result{
		Frames:   snap.Frame,
		Score:    snap.Score,
		Coins:    snap.Coins,
		Finished: snap.State == runner.StateGameOver,
	}, nil
}

// Verify re-simulates f and checks the result against what was recorded.
func Verify(f *File) (Result, error) {
	res, err := Simulate(f)
	if err != nil {
		return res, err
	}

	switch {
	case res.Finished != f.Finished:
		return res, fmt.Errorf("%w: finished %v, recorded %v", ErrMismatch, res.Finished, f.Finished)
	case f.Finished && res.Score != f.Score:
		return res, fmt.Errorf("%w: score %d, recorded %d", ErrMismatch, res.Score, f.Score)
	case f.Finished && res.Coins != f.Coins:
		return res, fmt.Errorf("%w: coins %d, recorded %d", ErrMismatch, res.Coins, f.Coins)
	}
	return res, nil
}
