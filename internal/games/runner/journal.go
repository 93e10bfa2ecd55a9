package runner

import (
	"github.com/vovakirdan/paper-runner/internal/core"
	"github.com/vovakirdan/paper-runner/internal/progression"
)

// ResizeEvent records a viewport change that happened before step Frame.
type ResizeEvent struct {
	Frame  int     `msgpack:"frame"`
	Width  float64 `msgpack:"width"`
	Height float64 `msgpack:"height"`
}

// Journal is everything needed to re-simulate a run: the starting state and
// the input of every step, in order.
type Journal struct {
	Seed     int64
	Stats    progression.Stats
	ViewW    float64
	ViewH    float64
	Inputs   []core.Action
	Resizes  []ResizeEvent
	Score    int
	Coins    int
	Finished bool
}

func (j *Journal) record(in core.InputFrame) {
	j.Inputs = append(j.Inputs, in.Bits)
}

func (j *Journal) recordResize(w, h float64) {
	j.Resizes = append(j.Resizes, ResizeEvent{Frame: len(j.Inputs), Width: w, Height: h})
}

func (j *Journal) finish(score, coins int) {
	j.Score = score
	j.Coins = coins
	j.Finished = true
}
