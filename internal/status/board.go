// Package status keeps the most recently published calibration state so it
// can be served while a run is in progress.
package status

import (
	"sort"
	"sync"
	"time"

	"github.com/chrissnell/humifix/internal/calibration"
	"github.com/chrissnell/humifix/internal/storage"
	"github.com/chrissnell/humifix/internal/summary"
	"github.com/chrissnell/humifix/internal/types"
)

// CycleState is the last cycle seen by the loop, kept or discarded
type CycleState struct {
	Number    int
	Discarded bool
	Cycle     *calibration.Cycle
}

// EngineHealth is the last health check of a storage engine
type EngineHealth struct {
	Engine string
	storage.Health
}

// Snapshot is a consistent copy of the board
type Snapshot struct {
	Run         *types.Run
	Now         time.Time
	LastCycle   *CycleState
	LastReport  *summary.Report
	PeriodCount int
	Health      []EngineHealth
}

// Board is safe for concurrent use by the loop and HTTP handlers
type Board struct {
	mu          sync.RWMutex
	run         *types.Run
	lastCycle   *CycleState
	lastReport  *summary.Report
	periodCount int
	health      map[string]storage.Health
	now         func() time.Time
}

// NewBoard creates a board for run
func NewBoard(run *types.Run) *Board {
	return &Board{
		run:    run,
		health: make(map[string]storage.Health),
		now:    time.Now,
	}
}

// PublishCycle records the latest cycle. periodCount is the number of
// cycles accumulated in the current summary period.
func (b *Board) PublishCycle(number int, discarded bool, c *calibration.Cycle, periodCount int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCycle = &CycleState{Number: number, Discarded: discarded, Cycle: c}
	b.periodCount = periodCount
}

// PublishReport records the latest summary report
func (b *Board) PublishReport(r summary.Report) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastReport = &r
	b.periodCount = 0
}

// UpdateHealth records a storage health check; it satisfies storage.HealthFunc
func (b *Board) UpdateHealth(engine string, h *storage.Health) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.health[engine] = *h
}

// Snapshot returns a copy of the board
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s := Snapshot{
		Run:         b.run,
		Now:         b.now(),
		PeriodCount: b.periodCount,
	}
	if b.lastCycle != nil {
		lc := *b.lastCycle
		s.LastCycle = &lc
	}
	if b.lastReport != nil {
		lr := *b.lastReport
		s.LastReport = &lr
	}
	for name, h := range b.health {
		s.Health = append(s.Health, EngineHealth{Engine: name, Health: h})
	}
	sort.Slice(s.Health, func(i, j int) bool { return s.Health[i].Engine < s.Health[j].Engine })
	return s
}
