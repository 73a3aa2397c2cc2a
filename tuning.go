package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning carries the designer-adjustable knobs for the simulation and the
// menu input protocol. Values are ticks unless noted otherwise.
type Tuning struct {
	TickRateHz     int     `yaml:"tick_rate_hz"`
	InventorySlots int     `yaml:"inventory_slots"`
	MoveSpeed      float64 `yaml:"move_speed"`

	RepeatDelayTicks   int `yaml:"repeat_delay_ticks"`
	RepeatCadenceTicks int `yaml:"repeat_cadence_ticks"`

	// TrashRefundPercents maps trash upgrade level to the percentage of an
	// item's value refunded when it is destroyed. Level 0 refunds nothing.
	TrashRefundPercents []int `yaml:"trash_refund_percents"`

	Scatter ScatterTuning `yaml:"scatter"`
}

// ScatterTuning controls where dropped stacks land relative to the actor.
type ScatterTuning struct {
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	TileSize    float64 `yaml:"tile_size"`
}

// DefaultTuning returns the values the server runs with when no tuning file
// is supplied.
func DefaultTuning() Tuning {
	return Tuning{
		TickRateHz:          15,
		InventorySlots:      36,
		MoveSpeed:           160,
		RepeatDelayTicks:    9,
		RepeatCadenceTicks:  4,
		TrashRefundPercents: []int{0, 15, 30, 45, 60},
		Scatter: ScatterTuning{
			MinDistance: 4,
			MaxDistance: 14,
			TileSize:    40,
		},
	}
}

// LoadTuning reads a YAML tuning file, layering it over the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning file %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning file %s: %w", path, err)
	}
	return t, nil
}

// Validate rejects values the simulation cannot run with.
func (t Tuning) Validate() error {
	if t.TickRateHz <= 0 {
		return fmt.Errorf("tick_rate_hz must be positive, got %d", t.TickRateHz)
	}
	if t.InventorySlots <= 0 {
		return fmt.Errorf("inventory_slots must be positive, got %d", t.InventorySlots)
	}
	if t.RepeatDelayTicks < 0 {
		return fmt.Errorf("repeat_delay_ticks must not be negative, got %d", t.RepeatDelayTicks)
	}
	if t.RepeatCadenceTicks <= 0 {
		return fmt.Errorf("repeat_cadence_ticks must be positive, got %d", t.RepeatCadenceTicks)
	}
	if len(t.TrashRefundPercents) == 0 {
		return fmt.Errorf("trash_refund_percents must have at least one level")
	}
	for i, pct := range t.TrashRefundPercents {
		if pct < 0 || pct > 100 {
			return fmt.Errorf("trash_refund_percents[%d] out of range: %d", i, pct)
		}
	}
	return nil
}

// RefundPercent returns the refund percentage for an upgrade level, clamping
// to the highest configured level.
func (t Tuning) RefundPercent(level int) int {
	if len(t.TrashRefundPercents) == 0 {
		return 0
	}
	if level < 0 {
		level = 0
	}
	if level >= len(t.TrashRefundPercents) {
		level = len(t.TrashRefundPercents) - 1
	}
	return t.TrashRefundPercents[level]
}
