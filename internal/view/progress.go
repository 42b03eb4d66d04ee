// Package view computes derived views over stored entities. Everything
// here is pure and recomputed on every read; nothing is cached.
package view

import (
	"math"

	"taskdeck/internal/api"
)

// Progress is the per-task completion summary.
type Progress struct {
	Completed int
	Total     int
	Percent   int
}

// TaskProgress computes completion progress for a task's checklist.
// Percent is round(completed/total*100) when the checklist is non-empty,
// otherwise 0.
func TaskProgress(t api.Task) Progress {
	p := Progress{Total: len(t.Checklist)}
	for _, item := range t.Checklist {
		if item.Completed {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percent = int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
	}
	return p
}

// Status is the display tag derived from progress.
type Status string

const (
	StatusCompleted  Status = "Completed"
	StatusInProgress Status = "In Progress"
)

// StatusFor returns Completed exactly at 100 percent, In Progress otherwise.
func StatusFor(percent int) Status {
	if percent == 100 {
		return StatusCompleted
	}
	return StatusInProgress
}
