package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"skyscraper-service/pkg/logger"
)

// Scheduler triggers the orchestrator at a fixed set of times-of-day,
// wrapping to the first slot of the next day once today's slots have passed.
// It runs for the process lifetime; a failed invocation never stops the loop.
type Scheduler struct {
	slots        []int // minutes since midnight, ascending
	orchestrator *IngestOrchestrator
	logger       logger.Logger
}

// NewScheduler creates a scheduler from a "HH:MM,HH:MM,..." slot spec
func NewScheduler(slotSpec string, orchestrator *IngestOrchestrator, logger logger.Logger) (*Scheduler, error) {
	slots, err := ParseSlots(slotSpec)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		slots:        slots,
		orchestrator: orchestrator,
		logger:       logger,
	}, nil
}

// ParseSlots parses a comma-separated list of HH:MM times into ascending
// minutes-since-midnight.
func ParseSlots(spec string) ([]int, error) {
	parts := strings.Split(spec, ",")
	slots := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		hm := strings.SplitN(part, ":", 2)
		if len(hm) != 2 {
			return nil, fmt.Errorf("invalid schedule slot %q", part)
		}
		hour, err := strconv.Atoi(hm[0])
		if err != nil || hour < 0 || hour > 23 {
			return nil, fmt.Errorf("invalid hour in schedule slot %q", part)
		}
		minute, err := strconv.Atoi(hm[1])
		if err != nil || minute < 0 || minute > 59 {
			return nil, fmt.Errorf("invalid minute in schedule slot %q", part)
		}
		slots = append(slots, hour*60+minute)
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("no schedule slots in %q", spec)
	}
	sort.Ints(slots)
	return slots, nil
}

// NextRun returns the first slot strictly after now, on the following day if
// all of today's slots have passed.
func NextRun(now time.Time, slots []int) time.Time {
	for _, slot := range slots {
		candidate := time.Date(now.Year(), now.Month(), now.Day(), slot/60, slot%60, 0, 0, now.Location())
		if candidate.After(now) {
			return candidate
		}
	}
	first := slots[0]
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), first/60, first%60, 0, 0, now.Location())
}

// Run drives the schedule loop until the context is cancelled
func (s *Scheduler) Run(ctx context.Context) {
	for {
		next := NextRun(time.Now(), s.slots)
		s.logger.Info("Next scheduled ingestion", "at", next.Format(time.RFC3339))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Scheduler stopped")
			return
		case <-timer.C:
			s.orchestrator.RunAll(ctx)
		}
	}
}
