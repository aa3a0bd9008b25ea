// Package progress fans gameplay events out to every consumer that counts
// them. Services report what happened through one Track call instead of
// knowing about quests or the tutorial individually.
package progress

import (
	"context"

	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/logger"
)

// QuestRecorder bumps quest counters for an event
type QuestRecorder interface {
	Record(ctx context.Context, playerID string, event domain.ProgressEvent, n int) error
}

// TutorialStepper advances the tutorial when an event satisfies its step
type TutorialStepper interface {
	OnEvent(ctx context.Context, playerID string, event domain.ProgressEvent) error
}

// Tracker is the synchronous event fan-out. Consumer failures are logged and
// swallowed so progress bookkeeping never fails the gameplay action that
// produced the event.
type Tracker struct {
	quests   QuestRecorder
	tutorial TutorialStepper
}

// NewTracker creates a Tracker over the given consumers. Either may be nil.
func NewTracker(quests QuestRecorder, tutorial TutorialStepper) *Tracker {
	return &Tracker{quests: quests, tutorial: tutorial}
}

// Track reports n occurrences of an event for a player
func (t *Tracker) Track(ctx context.Context, playerID string, event domain.ProgressEvent, n int) {
	if n <= 0 {
		return
	}
	if t.quests != nil {
		if err := t.quests.Record(ctx, playerID, event, n); err != nil {
			logger.FromContext(ctx).Error("Failed to record quest progress",
				"player_id", playerID, "event", event, "error", err)
		}
	}
	if t.tutorial != nil {
		if err := t.tutorial.OnEvent(ctx, playerID, event); err != nil {
			logger.FromContext(ctx).Error("Failed to advance tutorial",
				"player_id", playerID, "event", event, "error", err)
		}
	}
}
