// Package digest posts a periodic one-line activity summary to the alert
// channel on a cron schedule.
package digest

import (
	"context"
	"time"

	"github.com/adhocore/gronx"

	"github.com/tinyland-inc/cakeradar/pkg/bus"
	"github.com/tinyland-inc/cakeradar/pkg/logger"
	"github.com/tinyland-inc/cakeradar/pkg/radar"
)

type Service struct {
	schedule  string
	channel   string
	stats     *radar.Stats
	bus       *bus.MessageBus
	gron      *gronx.Gronx
	lastFired time.Time
}

func NewService(schedule, channel string, stats *radar.Stats, mb *bus.MessageBus) *Service {
	return &Service{
		schedule: schedule,
		channel:  channel,
		stats:    stats,
		bus:      mb,
		gron:     gronx.New(),
	}
}

// Run ticks once a minute and posts the summary when the schedule is due.
// Blocks until the context is canceled.
func (s *Service) Run(ctx context.Context) {
	if !s.gron.IsValid(s.schedule) {
		logger.ErrorCF("digest", "Invalid schedule, digest disabled", map[string]any{
			"schedule": s.schedule,
		})
		return
	}
	logger.InfoCF("digest", "Digest scheduled", map[string]any{
		"schedule": s.schedule, "channel": s.channel,
	})

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.tick(ctx, now)
		}
	}
}

func (s *Service) tick(ctx context.Context, now time.Time) {
	// gronx expands 5-field expressions with a seconds segment of 0, so
	// the reference time must sit on the minute boundary or nothing is
	// ever due.
	due, err := s.gron.IsDue(s.schedule, now.Truncate(time.Minute))
	if err != nil || !due {
		return
	}
	// One post per due minute, even if the ticker drifts.
	if now.Truncate(time.Minute).Equal(s.lastFired) {
		return
	}
	s.lastFired = now.Truncate(time.Minute)

	if err := s.bus.PublishOutbound(ctx, bus.OutboundMessage{
		ChannelID: s.channel,
		Text:      s.stats.Summary(),
	}); err != nil {
		logger.ErrorCF("digest", "Digest publish failed", map[string]any{"error": err.Error()})
	}
}
