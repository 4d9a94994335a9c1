// Package radar implements the cake-radar decision pipeline: deduplicate,
// filter, classify, combine, and route one inbound chat message to one of
// two destination channels.
package radar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tinyland-inc/cakeradar/pkg/bus"
	"github.com/tinyland-inc/cakeradar/pkg/classifier"
	"github.com/tinyland-inc/cakeradar/pkg/logger"
)

// Outcome is the terminal state of one message's trip through the
// pipeline. Every message reaches exactly one.
type Outcome int

const (
	OutcomeDuplicate Outcome = iota
	OutcomeThreadReply
	OutcomeSourceChannel
	OutcomeNoKeyword
	OutcomeBelowThreshold
	OutcomeUnroutable
	OutcomeAlerted
	OutcomeFalseAlarm
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeThreadReply:
		return "thread_reply"
	case OutcomeSourceChannel:
		return "source_channel"
	case OutcomeNoKeyword:
		return "no_keyword"
	case OutcomeBelowThreshold:
		return "below_threshold"
	case OutcomeUnroutable:
		return "unroutable"
	case OutcomeAlerted:
		return "alerted"
	case OutcomeFalseAlarm:
		return "false_alarm"
	default:
		return "unknown"
	}
}

// Options configures a Pipeline. Keywords must already include plural
// forms (see WithPlurals).
type Options struct {
	SourceChannelID   string
	AlertChannel      string
	FalseAlarmChannel string
	Threshold         int
	Keywords          []string
	ArchiveBaseURL    string
	ClassifyTimeout   time.Duration
}

// Pipeline routes inbound messages. The Deduplicator and Stats are the
// only shared mutable state; everything else is read-only after New.
type Pipeline struct {
	opts       Options
	dedupe     *Deduplicator
	classifier classifier.Client
	bus        *bus.MessageBus
	stats      *Stats
}

func NewPipeline(opts Options, dedupe *Deduplicator, cls classifier.Client, mb *bus.MessageBus, stats *Stats) *Pipeline {
	if opts.ClassifyTimeout <= 0 {
		opts.ClassifyTimeout = 10 * time.Second
	}
	if opts.ArchiveBaseURL == "" {
		opts.ArchiveBaseURL = "https://slack.com/archives"
	}
	return &Pipeline{
		opts:       opts,
		dedupe:     dedupe,
		classifier: cls,
		bus:        mb,
		stats:      stats,
	}
}

// Run consumes inbound messages until the context is canceled or the bus
// closes, processing each message in its own goroutine.
func (p *Pipeline) Run(ctx context.Context) {
	for {
		msg, ok := p.bus.ConsumeInbound(ctx)
		if !ok {
			return
		}
		go p.Process(ctx, msg)
	}
}

// Process runs one message through the full decision pipeline and returns
// its terminal outcome. It never returns an error: classifier and post
// failures are logged and degrade to silence.
func (p *Pipeline) Process(ctx context.Context, msg bus.InboundMessage) Outcome {
	id := uuid.NewString()[:8]

	outcome := p.route(ctx, id, msg)
	p.stats.Record(outcome)
	logger.InfoCF("radar", "Message resolved", map[string]any{
		"id":      id,
		"channel": msg.ChannelID,
		"ts":      msg.Timestamp,
		"outcome": outcome.String(),
	})
	return outcome
}

func (p *Pipeline) route(ctx context.Context, id string, msg bus.InboundMessage) Outcome {
	if p.dedupe.Seen(msg.ChannelID, msg.Timestamp) {
		return OutcomeDuplicate
	}
	if msg.ThreadTS != "" && msg.ThreadTS != msg.Timestamp {
		return OutcomeThreadReply
	}
	if msg.ChannelID == p.opts.SourceChannelID {
		return OutcomeSourceChannel
	}
	if !MatchesKeyword(msg.Text, p.opts.Keywords) {
		return OutcomeNoKeyword
	}

	assessment := p.classify(ctx, id, msg)

	switch {
	case assessment.Verdict == classifier.Unparseable:
		logger.WarnCF("radar", "Classification unroutable", map[string]any{
			"id": id, "channel": msg.ChannelID, "ts": msg.Timestamp,
		})
		return OutcomeUnroutable
	case assessment.Verdict == classifier.Affirmative && assessment.Aggregate > p.opts.Threshold:
		p.post(ctx, id, p.opts.AlertChannel, p.formatAlert(msg, assessment))
		return OutcomeAlerted
	case assessment.Verdict == classifier.Negative:
		// Parseable "no" verdicts go to the false-alarm channel regardless
		// of confidence.
		p.post(ctx, id, p.opts.FalseAlarmChannel, p.formatFalseAlarm(msg, assessment))
		return OutcomeFalseAlarm
	default:
		return OutcomeBelowThreshold
	}
}

func (p *Pipeline) classify(ctx context.Context, id string, msg bus.InboundMessage) Assessment {
	textCtx, cancel := context.WithTimeout(ctx, p.opts.ClassifyTimeout)
	textResult, err := p.classifier.ClassifyText(textCtx, msg.Text)
	cancel()
	if err != nil {
		logger.ErrorCF("classifier", "Text classification failed", map[string]any{
			"id": id, "error": err.Error(),
		})
	}

	var imageResult *classifier.Result
	if msg.HasImages() {
		images := make([]classifier.Image, 0, len(msg.Images))
		for _, img := range msg.Images {
			images = append(images, classifier.Image{MimeType: img.MimeType, Data: img.Data})
		}

		imgCtx, cancel := context.WithTimeout(ctx, p.opts.ClassifyTimeout)
		result, err := p.classifier.ClassifyImages(imgCtx, images)
		cancel()
		if err != nil {
			logger.ErrorCF("classifier", "Image classification failed", map[string]any{
				"id": id, "images": len(images), "error": err.Error(),
			})
		}
		imageResult = &result
	}

	assessment := Combine(textResult, imageResult)
	logger.DebugCF("radar", "Assessment combined", map[string]any{
		"id":        id,
		"verdict":   assessment.Verdict.String(),
		"aggregate": assessment.Aggregate,
	})
	return assessment
}

func (p *Pipeline) post(ctx context.Context, id, channel, text string) {
	if err := p.bus.PublishOutbound(ctx, bus.OutboundMessage{ChannelID: channel, Text: text}); err != nil {
		logger.ErrorCF("radar", "Outbound publish failed", map[string]any{
			"id": id, "channel": channel, "error": err.Error(),
		})
	}
}

func (p *Pipeline) formatAlert(msg bus.InboundMessage, a Assessment) string {
	return formatAssessment(fmt.Sprintf(":green-light-blinker: *<%s|Cake Alert!>*", p.Permalink(msg)), a)
}

func (p *Pipeline) formatFalseAlarm(msg bus.InboundMessage, a Assessment) string {
	return formatAssessment(fmt.Sprintf(":no_entry_sign: *<%s|False alarm>*", p.Permalink(msg)), a)
}

func formatAssessment(header string, a Assessment) string {
	var sb strings.Builder
	sb.WriteString(header)
	if a.ImageScored {
		fmt.Fprintf(&sb, "\n- Text certainty: %d%%", a.TextConfidence)
		fmt.Fprintf(&sb, "\n- Image certainty: %d%%", a.ImageConfidence)
		fmt.Fprintf(&sb, "\n- Combined certainty: %d%%", a.Aggregate)
	} else {
		fmt.Fprintf(&sb, "\n- Certainty: %d%%", a.Aggregate)
	}
	return sb.String()
}

// Permalink builds the archive link for a message: the archive base URL
// joined with the channel id and the timestamp with its decimal point
// removed, e.g. .../C1/p100000 for ts "1000.00".
func (p *Pipeline) Permalink(msg bus.InboundMessage) string {
	ts := strings.ReplaceAll(msg.Timestamp, ".", "")
	return fmt.Sprintf("%s/%s/p%s", strings.TrimRight(p.opts.ArchiveBaseURL, "/"), msg.ChannelID, ts)
}
