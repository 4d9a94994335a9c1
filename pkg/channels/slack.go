package channels

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"github.com/tinyland-inc/cakeradar/pkg/bus"
	"github.com/tinyland-inc/cakeradar/pkg/logger"
)

// maxAttachedImages caps how many attachments are downloaded per message;
// one image is enough to score a cake.
const maxAttachedImages = 4

// SlackChannel receives message events over Socket Mode, downloads image
// attachments with the bot token, and delivers outbound alerts. Slack's
// transport owns request signing; events arriving here are trusted.
type SlackChannel struct {
	*BaseChannel
	botToken string
	appToken string
	api      *slack.Client
	socket   *socketmode.Client
	botUID   string
}

func NewSlackChannel(botToken, appToken string, mb *bus.MessageBus) *SlackChannel {
	return &SlackChannel{
		BaseChannel: NewBaseChannel("slack", mb),
		botToken:    botToken,
		appToken:    appToken,
	}
}

// Start connects to Slack and runs the event and outbound loops until the
// context is canceled.
func (s *SlackChannel) Start(ctx context.Context) error {
	s.api = slack.New(s.botToken, slack.OptionAppLevelToken(s.appToken))

	authResp, err := s.api.AuthTestContext(ctx)
	if err != nil {
		return fmt.Errorf("slack auth: %w", err)
	}
	s.botUID = authResp.UserID
	logger.InfoCF("slack", "Connected", map[string]any{
		"user": authResp.User, "user_id": authResp.UserID,
	})

	s.socket = socketmode.New(s.api)
	s.SetRunning(true)

	go s.eventLoop(ctx)
	go s.outboundLoop(ctx)

	go func() {
		if err := s.socket.RunContext(ctx); err != nil && ctx.Err() == nil {
			logger.ErrorCF("slack", "Socket mode terminated", map[string]any{"error": err.Error()})
		}
		s.SetRunning(false)
	}()

	return nil
}

func (s *SlackChannel) Stop(ctx context.Context) error {
	s.SetRunning(false)
	return nil
}

func (s *SlackChannel) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-s.socket.Events:
			if !ok {
				return
			}
			switch evt.Type {
			case socketmode.EventTypeEventsAPI:
				apiEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
				if !ok {
					continue
				}
				s.socket.Ack(*evt.Request)
				s.handleEventsAPI(ctx, apiEvent)
			default:
				// Ack everything else to keep the socket healthy.
				if evt.Request != nil {
					s.socket.Ack(*evt.Request)
				}
			}
		}
	}
}

func (s *SlackChannel) handleEventsAPI(ctx context.Context, event slackevents.EventsAPIEvent) {
	if event.Type != slackevents.CallbackEvent {
		return
	}
	ev, ok := event.InnerEvent.Data.(*slackevents.MessageEvent)
	if !ok {
		return
	}
	if !wantsMessage(ev, s.botUID) {
		return
	}

	msg := bus.InboundMessage{
		ChannelID: ev.Channel,
		Timestamp: ev.TimeStamp,
		ThreadTS:  ev.ThreadTimeStamp,
		SenderID:  ev.User,
		Text:      ev.Text,
		Images:    s.fetchImages(ctx, messageFiles(ev)),
	}

	if err := s.Bus().PublishInbound(ctx, msg); err != nil {
		logger.ErrorCF("slack", "Inbound publish failed", map[string]any{
			"channel": ev.Channel, "ts": ev.TimeStamp, "error": err.Error(),
		})
	}
}

// wantsMessage filters out the bot's own output, other bots, and
// edit/delete subtypes. file_share is the one subtype let through:
// uploads arrive under it and carry the attachments the vision
// classifier needs.
func wantsMessage(ev *slackevents.MessageEvent, botUID string) bool {
	if ev.User == botUID || ev.BotID != "" {
		return false
	}
	return ev.SubType == "" || ev.SubType == "file_share"
}

// messageFiles returns the attachments of a message event. The event
// unmarshaller mirrors the payload into the normalized Message field,
// which is where the file list lives.
func messageFiles(ev *slackevents.MessageEvent) []slack.File {
	if ev.Message == nil {
		return nil
	}
	return ev.Message.Files
}

// fetchImages downloads image attachments with the bot token and returns
// them as raw bytes. Slack's private file URLs are useless to the
// classifier, so the payload has to travel with the message.
func (s *SlackChannel) fetchImages(ctx context.Context, files []slack.File) []bus.ImageAttachment {
	var images []bus.ImageAttachment
	for _, f := range files {
		if !IsImageMimetype(f.Mimetype) {
			continue
		}
		if len(images) == maxAttachedImages {
			break
		}

		var buf bytes.Buffer
		if err := s.api.GetFileContext(ctx, f.URLPrivateDownload, &buf); err != nil {
			logger.WarnCF("slack", "Image download failed", map[string]any{
				"file": f.ID, "error": err.Error(),
			})
			continue
		}
		images = append(images, bus.ImageAttachment{
			MimeType: f.Mimetype,
			Data:     buf.Bytes(),
		})
	}
	return images
}

func (s *SlackChannel) outboundLoop(ctx context.Context) {
	for {
		msg, ok := s.Bus().SubscribeOutbound(ctx)
		if !ok {
			return
		}
		_, _, err := s.api.PostMessageContext(ctx, msg.ChannelID, slack.MsgOptionText(msg.Text, false))
		if err != nil {
			// Destination unreachable must never abort processing of
			// subsequent messages.
			logger.ErrorCF("slack", "Post failed", map[string]any{
				"channel": msg.ChannelID, "error": err.Error(),
			})
			continue
		}
		logger.InfoCF("slack", "Alert posted", map[string]any{"channel": msg.ChannelID})
	}
}

// IsImageMimetype reports whether a Slack file attachment is an image.
func IsImageMimetype(mimetype string) bool {
	return strings.HasPrefix(mimetype, "image/")
}
