package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/match"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier posts match announcements to a Slack channel.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
	loc       *time.Location
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics, loc *time.Location) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics, loc)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics, loc *time.Location) *Notifier {
	if loc == nil {
		loc = time.UTC
	}
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
		loc:       loc,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendMatchCreated(m *match.Match, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatMatchCreated(m), dryRun)
	return err
}

func (s *Notifier) SendMatchCancelled(m *match.Match, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatMatchCancelled(m), dryRun)
	return err
}

func (s *Notifier) startTime(m *match.Match) string {
	return m.StartsAt.In(s.loc).Format("Monday 02 Jan, 15:04")
}

// formatMatchCreated creates the Slack message for a newly created match using Block Kit.
func (s *Notifier) formatMatchCreated(m *match.Match) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("New %s match!", m.Sport), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	details := []string{
		fmt.Sprintf("Court: %s", m.CourtName),
		fmt.Sprintf("Time: %s (%s h)", s.startTime(m), formatHours(m.DurationHours)),
		fmt.Sprintf("Spots left: %d of %d", m.SpotsLeft(), m.MaxPlayers),
		fmt.Sprintf("Price per player: %d", m.PricePerPlayer),
	}
	if m.Location.Address != "" {
		details = append(details, fmt.Sprintf("Address: %s", m.Location.Address))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(details, "\n"), true, false), nil, nil))

	if m.Description != "" {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", m.Description, true, false), nil, nil))
	}

	captain := m.CaptainName
	if captain == "" {
		captain = m.CaptainID
	}
	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject("plain_text", fmt.Sprintf("Captain: %s", captain), true, false),
	))

	return slack.NewBlockMessage(blocks...)
}

// formatMatchCancelled creates the Slack message for a cancelled match using Block Kit.
func (s *Notifier) formatMatchCancelled(m *match.Match) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "Match cancelled", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Court: %s\nTime: %s", m.CourtName, s.startTime(m))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	if len(m.Players) > 1 {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject("plain_text", fmt.Sprintf("%d players were signed up", len(m.Players)), true, false),
		))
	}

	return slack.NewBlockMessage(blocks...)
}

func formatHours(h float64) string {
	if h == float64(int(h)) {
		return fmt.Sprintf("%d", int(h))
	}
	return fmt.Sprintf("%.1f", h)
}
