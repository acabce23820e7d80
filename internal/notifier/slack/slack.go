package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/league-scoreboard/internal/league"
	"github.com/mauv0809/league-scoreboard/internal/metrics"
	"github.com/mauv0809/league-scoreboard/internal/notifier"
	"github.com/slack-go/slack"
)

// leaderboardSize is how many standings rows a result message shows.
const leaderboardSize = 3

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewFormatter creates a Notifier that only answers slash commands. Result
// notifications are skipped because there is no bot token to post with.
func NewFormatter(metrics metrics.Metrics) *Notifier {
	return &Notifier{metrics: metrics}
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
		slack.MsgOptionText(fallbackText(message), false),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendResultNotification(game league.Game, standings []league.Standing, dryRun bool) error {
	if s.api == nil {
		log.Info("No Slack bot token, skipping result", "gameID", game.ID)
		return nil
	}
	msg := s.formatResultNotification(game, standings)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatStandingsResponse formats the league table for a slash command response.
func (s *Notifier) FormatStandingsResponse(standings []league.Standing) (any, error) {
	return s.formatStandings(standings), nil
}

// formatResultNotification creates the Slack message for a recorded game using Block Kit.
func (s *Notifier) formatResultNotification(game league.Game, standings []league.Standing) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", "🏁 Game recorded! 🏁", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	// Score
	scoreText := fmt.Sprintf("*%s* %s – %s *%s*", game.Home, formatScore(game.HomeScore), formatScore(game.AwayScore), game.Away)
	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject("mrkdwn", "*Date:*\n"+formatDate(game.Date), false, false),
	}
	if winner := winnerOf(game); winner != "" {
		fields = append(fields, slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Winner:*\n%s 🏆", winner), false, false))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", scoreText, false, false), fields, nil))

	// Standings
	if len(standings) > 0 {
		blocks = append(blocks, slack.NewDividerBlock())
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", formatLeaderboard(standings), false, false), nil, nil))
	}

	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", "Game ID: "+game.ID, false, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatStandings creates a Slack message with the whole league table.
func (s *Notifier) formatStandings(standings []league.Standing) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", "🏆 League Standings 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(standings) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No teams yet. Add some and start playing!", true, false), nil, nil))
	} else {
		var b strings.Builder
		b.WriteString("```\n")
		fmt.Fprintf(&b, "%-3s %-20s %3s %3s %3s %5s\n", "#", "Team", "P", "W", "L", "Pts")
		for i, st := range standings {
			fmt.Fprintf(&b, "%-3d %-20s %3d %3d %3d %5s\n", i+1, truncate(st.Team, 20), st.Played, st.Wins, st.Losses, formatScore(st.Points))
		}
		b.WriteString("```")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", b.String(), false, false), nil, nil))
	}

	msg := slack.NewBlockMessage(blocks...)
	msg.ResponseType = "in_channel"
	return msg
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func formatLeaderboard(standings []league.Standing) string {
	var b strings.Builder
	b.WriteString("*Standings*")
	for i, st := range standings {
		if i == leaderboardSize {
			break
		}
		var medal string
		switch i {
		case 0:
			medal = "🥇"
		case 1:
			medal = "🥈"
		case 2:
			medal = "🥉"
		}
		fmt.Fprintf(&b, "\n%d. %s %s: %s pts (%d–%d)", i+1, medal, st.Team, formatScore(st.Points), st.Wins, st.Losses)
	}
	return b.String()
}

func winnerOf(game league.Game) string {
	switch {
	case game.HomeScore > game.AwayScore:
		return game.Home
	case game.AwayScore > game.HomeScore:
		return game.Away
	}
	return ""
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Monday 02 Jan 2006")
}

// fallbackText is the notification text shown by clients that cannot render blocks.
func fallbackText(message slack.Message) string {
	for _, block := range message.Blocks.BlockSet {
		if section, ok := block.(*slack.SectionBlock); ok && section.Text != nil {
			return section.Text.Text
		}
	}
	return "Game recorded"
}
