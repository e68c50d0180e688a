// Package slackfetch is the transport collaborator: it pulls channel history
// from the Slack Web API and converts it into the analyzer's normalized
// Message shape. Retry and rate-limit policy lives here, never in the core.
package slackfetch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/slack-go/slack"

	"github.com/alarmscope/alarmscope/internal/alarms"
)

const pageSize = 200

// Client fetches channel history.
type Client struct {
	api *slack.Client
}

// New builds a client from a bot token.
func New(token string) *Client {
	return &Client{api: slack.New(token)}
}

// FetchMessages returns all channel messages between oldest and latest
// (inclusive), following pagination cursors. Rate-limited calls are retried
// after the interval Slack asks for.
func (c *Client) FetchMessages(ctx context.Context, channelID string, oldest, latest time.Time) ([]alarms.Message, error) {
	var messages []alarms.Message
	cursor := ""

	for {
		params := &slack.GetConversationHistoryParameters{
			ChannelID: channelID,
			Oldest:    fmt.Sprintf("%d", oldest.Unix()),
			Latest:    fmt.Sprintf("%d", latest.Unix()),
			Limit:     pageSize,
			Cursor:    cursor,
			Inclusive: true,
		}

		resp, err := c.api.GetConversationHistoryContext(ctx, params)
		if err != nil {
			var rle *slack.RateLimitedError
			if errors.As(err, &rle) {
				log.Printf("Slack rate limit hit, retrying in %s", rle.RetryAfter)
				select {
				case <-time.After(rle.RetryAfter):
					continue
				case <-ctx.Done():
					return nil, ctx.Err()
				}
			}
			return nil, fmt.Errorf("fetching history for channel %s: %w", channelID, err)
		}

		for _, m := range resp.Messages {
			messages = append(messages, convertMessage(m))
		}

		if !resp.HasMore || resp.ResponseMetaData.NextCursor == "" {
			break
		}
		cursor = resp.ResponseMetaData.NextCursor
	}

	return messages, nil
}

func convertMessage(m slack.Message) alarms.Message {
	out := alarms.Message{
		Text: m.Text,
		Ts:   m.Timestamp,
	}
	for _, att := range m.Attachments {
		out.Attachments = append(out.Attachments, alarms.Attachment{
			Title:    att.Title,
			Fallback: att.Fallback,
			Text:     att.Text,
		})
	}
	for _, f := range m.Files {
		out.Files = append(out.Files, alarms.File{
			ID:        f.ID,
			Name:      f.Name,
			PlainText: f.Preview,
		})
	}
	return out
}
