package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/hiroq/pipet/pkg/domain/interfaces"
	"github.com/hiroq/pipet/pkg/domain/model"
)

type slackAction struct {
	httpClient *http.Client
}

// NewSlackAction creates a new SlackAction instance
func NewSlackAction() interfaces.ActionExecutor {
	return &slackAction{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Execute sends a notification to Slack
func (s *slackAction) Execute(ctx context.Context, action model.Action, event model.PipelineEvent) error {
	logger := ctxlog.From(ctx)

	slackAction, err := action.ToSlackAction()
	if err != nil {
		return goerr.Wrap(err, "failed to parse slack action")
	}

	// The webhook URL usually lives in an environment variable
	webhookURL := os.ExpandEnv(slackAction.WebhookURL)
	if webhookURL == "" {
		return goerr.New("webhook URL is empty after expansion")
	}

	message, err := s.buildMessage(slackAction.Message, event)
	if err != nil {
		return goerr.Wrap(err, "failed to build message")
	}

	payload := model.SlackPayload{
		Text: message,
	}
	if slackAction.UserName != "" {
		payload.UserName = slackAction.UserName
	}
	if slackAction.IconEmoji != "" {
		payload.IconEmoji = slackAction.IconEmoji
	}
	if slackAction.Color != "" {
		payload.Attachments = []model.SlackAttachment{
			{
				Color:     slackAction.Color,
				Text:      message,
				Footer:    fmt.Sprintf("pipet - %s", event.Pipeline),
				Timestamp: time.Now().Unix(),
			},
		}
		// Clear main text to avoid duplication
		payload.Text = ""
	}

	// Send to Slack with retry
	for attempt := 0; attempt < 3; attempt++ {
		err = s.sendToSlack(ctx, webhookURL, payload)
		if err == nil {
			return nil
		}

		// Rate limited: exponential backoff 1s, 2s
		if strings.Contains(err.Error(), "429") && attempt < 2 {
			backoff := time.Duration(1<<attempt) * time.Second
			logger.Warn("Rate limited by Slack, retrying",
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			time.Sleep(backoff)
			continue
		}

		// Other non-4xx errors: retry once
		if attempt == 0 && !strings.Contains(err.Error(), "4") {
			time.Sleep(1 * time.Second)
			continue
		}

		break
	}

	return goerr.Wrap(err, "failed to send slack notification")
}

// buildMessage processes the message template
func (s *slackAction) buildMessage(messageTemplate string, event model.PipelineEvent) (string, error) {
	data := struct {
		Pipeline  string
		Step      string
		ExitCode  int
		EventType string
		Duration  time.Duration
		Timestamp time.Time
	}{
		Pipeline:  event.Pipeline,
		Step:      event.Step,
		ExitCode:  event.ExitCode,
		EventType: string(event.Type),
		Duration:  event.Duration,
		Timestamp: time.Now(),
	}

	tmpl, err := template.New("message").Parse(messageTemplate)
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse message template")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to execute message template")
	}

	return buf.String(), nil
}

// sendToSlack sends the payload to Slack webhook
func (s *slackAction) sendToSlack(ctx context.Context, webhookURL string, payload model.SlackPayload) error {
	logger := ctxlog.From(ctx)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal slack payload")
	}

	logger.Debug("Sending to Slack",
		slog.String("webhook_url", maskWebhookURL(webhookURL)),
		slog.String("payload", string(jsonData)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return goerr.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var respBody bytes.Buffer
		_, _ = respBody.ReadFrom(resp.Body) // Best effort to read response
		return goerr.New(fmt.Sprintf("slack webhook returned status %d: %s", resp.StatusCode, respBody.String()))
	}

	return nil
}

// maskWebhookURL masks the webhook URL for logging
func maskWebhookURL(url string) string {
	if strings.Contains(url, "hooks.slack.com") {
		parts := strings.Split(url, "/")
		if len(parts) > 3 {
			for i := len(parts) - 3; i < len(parts); i++ {
				if len(parts[i]) > 4 {
					parts[i] = parts[i][:2] + "***"
				}
			}
			return strings.Join(parts, "/")
		}
	}
	if len(url) > 20 {
		return url[:20] + "***"
	}
	return "***"
}
