package usecase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/hiroq/pipet/pkg/domain/model"
	"github.com/hiroq/pipet/pkg/usecase"
)

func TestSlackAction(t *testing.T) {
	event := model.PipelineEvent{
		Type:     model.HookCompleteFailure,
		Pipeline: "build",
		Step:     "lint",
		ExitCode: 2,
	}

	t.Run("Send basic notification", func(t *testing.T) {
		var receivedPayload model.SlackPayload
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.Equal(t, r.Method, http.MethodPost)
			gt.Equal(t, r.Header.Get("Content-Type"), "application/json")

			decoder := json.NewDecoder(r.Body)
			err := decoder.Decode(&receivedPayload)
			gt.NoError(t, err)

			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		action := model.Action{
			Type: "slack",
			Data: map[string]interface{}{
				"webhook_url": server.URL,
				"message":     "pipeline {{.Pipeline}} failed at {{.Step}} (exit {{.ExitCode}})",
			},
		}

		slackAction := usecase.NewSlackAction()
		err := slackAction.Execute(context.Background(), action, event)
		gt.NoError(t, err)

		gt.Equal(t, receivedPayload.Text, "pipeline build failed at lint (exit 2)")
	})

	t.Run("Send notification with color", func(t *testing.T) {
		var receivedPayload model.SlackPayload
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decoder := json.NewDecoder(r.Body)
			err := decoder.Decode(&receivedPayload)
			gt.NoError(t, err)

			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		action := model.Action{
			Type: "slack",
			Data: map[string]interface{}{
				"webhook_url": server.URL,
				"message":     "{{.Pipeline}} failed",
				"color":       "danger",
			},
		}

		slackAction := usecase.NewSlackAction()
		err := slackAction.Execute(context.Background(), action, event)
		gt.NoError(t, err)

		gt.Equal(t, receivedPayload.Text, "")
		gt.Equal(t, 1, len(receivedPayload.Attachments))
		gt.Equal(t, "danger", receivedPayload.Attachments[0].Color)
		gt.Equal(t, "build failed", receivedPayload.Attachments[0].Text)
	})

	t.Run("Webhook URL from environment variable", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		t.Setenv("PIPET_TEST_WEBHOOK", server.URL)

		action := model.Action{
			Type: "slack",
			Data: map[string]interface{}{
				"webhook_url": "$PIPET_TEST_WEBHOOK",
				"message":     "hello",
			},
		}

		slackAction := usecase.NewSlackAction()
		err := slackAction.Execute(context.Background(), action, event)
		gt.NoError(t, err)
		gt.True(t, called)
	})

	t.Run("Server error surfaces after retries", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		action := model.Action{
			Type: "slack",
			Data: map[string]interface{}{
				"webhook_url": server.URL,
				"message":     "hello",
			},
		}

		slackAction := usecase.NewSlackAction()
		err := slackAction.Execute(context.Background(), action, event)
		gt.Error(t, err)
	})

	t.Run("Invalid action data", func(t *testing.T) {
		action := model.Action{
			Type: "slack",
			Data: map[string]interface{}{
				"message": "no webhook",
			},
		}

		slackAction := usecase.NewSlackAction()
		err := slackAction.Execute(context.Background(), action, event)
		gt.Error(t, err)
	})

	t.Run("Invalid message template", func(t *testing.T) {
		action := model.Action{
			Type: "slack",
			Data: map[string]interface{}{
				"webhook_url": "https://example.com/webhook",
				"message":     "{{.Unclosed",
			},
		}

		slackAction := usecase.NewSlackAction()
		err := slackAction.Execute(context.Background(), action, event)
		gt.Error(t, err)
	})
}
