package workflows

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var errSlackNotConfigured = errors.New("slack webhook URL is not set")

type SlackPayload struct {
	Text string `json:"text"`
}

// SlackNotifier posts pipeline alerts and digests to a Slack webhook
type SlackNotifier struct {
	webhookURL string
	client     *http.Client
	now        func() time.Time
}

func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		now: time.Now,
	}
}

// PostMessage sends text to the webhook
func (n *SlackNotifier) PostMessage(ctx context.Context, text string) error {
	if n == nil || n.webhookURL == "" {
		return errSlackNotConfigured
	}

	body, err := json.Marshal(SlackPayload{Text: text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// ReportError posts an error message to the alerts channel
func (n *SlackNotifier) ReportError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if n == nil {
		return errSlackNotConfigured
	}

	message := fmt.Sprintf(
		":rotating_light: *Brand Visibility Pipeline Error*\n"+
			"*Time:* %s\n"+
			"*Error:* ```%s```",
		n.now().UTC().Format(time.RFC3339),
		err.Error(),
	)
	return n.PostMessage(ctx, message)
}

// ReportPipelineFailure reports a failed pipeline run for a brand
func (n *SlackNotifier) ReportPipelineFailure(ctx context.Context, pipeline, brandID, brandName, reason string, err error) error {
	if err == nil {
		return nil
	}

	if brandName == "" {
		brandName = "unknown"
	}
	if pipeline == "" {
		pipeline = "unknown"
	}
	if reason == "" {
		reason = "unknown"
	}

	reportErr := fmt.Errorf(
		"pipeline failed: pipeline=%s reason=%s brand_id=%s brand_name=%s error=%v",
		pipeline,
		reason,
		brandID,
		brandName,
		err,
	)
	return n.ReportError(ctx, reportErr)
}

// reportFailure logs the failure and alerts Slack when configured
func reportFailure(ctx context.Context, n *SlackNotifier, pipeline, brandID, brandName, reason string, err error) {
	fmt.Printf("[%s] ❌ %s failed for brand %s: %v\n", pipeline, reason, brandID, err)
	if alertErr := n.ReportPipelineFailure(ctx, pipeline, brandID, brandName, reason, err); alertErr != nil && !errors.Is(alertErr, errSlackNotConfigured) {
		fmt.Printf("[%s] Warning: failed to report to Slack: %v\n", pipeline, alertErr)
	}
}
