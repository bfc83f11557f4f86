package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SlackNotifier posts messages to a Slack incoming webhook.
type SlackNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewSlackNotifier creates a Slack notifier for the given webhook URL.
func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// SlackWebhookPayload represents the payload structure for Slack webhooks.
type SlackWebhookPayload struct {
	Text        string            `json:"text,omitempty"`
	Attachments []SlackAttachment `json:"attachments,omitempty"`
}

// SlackAttachment represents an attachment in a Slack message.
type SlackAttachment struct {
	Color     string       `json:"color,omitempty"`
	Title     string       `json:"title,omitempty"`
	Text      string       `json:"text,omitempty"`
	Fields    []SlackField `json:"fields,omitempty"`
	Footer    string       `json:"footer,omitempty"`
	Timestamp int64        `json:"ts,omitempty"`
}

// SlackField represents a field in a Slack attachment.
type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// Send posts a notification message to the webhook.
func (s *SlackNotifier) Send(message *Message) error {
	payload := s.createPayload(message)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal Slack payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Petsi-Backend/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func (s *SlackNotifier) createPayload(message *Message) *SlackWebhookPayload {
	attachment := SlackAttachment{
		Color:     colorForType(message.Type),
		Title:     message.Title,
		Text:      message.Text,
		Footer:    "Veterinaria Petsi",
		Timestamp: message.Timestamp.Unix(),
	}
	for key, value := range message.Fields {
		attachment.Fields = append(attachment.Fields, SlackField{
			Title: key,
			Value: value,
			Short: true,
		})
	}

	return &SlackWebhookPayload{
		Attachments: []SlackAttachment{attachment},
	}
}

func colorForType(msgType MessageType) string {
	switch msgType {
	case MessageTypeError:
		return "danger"
	case MessageTypeWarning:
		return "warning"
	case MessageTypeInfo:
		return "#36a64f"
	default:
		return "#808080"
	}
}
