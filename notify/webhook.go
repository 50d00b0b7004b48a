package notify

import (
	"context"
	"time"

	flowhttp "github.com/randalmurphal/supportflow/http"
)

// =============================================================================
// WebhookNotifier
// =============================================================================

// WebhookNotifier sends notifications to a generic HTTP webhook.
// Delivery is retried for transient failures.
type WebhookNotifier struct {
	URL     string
	Headers map[string]string

	client *flowhttp.Client
}

// NewWebhookNotifier creates a webhook notifier.
func NewWebhookNotifier(url string, headers map[string]string) *WebhookNotifier {
	return &WebhookNotifier{
		URL:     url,
		Headers: headers,
		client: flowhttp.NewClient(flowhttp.ClientConfig{
			ServiceName: "webhook",
			RetryWait:   200 * time.Millisecond,
		}),
	}
}

// Notify implements Notifier.
func (n *WebhookNotifier) Notify(ctx context.Context, event Event) error {
	return n.client.PostWithHeaders(ctx, n.URL, event, n.Headers)
}
