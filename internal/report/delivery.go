// Package report delivers the finished digest to the messaging channel.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ovoronin/nhk-weather-bot/internal/observability"
)

// ErrEmptyReport means the summary or the image was empty; delivery refuses
// to make a network call for an incomplete report.
var ErrEmptyReport = errors.New("empty summary or image")

// Messenger is the opaque messaging capability.
type Messenger interface {
	SendText(ctx context.Context, text string) error
	SendPhoto(ctx context.Context, image []byte, caption string) error
	Release()
}

// Delivery posts the digest image with its caption, falling back to two
// separate messages when the combined send fails, most commonly because the
// caption exceeds the channel's limit. The cause is not re-inspected.
type Delivery struct {
	messenger Messenger
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewDelivery creates a Delivery.
func NewDelivery(messenger Messenger, logger *slog.Logger, metrics *observability.Metrics) *Delivery {
	return &Delivery{messenger: messenger, logger: logger, metrics: metrics}
}

// Deliver sends the report. A fallback that completes counts as success.
func (d *Delivery) Deliver(ctx context.Context, summary string, image []byte) error {
	if summary == "" || len(image) == 0 {
		return ErrEmptyReport
	}

	err := d.messenger.SendPhoto(ctx, image, summary)
	if err == nil {
		return nil
	}

	d.logger.Warn("combined send failed, falling back to separate messages", "error", err)
	d.metrics.DeliveryFallbacks.Inc()

	if err := d.messenger.SendPhoto(ctx, image, ""); err != nil {
		return fmt.Errorf("fallback photo send: %w", err)
	}
	if err := d.messenger.SendText(ctx, summary); err != nil {
		return fmt.Errorf("fallback text send: %w", err)
	}
	return nil
}

// Release relinquishes the messaging session. The orchestrator calls this
// exactly once per pipeline invocation, success or not.
func (d *Delivery) Release() {
	d.messenger.Release()
}
