// internal/notify/notifier.go

// Package notify tells operators how a batch run went. Delivery is
// best-effort over SES email and an SNS topic; a failed notification is
// logged and dropped, it never affects the batch outcome.
package notify

import (
	"context"
	"fmt"

	"estate-pipeline/internal/common/config"
	"estate-pipeline/internal/common/logger"
	"estate-pipeline/internal/models"
)

// Notifier delivers a batch summary over one channel.
type Notifier interface {
	NotifyBatchFinished(ctx context.Context, result *models.BatchResult) error
}

// Dispatcher fans a summary out to every configured channel.
type Dispatcher struct {
	notifiers []Notifier
	logger    logger.Logger
}

// NewDispatcher builds the channel list from configuration. With nothing
// enabled it is a no-op, which is the default deployment.
func NewDispatcher(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) *Dispatcher {
	var notifiers []Notifier

	if cfg.Email.Enabled {
		email, err := NewEmailNotifier(ctx, cfg)
		if err != nil {
			log.WithError(err).Warn("email notifier unavailable", nil)
		} else {
			notifiers = append(notifiers, email)
		}
	}
	if cfg.SNS.Enabled {
		topic, err := NewTopicNotifier(ctx, cfg)
		if err != nil {
			log.WithError(err).Warn("sns notifier unavailable", nil)
		} else {
			notifiers = append(notifiers, topic)
		}
	}

	return &Dispatcher{notifiers: notifiers, logger: log}
}

// NotifyBatchFinished sends the summary on every channel, logging failures.
func (d *Dispatcher) NotifyBatchFinished(ctx context.Context, result *models.BatchResult) {
	for _, n := range d.notifiers {
		if err := n.NotifyBatchFinished(ctx, result); err != nil {
			d.logger.WithError(err).Warn("batch notification failed", nil)
		}
	}
}

func summaryText(result *models.BatchResult) string {
	return fmt.Sprintf(
		"İçerik üretim partisi tamamlandı.\n\nOluşturulan: %d\nAtlanan: %d\nHatalı: %d\nToplam: %d\n",
		result.Created, result.Skipped, result.Errors, result.Total,
	)
}
