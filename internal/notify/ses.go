// internal/notify/ses.go
package notify

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"estate-pipeline/internal/common/aws"
	"estate-pipeline/internal/common/config"
	commonerrors "estate-pipeline/internal/common/errors"
	"estate-pipeline/internal/models"
)

// EmailNotifier sends the batch summary to the operator mailbox via SES.
type EmailNotifier struct {
	client *aws.SESClient
	from   string
	to     string
}

func NewEmailNotifier(ctx context.Context, cfg config.NotificationConfig) (*EmailNotifier, error) {
	client, err := aws.NewSESClient(ctx, cfg.AWS.Region)
	if err != nil {
		return nil, err
	}
	return &EmailNotifier{
		client: client,
		from:   cfg.Email.FromEmail,
		to:     cfg.Email.ToEmail,
	}, nil
}

func (n *EmailNotifier) NotifyBatchFinished(ctx context.Context, result *models.BatchResult) error {
	input := &ses.SendEmailInput{
		Source: awssdk.String(n.from),
		Destination: &types.Destination{
			ToAddresses: []string{n.to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: awssdk.String("İçerik üretim partisi tamamlandı"),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: awssdk.String(summaryText(result)),
				},
			},
		},
	}
	if _, err := n.client.SendEmail(ctx, input); err != nil {
		return commonerrors.NewNotificationSendFailedError("email", err)
	}
	return nil
}
