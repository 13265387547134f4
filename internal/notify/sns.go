// internal/notify/sns.go
package notify

import (
	"context"
	"encoding/json"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"estate-pipeline/internal/common/aws"
	"estate-pipeline/internal/common/config"
	commonerrors "estate-pipeline/internal/common/errors"
	"estate-pipeline/internal/models"
)

// TopicNotifier publishes the batch summary as JSON on an SNS topic, for
// downstream automation rather than humans.
type TopicNotifier struct {
	client   *aws.SNSClient
	topicARN string
}

func NewTopicNotifier(ctx context.Context, cfg config.NotificationConfig) (*TopicNotifier, error) {
	client, err := aws.NewSNSClient(ctx, cfg.AWS.Region)
	if err != nil {
		return nil, err
	}
	return &TopicNotifier{client: client, topicARN: cfg.SNS.TopicARN}, nil
}

func (n *TopicNotifier) NotifyBatchFinished(ctx context.Context, result *models.BatchResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return commonerrors.NewNotificationSendFailedError("sns", err)
	}
	input := &sns.PublishInput{
		TopicArn: awssdk.String(n.topicARN),
		Subject:  awssdk.String("content-batch-finished"),
		Message:  awssdk.String(string(payload)),
	}
	if _, err := n.client.Publish(ctx, input); err != nil {
		return commonerrors.NewNotificationSendFailedError("sns", err)
	}
	return nil
}
