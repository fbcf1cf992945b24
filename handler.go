package main

import (
	"context"
	"fmt"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	transfer OrderTransfer
	logger   *logrus.Logger
}

func NewHandler(config Config, logger *logrus.Logger) (*Handler, error) {
	sess := session.Must(session.NewSession())
	var audit AuditSink
	if config.AuditEnabled() {
		sink, err := NewCloudWatchAuditSink(cloudwatchlogs.New(sess), LogConfig{
			LogGroupName:  config.AuditLogGroupName,
			LogStreamName: config.AuditLogStreamName,
		}, logger)
		if err != nil {
			return nil, err
		}
		audit = sink
	}
	transfer := NewOrderTransfer(s3.New(sess), config, audit, logger)

	return &Handler{transfer: transfer, logger: logger}, nil
}

// HandleLambdaEvent transfers the object named by the first record of the
// notification. Each order is handled on its own; extra records are ignored.
func (h *Handler) HandleLambdaEvent(ctx context.Context, event events.S3Event) (*TransferResult, error) {
	if len(event.Records) == 0 {
		return nil, fmt.Errorf("event contains no S3 records")
	}
	if len(event.Records) > 1 {
		h.logger.WithField("records", len(event.Records)).Warn("event contains more than one record, only the first is processed")
	}
	record := event.Records[0]
	// keys arrive URL-encoded in notifications
	key, err := url.QueryUnescape(record.S3.Object.Key)
	if err != nil {
		return nil, fmt.Errorf("invalid object key %q: %w", record.S3.Object.Key, err)
	}
	s3Object := S3ObjectInfo{Bucket: record.S3.Bucket.Name, Key: key}

	result, err := h.transfer.Transfer(ctx, s3Object)
	if err != nil {
		return nil, fmt.Errorf("error processing order %s: %w", s3Object.URI(), err)
	}

	return result, nil
}

func (h *Handler) HandleS3URL(ctx context.Context, s3URL string) (*TransferResult, error) {
	bucket, key, err := ParseS3URL(s3URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse S3 URL: %w", err)
	}
	s3Object := S3ObjectInfo{Bucket: bucket, Key: key}

	result, err := h.transfer.Transfer(ctx, s3Object)
	if err != nil {
		return nil, fmt.Errorf("error processing order %s: %w", s3Object.URI(), err)
	}

	return result, nil
}
