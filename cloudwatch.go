package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/cloudwatchlogs"
	"github.com/sirupsen/logrus"
)

type CloudWatchLogsAPI interface {
	PutLogEvents(*cloudwatchlogs.PutLogEventsInput) (*cloudwatchlogs.PutLogEventsOutput, error)
	CreateLogGroup(*cloudwatchlogs.CreateLogGroupInput) (*cloudwatchlogs.CreateLogGroupOutput, error)
	CreateLogStream(*cloudwatchlogs.CreateLogStreamInput) (*cloudwatchlogs.CreateLogStreamOutput, error)
	DescribeLogGroups(*cloudwatchlogs.DescribeLogGroupsInput) (*cloudwatchlogs.DescribeLogGroupsOutput, error)
	DescribeLogStreams(*cloudwatchlogs.DescribeLogStreamsInput) (*cloudwatchlogs.DescribeLogStreamsOutput, error)
}

type LogConfig struct {
	LogGroupName  string
	LogStreamName string
}

// maxEventSize is the largest log event CloudWatch accepts (1MB, 1_048_576 bytes)
const maxEventSize = 1_048_576

// CloudWatchAuditSink writes each transfer result as a JSON log event.
type CloudWatchAuditSink struct {
	cwClient  CloudWatchLogsAPI
	logConfig LogConfig
	now       func() time.Time
}

func NewCloudWatchAuditSink(client CloudWatchLogsAPI, logConfig LogConfig, logger *logrus.Logger) (*CloudWatchAuditSink, error) {
	if err := EnsureLogGroupAndLogStreamExists(client, logConfig, logger); err != nil {
		return nil, fmt.Errorf("error creating log group and stream: %w", err)
	}

	return &CloudWatchAuditSink{cwClient: client, logConfig: logConfig, now: time.Now}, nil
}

func (s *CloudWatchAuditSink) Record(result *TransferResult) error {
	message, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("error marshaling audit record: %w", err)
	}
	event := &cloudwatchlogs.InputLogEvent{
		Message:   aws.String(string(message)),
		Timestamp: aws.Int64(s.now().UnixMilli()),
	}
	if size := EstimateEventSize(event); size > maxEventSize {
		return fmt.Errorf("audit record of %d bytes exceeds the %d byte limit", size, maxEventSize)
	}

	return SendEventsToCloudWatch(s.cwClient, s.logConfig, []*cloudwatchlogs.InputLogEvent{event})
}

func EnsureLogGroupAndLogStreamExists(client CloudWatchLogsAPI, logConfig LogConfig, logger *logrus.Logger) error {
	err := ensureLogGroupExists(client, logConfig.LogGroupName, logger)
	if err != nil {
		return err
	}
	err = ensureLogStreamExists(client, logConfig.LogGroupName, logConfig.LogStreamName, logger)

	return err
}

func ensureLogGroupExists(client CloudWatchLogsAPI, name string, logger *logrus.Logger) error {
	resp, err := client.DescribeLogGroups(&cloudwatchlogs.DescribeLogGroupsInput{
		LogGroupNamePrefix: aws.String(name),
	})
	if err != nil {
		return err
	}
	for _, logGroup := range resp.LogGroups {
		if aws.StringValue(logGroup.LogGroupName) == name {
			return nil
		}
	}
	logger.WithField("log_group", name).Info("creating log group")
	_, err = client.CreateLogGroup(&cloudwatchlogs.CreateLogGroupInput{
		LogGroupName: aws.String(name),
	})

	return err
}

func ensureLogStreamExists(client CloudWatchLogsAPI, logGroupName, logStreamName string, logger *logrus.Logger) error {
	resp, err := client.DescribeLogStreams(&cloudwatchlogs.DescribeLogStreamsInput{
		LogGroupName:        aws.String(logGroupName),
		LogStreamNamePrefix: aws.String(logStreamName),
	})
	if err != nil {
		return err
	}
	for _, logStream := range resp.LogStreams {
		if aws.StringValue(logStream.LogStreamName) == logStreamName {
			return nil
		}
	}
	logger.WithFields(logrus.Fields{
		"log_group":  logGroupName,
		"log_stream": logStreamName,
	}).Info("creating log stream")
	_, err = client.CreateLogStream(&cloudwatchlogs.CreateLogStreamInput{
		LogGroupName:  aws.String(logGroupName),
		LogStreamName: aws.String(logStreamName),
	})

	return err
}

func SendEventsToCloudWatch(client CloudWatchLogsAPI, logConfig LogConfig, events []*cloudwatchlogs.InputLogEvent) error {
	// Log events in a single PutLogEvents request must be in chronological order
	sort.Slice(events, func(i, j int) bool {
		return aws.Int64Value(events[i].Timestamp) < aws.Int64Value(events[j].Timestamp)
	})
	_, err := client.PutLogEvents(&cloudwatchlogs.PutLogEventsInput{
		LogEvents:     events,
		LogGroupName:  aws.String(logConfig.LogGroupName),
		LogStreamName: aws.String(logConfig.LogStreamName),
	})

	return err
}

func EstimateEventSize(event *cloudwatchlogs.InputLogEvent) int {
	// Request size to CloudWatch is calculated as the sum of all event messages in UTF-8, plus 26 bytes for each log event
	// https://docs.aws.amazon.com/AmazonCloudWatch/latest/logs/cloudwatch_limits_cwl.html
	return len(*event.Message) + 26
}
