package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"github.com/SIHalev/todo-notes/lib/logic"
	"github.com/SIHalev/todo-notes/lib/util"
)

// Global variables for Lambda cold start optimization
var (
	logger      *logrus.Logger
	isLocal     bool
	todoService *logic.TodoService
)

// Handler walks the SNS notification envelope, unwraps the embedded S3
// event records and validates each referenced attachment.
func Handler(ctx context.Context, snsEvent events.SNSEvent) error {
	logger.WithFields(logrus.Fields{
		"records":   len(snsEvent.Records),
		"operation": "Handler",
	}).Debug("Processing storage event notification")

	for _, snsRecord := range snsEvent.Records {
		var s3Event events.S3Event
		if err := json.Unmarshal([]byte(snsRecord.SNS.Message), &s3Event); err != nil {
			return fmt.Errorf("failed to decode embedded storage event: %w", err)
		}

		for _, record := range s3Event.Records {
			key := record.S3.Object.Key
			logger.WithFields(logrus.Fields{
				"key":       key,
				"operation": "Handler",
			}).Info("Validating uploaded image")

			if err := todoService.ValidateImage(ctx, key); err != nil {
				logger.WithFields(logrus.Fields{
					"key":       key,
					"error":     err.Error(),
					"operation": "Handler",
				}).Error("Failed to validate image")
				return err
			}
		}
	}

	return nil
}

func init() {
	isLocal, _ = strconv.ParseBool(os.Getenv("IS_LOCAL"))

	logger = logrus.New()
	util.SetLogLevel(logger, os.Getenv("LOG_LEVEL"))
	logger.SetFormatter(&logrus.JSONFormatter{PrettyPrint: isLocal})

	todoService = logic.NewTodoService(isLocal, logger)
}

func main() {
	lambda.Start(Handler)
}
