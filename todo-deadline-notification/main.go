package main

import (
	"context"
	"net/http"
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

// Handler runs the deadline-notification sweep on the scheduled trigger
// and acknowledges with an empty 204.
func Handler(ctx context.Context, event events.CloudWatchEvent) (events.APIGatewayProxyResponse, error) {
	logger.WithFields(logrus.Fields{
		"event_id":  event.ID,
		"operation": "Handler",
	}).Info("Running deadline notification sweep")

	if err := todoService.SendDeadlineNotifications(ctx); err != nil {
		logger.WithError(err).Error("Deadline notification sweep failed")
		return events.APIGatewayProxyResponse{}, err
	}

	return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent}, nil
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
