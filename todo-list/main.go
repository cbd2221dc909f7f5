package main

import (
	"context"
	"net/http"
	"os"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"github.com/SIHalev/todo-notes/lib/api"
	"github.com/SIHalev/todo-notes/lib/auth"
	"github.com/SIHalev/todo-notes/lib/logic"
	"github.com/SIHalev/todo-notes/lib/models"
	"github.com/SIHalev/todo-notes/lib/util"
)

// Global variables for Lambda cold start optimization
var (
	logger      *logrus.Logger
	isLocal     bool
	todoService *logic.TodoService
)

// Handler processes GET /todos requests.
func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.WithFields(logrus.Fields{
		"method":    request.HTTPMethod,
		"path":      request.Path,
		"operation": "Handler",
	}).Debug("Processing list todos request")

	userID, err := auth.GetUserID(request)
	if err != nil {
		logger.WithError(err).Error("Authentication failed")
		return api.ErrorResponse(http.StatusUnauthorized, "Authentication failed", logger), nil
	}

	items, err := todoService.GetAllTodos(ctx, userID)
	if err != nil {
		logger.WithError(err).Error("Failed to list todos")
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to list todos", logger), nil
	}

	return api.SuccessResponse(http.StatusOK, models.TodoListResponse{Items: items}, logger), nil
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
