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
	"github.com/SIHalev/todo-notes/lib/util"
)

// Global variables for Lambda cold start optimization
var (
	logger      *logrus.Logger
	isLocal     bool
	todoService *logic.TodoService
)

// Handler processes DELETE /todos/{todoId} requests.
func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.WithFields(logrus.Fields{
		"method":      request.HTTPMethod,
		"path":        request.Path,
		"path_params": request.PathParameters,
		"operation":   "Handler",
	}).Debug("Processing delete todo request")

	userID, err := auth.GetUserID(request)
	if err != nil {
		logger.WithError(err).Error("Authentication failed")
		return api.ErrorResponse(http.StatusUnauthorized, "Authentication failed", logger), nil
	}

	todoID := request.PathParameters["todoId"]
	if todoID == "" {
		return api.ErrorResponse(http.StatusBadRequest, "Missing todoId path parameter", logger), nil
	}

	if err := todoService.DeleteTodo(ctx, userID, todoID); err != nil {
		logger.WithError(err).Error("Failed to delete todo")
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to delete todo", logger), nil
	}

	return api.NoContentResponse(), nil
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
