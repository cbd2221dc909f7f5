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

// Handler processes POST /todos requests.
func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.WithFields(logrus.Fields{
		"method":    request.HTTPMethod,
		"path":      request.Path,
		"operation": "Handler",
	}).Debug("Processing create todo request")

	userID, err := auth.GetUserID(request)
	if err != nil {
		logger.WithError(err).Error("Authentication failed")
		return api.ErrorResponse(http.StatusUnauthorized, "Authentication failed", logger), nil
	}

	// The email claim is optional; without it the item simply never gets a
	// deadline reminder.
	userEmail, err := auth.GetUserEmail(request)
	if err != nil {
		logger.WithError(err).Error("Authentication failed")
		return api.ErrorResponse(http.StatusUnauthorized, "Authentication failed", logger), nil
	}

	var createRequest models.CreateTodoRequest
	if err := api.ParseJSONBody(request.Body, &createRequest); err != nil {
		logger.WithError(err).Error("Invalid request body")
		return api.ErrorResponse(http.StatusBadRequest, "Invalid request body", logger), nil
	}
	if validationErrors := api.ValidateStruct(createRequest); validationErrors != nil {
		return api.ValidationErrorResponse("Invalid create todo request", validationErrors, logger), nil
	}

	newTodo, err := todoService.CreateTodo(ctx, userID, userEmail, createRequest)
	if err != nil {
		logger.WithError(err).Error("Failed to create todo")
		return api.ErrorResponse(http.StatusInternalServerError, "Failed to create todo", logger), nil
	}

	return api.SuccessResponse(http.StatusCreated, models.CreateTodoResponse{Item: newTodo}, logger), nil
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
