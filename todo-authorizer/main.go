package main

import (
	"context"
	"os"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"github.com/SIHalev/todo-notes/lib/auth"
	"github.com/SIHalev/todo-notes/lib/util"
)

// Global variables for Lambda cold start optimization
var (
	logger   *logrus.Logger
	isLocal  bool
	verifier *auth.Verifier
)

// Handler verifies the bearer token of an incoming API Gateway request and
// returns the invoke policy decision. Verification failure denies access.
func Handler(ctx context.Context, event events.APIGatewayCustomAuthorizerRequest) (events.APIGatewayCustomAuthorizerResponse, error) {
	logger.WithField("operation", "Handler").Debug("Authorizing a user")

	principalID, err := verifier.VerifyToken(ctx, event.AuthorizationToken)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"error":     err.Error(),
			"operation": "Handler",
		}).Error("User not authorized")
		return policyResponse("user", "Deny"), nil
	}

	logger.WithFields(logrus.Fields{
		"principal_id": principalID,
		"operation":    "Handler",
	}).Debug("User was authorized")

	return policyResponse(principalID, "Allow"), nil
}

func policyResponse(principalID, effect string) events.APIGatewayCustomAuthorizerResponse {
	return events.APIGatewayCustomAuthorizerResponse{
		PrincipalID: principalID,
		PolicyDocument: events.APIGatewayCustomAuthorizerPolicy{
			Version: "2012-10-17",
			Statement: []events.IAMPolicyStatement{
				{
					Action:   []string{"execute-api:Invoke"},
					Effect:   effect,
					Resource: []string{"*"},
				},
			},
		},
	}
}

func init() {
	isLocal, _ = strconv.ParseBool(os.Getenv("IS_LOCAL"))

	logger = logrus.New()
	util.SetLogLevel(logger, os.Getenv("LOG_LEVEL"))
	logger.SetFormatter(&logrus.JSONFormatter{PrettyPrint: isLocal})

	verifier = auth.NewVerifier(logger)
}

func main() {
	lambda.Start(Handler)
}
