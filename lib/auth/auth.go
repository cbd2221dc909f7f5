package auth

import (
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/golang-jwt/jwt/v5"
)

// TokenFromHeader extracts the raw bearer token from an Authorization
// header value.
func TokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", fmt.Errorf("no authentication header")
	}

	split := strings.Split(authHeader, " ")
	if len(split) != 2 || !strings.EqualFold(split[0], "bearer") {
		return "", fmt.Errorf("invalid authentication header")
	}

	return split[1], nil
}

// GetToken extracts the bearer token from an API Gateway request.
func GetToken(request events.APIGatewayProxyRequest) (string, error) {
	authHeader := request.Headers["Authorization"]
	if authHeader == "" {
		authHeader = request.Headers["authorization"]
	}
	return TokenFromHeader(authHeader)
}

// ParseUserID returns the subject claim of a token without verifying the
// signature. Verification happens upstream in the gateway authorizer.
func ParseUserID(jwtToken string) (string, error) {
	claims, err := decodeClaims(jwtToken)
	if err != nil {
		return "", err
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("token has no subject claim")
	}
	return sub, nil
}

// ParseUserEmail returns the email claim of a token without verifying the
// signature. The claim is optional; an empty string means the identity
// provider did not supply one.
func ParseUserEmail(jwtToken string) (string, error) {
	claims, err := decodeClaims(jwtToken)
	if err != nil {
		return "", err
	}

	email, _ := claims["email"].(string)
	return email, nil
}

// GetUserID extracts the caller's user id from an API Gateway request.
func GetUserID(request events.APIGatewayProxyRequest) (string, error) {
	token, err := GetToken(request)
	if err != nil {
		return "", err
	}
	return ParseUserID(token)
}

// GetUserEmail extracts the caller's email from an API Gateway request.
func GetUserEmail(request events.APIGatewayProxyRequest) (string, error) {
	token, err := GetToken(request)
	if err != nil {
		return "", err
	}
	return ParseUserEmail(token)
}

func decodeClaims(jwtToken string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(jwtToken, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return claims, nil
}
