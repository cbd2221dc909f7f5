package data

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/sirupsen/logrus"
)

// SecretRepository fetches a single credential field from the secret store
type SecretRepository interface {
	GetSecretField(ctx context.Context) (string, error)
}

// SecretsManagerClientInterface is the subset of the Secrets Manager
// client used by the dao
type SecretsManagerClientInterface interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsDao reads one field out of a JSON secret. Every call hits the
// secret store; callers that want caching own it themselves.
type SecretsDao struct {
	Secrets  SecretsManagerClientInterface
	SecretID string
	Field    string
	Logger   *logrus.Logger
}

func (dao *SecretsDao) GetSecretField(ctx context.Context) (string, error) {
	output, err := dao.Secrets.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(dao.SecretID),
	})
	if err != nil {
		return "", err
	}

	var fields map[string]string
	if err := json.Unmarshal([]byte(aws.ToString(output.SecretString)), &fields); err != nil {
		return "", fmt.Errorf("failed to decode secret %s: %w", dao.SecretID, err)
	}

	value, ok := fields[dao.Field]
	if !ok || value == "" {
		return "", fmt.Errorf("secret %s has no field %s", dao.SecretID, dao.Field)
	}

	dao.Logger.WithFields(logrus.Fields{
		"secret_id": dao.SecretID,
		"operation": "GetSecretField",
	}).Debug("Fetched secret field")

	return value, nil
}
