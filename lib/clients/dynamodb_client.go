package clients

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// NewDynamoDBClient creates a DynamoDB client. Local runs are pointed at
// LocalStack.
func NewDynamoDBClient(isLocal bool) *dynamodb.Client {
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
	)
	if err != nil {
		panic("failed to load AWS configuration: " + err.Error())
	}

	if isLocal {
		return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String("http://docker.for.mac.host.internal:4566")
		})
	}

	return dynamodb.NewFromConfig(cfg)
}
