package clients

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
)

// NewRekognitionClient creates a Rekognition client used for image
// moderation.
func NewRekognitionClient(isLocal bool) *rekognition.Client {
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
	)
	if err != nil {
		panic("failed to load AWS configuration: " + err.Error())
	}

	if isLocal {
		cfg.BaseEndpoint = aws.String("http://docker.for.mac.host.internal:4566")
	}

	return rekognition.NewFromConfig(cfg)
}
