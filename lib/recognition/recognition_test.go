package recognition

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRekognitionClient struct {
	input  *rekognition.DetectModerationLabelsInput
	labels []types.ModerationLabel
	err    error
}

func (m *mockRekognitionClient) DetectModerationLabels(ctx context.Context, params *rekognition.DetectModerationLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectModerationLabelsOutput, error) {
	m.input = params
	if m.err != nil {
		return nil, m.err
	}
	return &rekognition.DetectModerationLabelsOutput{ModerationLabels: m.labels}, nil
}

func Test_IsImageSafe_NoLabels(t *testing.T) {
	client := &mockRekognitionClient{}
	detector := &Detector{Rekognition: client, Logger: logrus.New()}

	isSafe, err := detector.IsImageSafe(context.Background(), []byte("image-bytes"))

	require.NoError(t, err)
	assert.True(t, isSafe)
	assert.Equal(t, []byte("image-bytes"), client.input.Image.Bytes)
	assert.Equal(t, float32(50), aws.ToFloat32(client.input.MinConfidence))
}

func Test_IsImageSafe_LabelsReturned(t *testing.T) {
	client := &mockRekognitionClient{
		labels: []types.ModerationLabel{
			{Name: aws.String("Violence"), Confidence: aws.Float32(87.5)},
		},
	}
	detector := &Detector{Rekognition: client, Logger: logrus.New()}

	isSafe, err := detector.IsImageSafe(context.Background(), []byte("image-bytes"))

	require.NoError(t, err)
	assert.False(t, isSafe)
}

func Test_IsImageSafe_ServiceError(t *testing.T) {
	client := &mockRekognitionClient{err: errors.New("throttled")}
	detector := &Detector{Rekognition: client, Logger: logrus.New()}

	_, err := detector.IsImageSafe(context.Background(), []byte("image-bytes"))

	assert.EqualError(t, err, "throttled")
}
