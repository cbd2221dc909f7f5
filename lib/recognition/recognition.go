package recognition

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/sirupsen/logrus"
)

// minConfidence is the moderation label confidence threshold in percent.
const minConfidence = 50

// ModerationInterface yields a safety verdict for raw image bytes
type ModerationInterface interface {
	IsImageSafe(ctx context.Context, body []byte) (bool, error)
}

// RekognitionClientInterface is the subset of the Rekognition client used
// by the detector
type RekognitionClientInterface interface {
	DetectModerationLabels(ctx context.Context, params *rekognition.DetectModerationLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectModerationLabelsOutput, error)
}

// Detector implements ModerationInterface against Rekognition.
type Detector struct {
	Rekognition RekognitionClientInterface
	Logger      *logrus.Logger
}

// IsImageSafe submits the image for moderation and returns true iff no
// moderation label comes back above the confidence threshold.
func (d *Detector) IsImageSafe(ctx context.Context, body []byte) (bool, error) {
	output, err := d.Rekognition.DetectModerationLabels(ctx, &rekognition.DetectModerationLabelsInput{
		Image: &types.Image{
			Bytes: body,
		},
		MinConfidence: aws.Float32(minConfidence),
	})
	if err != nil {
		return false, err
	}

	if len(output.ModerationLabels) == 0 {
		return true, nil
	}

	labels := make([]string, 0, len(output.ModerationLabels))
	for _, label := range output.ModerationLabels {
		labels = append(labels, aws.ToString(label.Name))
	}

	d.Logger.WithFields(logrus.Fields{
		"labels":    labels,
		"operation": "IsImageSafe",
	}).Info("Image rejected by moderation")

	return false, nil
}
