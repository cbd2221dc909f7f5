package logic

import (
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/SIHalev/todo-notes/lib/clients"
	"github.com/SIHalev/todo-notes/lib/constants"
	"github.com/SIHalev/todo-notes/lib/data"
	"github.com/SIHalev/todo-notes/lib/email"
	"github.com/SIHalev/todo-notes/lib/recognition"
)

// defaultURLExpirationSeconds applies when SIGNED_URL_EXPIRATION is unset
// or unparsable.
const defaultURLExpirationSeconds = 300

// NewTodoService wires the service against the live AWS clients using the
// environment configuration read at cold start.
func NewTodoService(isLocal bool, logger *logrus.Logger) *TodoService {
	expirationSeconds, err := strconv.Atoi(os.Getenv(constants.SIGNED_URL_EXPIRATION))
	if err != nil || expirationSeconds <= 0 {
		expirationSeconds = defaultURLExpirationSeconds
	}

	s3Client := clients.NewS3Client(isLocal)

	return &TodoService{
		Todos: &data.TodoDao{
			DB:           clients.NewDynamoDBClient(isLocal),
			Table:        os.Getenv(constants.TODOS_TABLE),
			UserIndex:    os.Getenv(constants.INDEX_USER_ID),
			DueDateIndex: os.Getenv(constants.INDEX_DUE_DATE),
			Logger:       logger,
		},
		Images: &data.ImageDao{
			S3:              s3Client,
			Presign:         s3.NewPresignClient(s3Client),
			IncomingBucket:  os.Getenv(constants.TODOS_IMAGES_S3_BUCKET),
			ValidatedBucket: os.Getenv(constants.TODOS_VALIDATED_IMAGES_S3_BUCKET),
			URLExpiration:   time.Duration(expirationSeconds) * time.Second,
			Logger:          logger,
		},
		Moderation: &recognition.Detector{
			Rekognition: clients.NewRekognitionClient(isLocal),
			Logger:      logger,
		},
		Email: email.NewSendGridSender(&data.SecretsDao{
			Secrets:  clients.NewSecretsManagerClient(isLocal),
			SecretID: os.Getenv(constants.EMAIL_SECRET_ID),
			Field:    os.Getenv(constants.EMAIL_SECRET_FIELD),
			Logger:   logger,
		}, logger),
		FromAddress: os.Getenv(constants.EMAIL_FROM_ADDRESS),
		Logger:      logger,
	}
}
