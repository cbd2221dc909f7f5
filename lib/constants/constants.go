package constants

// Environment variable names read once at Lambda cold start.
const (
	TODOS_TABLE                      = "TODOS_TABLE"
	INDEX_USER_ID                    = "INDEX_USER_ID"
	INDEX_DUE_DATE                   = "INDEX_DUE_DATE"
	TODOS_IMAGES_S3_BUCKET           = "TODOS_IMAGES_S3_BUCKET"
	TODOS_VALIDATED_IMAGES_S3_BUCKET = "TODOS_VALIDATED_IMAGES_S3_BUCKET"
	SIGNED_URL_EXPIRATION            = "SIGNED_URL_EXPIRATION"
	EMAIL_SECRET_ID                  = "EMAIL_SECRET_ID"
	EMAIL_SECRET_FIELD               = "EMAIL_SECRET_FIELD"
	EMAIL_FROM_ADDRESS               = "EMAIL_FROM_ADDRESS"
)
