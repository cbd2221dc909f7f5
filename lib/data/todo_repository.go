package data

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"

	"github.com/SIHalev/todo-notes/lib/models"
)

// TodoRepository defines the todo table operations
type TodoRepository interface {
	GetAllTodos(ctx context.Context, userID string) ([]models.TodoItem, error)
	CreateTodo(ctx context.Context, item models.TodoItem) (models.TodoItem, error)
	UpdateTodo(ctx context.Context, userID, todoID string, update models.TodoUpdate) error
	UpdateTodoAttachURL(ctx context.Context, userID, todoID, attachmentURL string) error
	DeleteTodo(ctx context.Context, userID, todoID string) error
	GetTodosByDeadline(ctx context.Context, dateStamp string) ([]models.TodoItem, error)
}

// DynamoDBClientInterface is the subset of the DynamoDB client used by the dao
type DynamoDBClientInterface interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// TodoDao implements TodoRepository against the todos table. The table is
// keyed (userId, todoId); UserIndex orders items by creation time and
// DueDateIndex keys them by calendar due date for the deadline sweep.
type TodoDao struct {
	DB           DynamoDBClientInterface
	Table        string
	UserIndex    string
	DueDateIndex string
	Logger       *logrus.Logger
}

// GetAllTodos returns every todo owned by userID, newest-created first.
func (dao *TodoDao) GetAllTodos(ctx context.Context, userID string) ([]models.TodoItem, error) {
	output, err := dao.DB.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(dao.Table),
		IndexName:              aws.String(dao.UserIndex),
		KeyConditionExpression: aws.String("userId = :userId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}

	items := []models.TodoItem{}
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &items); err != nil {
		return nil, err
	}

	dao.Logger.WithFields(logrus.Fields{
		"user_id":   userID,
		"count":     len(items),
		"operation": "GetAllTodos",
	}).Debug("Fetched todos for user")

	return items, nil
}

// CreateTodo persists a new item. The write is a fresh insert; an existing
// item under the same key fails the condition.
func (dao *TodoDao) CreateTodo(ctx context.Context, item models.TodoItem) (models.TodoItem, error) {
	attributes, err := attributevalue.MarshalMap(item)
	if err != nil {
		return models.TodoItem{}, err
	}

	_, err = dao.DB.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(dao.Table),
		Item:                attributes,
		ConditionExpression: aws.String("attribute_not_exists(todoId)"),
	})
	if err != nil {
		return models.TodoItem{}, err
	}

	return item, nil
}

// UpdateTodo rewrites the name, due date and done fields of the keyed item.
func (dao *TodoDao) UpdateTodo(ctx context.Context, userID, todoID string, update models.TodoUpdate) error {
	_, err := dao.DB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(dao.Table),
		Key:       todoKey(userID, todoID),
		// name is a reserved keyword in DynamoDB expressions
		UpdateExpression: aws.String("SET #name = :name, dueDate = :dueDate, done = :done"),
		ExpressionAttributeNames: map[string]string{
			"#name": "name",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name":    &types.AttributeValueMemberS{Value: update.Name},
			":dueDate": &types.AttributeValueMemberS{Value: update.DueDate},
			":done":    &types.AttributeValueMemberBOOL{Value: update.Done},
		},
	})
	return err
}

// UpdateTodoAttachURL sets the attachment URL of the keyed item.
func (dao *TodoDao) UpdateTodoAttachURL(ctx context.Context, userID, todoID, attachmentURL string) error {
	_, err := dao.DB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(dao.Table),
		Key:              todoKey(userID, todoID),
		UpdateExpression: aws.String("SET attachmentUrl = :attachmentUrl"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":attachmentUrl": &types.AttributeValueMemberS{Value: attachmentURL},
		},
	})
	return err
}

// DeleteTodo removes the keyed item unconditionally.
func (dao *TodoDao) DeleteTodo(ctx context.Context, userID, todoID string) error {
	_, err := dao.DB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(dao.Table),
		Key:       todoKey(userID, todoID),
	})
	return err
}

// GetTodosByDeadline returns every item, across all owners, whose due date
// equals the given calendar date stamp.
func (dao *TodoDao) GetTodosByDeadline(ctx context.Context, dateStamp string) ([]models.TodoItem, error) {
	output, err := dao.DB.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(dao.Table),
		IndexName:              aws.String(dao.DueDateIndex),
		KeyConditionExpression: aws.String("dueDate = :dueDate"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":dueDate": &types.AttributeValueMemberS{Value: dateStamp},
		},
	})
	if err != nil {
		return nil, err
	}

	items := []models.TodoItem{}
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &items); err != nil {
		return nil, err
	}

	dao.Logger.WithFields(logrus.Fields{
		"due_date":  dateStamp,
		"count":     len(items),
		"operation": "GetTodosByDeadline",
	}).Debug("Fetched todos by deadline")

	return items, nil
}

func todoKey(userID, todoID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
		"todoId": &types.AttributeValueMemberS{Value: todoID},
	}
}
