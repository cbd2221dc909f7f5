package logic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SIHalev/todo-notes/lib/models"
)

type mockTodoRepository struct {
	mock.Mock
}

func (m *mockTodoRepository) GetAllTodos(ctx context.Context, userID string) ([]models.TodoItem, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.TodoItem), args.Error(1)
}

func (m *mockTodoRepository) CreateTodo(ctx context.Context, item models.TodoItem) (models.TodoItem, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(models.TodoItem), args.Error(1)
}

func (m *mockTodoRepository) UpdateTodo(ctx context.Context, userID, todoID string, update models.TodoUpdate) error {
	args := m.Called(ctx, userID, todoID, update)
	return args.Error(0)
}

func (m *mockTodoRepository) UpdateTodoAttachURL(ctx context.Context, userID, todoID, attachmentURL string) error {
	args := m.Called(ctx, userID, todoID, attachmentURL)
	return args.Error(0)
}

func (m *mockTodoRepository) DeleteTodo(ctx context.Context, userID, todoID string) error {
	args := m.Called(ctx, userID, todoID)
	return args.Error(0)
}

func (m *mockTodoRepository) GetTodosByDeadline(ctx context.Context, dueDate string) ([]models.TodoItem, error) {
	args := m.Called(ctx, dueDate)
	return args.Get(0).([]models.TodoItem), args.Error(1)
}

type mockImageRepository struct {
	mock.Mock
}

func (m *mockImageRepository) GetImageUploadURL(ctx context.Context, imageID string) (string, error) {
	args := m.Called(ctx, imageID)
	return args.String(0), args.Error(1)
}

func (m *mockImageRepository) GetImageAttachmentURL(imageID string) string {
	return m.Called(imageID).String(0)
}

func (m *mockImageRepository) GetValidatedAttachmentURL(imageID string) string {
	return m.Called(imageID).String(0)
}

func (m *mockImageRepository) GetImageAttachmentBody(ctx context.Context, imageID string) ([]byte, error) {
	args := m.Called(ctx, imageID)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockImageRepository) PutValidatedAttachment(ctx context.Context, imageID string, body []byte) error {
	args := m.Called(ctx, imageID, body)
	return args.Error(0)
}

func (m *mockImageRepository) DeleteImageAttachment(ctx context.Context, imageID string) error {
	args := m.Called(ctx, imageID)
	return args.Error(0)
}

func (m *mockImageRepository) DeleteValidatedAttachment(ctx context.Context, imageID string) error {
	args := m.Called(ctx, imageID)
	return args.Error(0)
}

type mockModeration struct {
	mock.Mock
}

func (m *mockModeration) IsImageSafe(ctx context.Context, body []byte) (bool, error) {
	args := m.Called(ctx, body)
	return args.Bool(0), args.Error(1)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, message models.EmailMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

type serviceMocks struct {
	todos      *mockTodoRepository
	images     *mockImageRepository
	moderation *mockModeration
	email      *mockSender
}

func newTestService() (*TodoService, *serviceMocks) {
	mocks := &serviceMocks{
		todos:      &mockTodoRepository{},
		images:     &mockImageRepository{},
		moderation: &mockModeration{},
		email:      &mockSender{},
	}
	service := &TodoService{
		Todos:       mocks.todos,
		Images:      mocks.images,
		Moderation:  mocks.moderation,
		Email:       mocks.email,
		FromAddress: "notifications@todo-notes.example.com",
		Logger:      logrus.New(),
	}
	return service, mocks
}

func Test_GetAllTodos_DelegatesToStore(t *testing.T) {
	service, mocks := newTestService()
	stored := []models.TodoItem{{UserID: "user-1", TodoID: "todo-1", Name: "buy milk"}}
	mocks.todos.On("GetAllTodos", mock.Anything, "user-1").Return(stored, nil)

	items, err := service.GetAllTodos(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, stored, items)
	mocks.todos.AssertExpectations(t)
}

func Test_CreateTodo_FillsDefaults(t *testing.T) {
	service, mocks := newTestService()
	mocks.todos.On("CreateTodo", mock.Anything, mock.AnythingOfType("models.TodoItem")).
		Return(models.TodoItem{}, nil)

	_, err := service.CreateTodo(context.Background(), "user-1", "user@example.com", models.CreateTodoRequest{
		Name:    "buy milk",
		DueDate: "2024-01-01",
	})

	require.NoError(t, err)
	require.Len(t, mocks.todos.Calls, 1)
	created := mocks.todos.Calls[0].Arguments.Get(1).(models.TodoItem)

	assert.Equal(t, "user-1", created.UserID)
	assert.Equal(t, "buy milk", created.Name)
	assert.Equal(t, "2024-01-01", created.DueDate)
	assert.Equal(t, "user@example.com", created.Email)
	assert.False(t, created.Done)
	assert.Nil(t, created.AttachmentURL)

	_, err = uuid.Parse(created.TodoID)
	assert.NoError(t, err)

	createdAt, err := time.Parse(time.RFC3339, created.CreatedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), createdAt, time.Minute)
}

func Test_CreateTodo_GeneratesUniqueIDs(t *testing.T) {
	service, mocks := newTestService()
	mocks.todos.On("CreateTodo", mock.Anything, mock.AnythingOfType("models.TodoItem")).
		Return(models.TodoItem{}, nil)

	_, err := service.CreateTodo(context.Background(), "user-1", "", models.CreateTodoRequest{Name: "first"})
	require.NoError(t, err)
	_, err = service.CreateTodo(context.Background(), "user-1", "", models.CreateTodoRequest{Name: "second"})
	require.NoError(t, err)

	first := mocks.todos.Calls[0].Arguments.Get(1).(models.TodoItem)
	second := mocks.todos.Calls[1].Arguments.Get(1).(models.TodoItem)
	assert.NotEqual(t, first.TodoID, second.TodoID)
}

func Test_MakeUploadURL_RecordsValidatedURL(t *testing.T) {
	service, mocks := newTestService()
	mocks.images.On("GetImageUploadURL", mock.Anything, "todo-1").
		Return("https://todos-images.s3.amazonaws.com/todo-1?signature=abc", nil)
	mocks.images.On("GetValidatedAttachmentURL", "todo-1").
		Return("https://todos-images-validated.s3.amazonaws.com/todo-1")
	mocks.todos.On("UpdateTodoAttachURL", mock.Anything, "user-1", "todo-1",
		"https://todos-images-validated.s3.amazonaws.com/todo-1").Return(nil)

	uploadURL, err := service.MakeUploadURL(context.Background(), "user-1", "todo-1")

	require.NoError(t, err)
	assert.Equal(t, "https://todos-images.s3.amazonaws.com/todo-1?signature=abc", uploadURL)
	mocks.todos.AssertExpectations(t)
	mocks.images.AssertExpectations(t)
}

func Test_MakeUploadURL_PresignError(t *testing.T) {
	service, mocks := newTestService()
	mocks.images.On("GetImageUploadURL", mock.Anything, "todo-1").
		Return("", errors.New("presign failed"))

	_, err := service.MakeUploadURL(context.Background(), "user-1", "todo-1")

	assert.EqualError(t, err, "presign failed")
	mocks.todos.AssertNotCalled(t, "UpdateTodoAttachURL")
}

func Test_UpdateTodo_MapsRequest(t *testing.T) {
	service, mocks := newTestService()
	mocks.todos.On("UpdateTodo", mock.Anything, "user-1", "todo-1", models.TodoUpdate{
		Name:    "buy milk",
		DueDate: "2024-01-01",
		Done:    true,
	}).Return(nil)

	err := service.UpdateTodo(context.Background(), "user-1", "todo-1", models.UpdateTodoRequest{
		Name:    "buy milk",
		DueDate: "2024-01-01",
		Done:    true,
	})

	require.NoError(t, err)
	mocks.todos.AssertExpectations(t)
}

func Test_DeleteTodo_DelegatesToStore(t *testing.T) {
	service, mocks := newTestService()
	mocks.todos.On("DeleteTodo", mock.Anything, "user-1", "todo-1").Return(nil)

	err := service.DeleteTodo(context.Background(), "user-1", "todo-1")

	require.NoError(t, err)
	mocks.todos.AssertExpectations(t)
}

func Test_ValidateImage_SafeImagePromoted(t *testing.T) {
	service, mocks := newTestService()
	body := []byte("image-bytes")
	mocks.images.On("GetImageAttachmentBody", mock.Anything, "todo-1").Return(body, nil)
	mocks.moderation.On("IsImageSafe", mock.Anything, body).Return(true, nil)
	mocks.images.On("PutValidatedAttachment", mock.Anything, "todo-1", body).Return(nil)
	mocks.images.On("DeleteImageAttachment", mock.Anything, "todo-1").Return(nil)

	err := service.ValidateImage(context.Background(), "todo-1")

	require.NoError(t, err)
	mocks.images.AssertExpectations(t)
	mocks.moderation.AssertExpectations(t)
}

func Test_ValidateImage_UnsafeImageDiscarded(t *testing.T) {
	service, mocks := newTestService()
	body := []byte("image-bytes")
	mocks.images.On("GetImageAttachmentBody", mock.Anything, "todo-1").Return(body, nil)
	mocks.moderation.On("IsImageSafe", mock.Anything, body).Return(false, nil)
	mocks.images.On("DeleteImageAttachment", mock.Anything, "todo-1").Return(nil)

	err := service.ValidateImage(context.Background(), "todo-1")

	require.NoError(t, err)
	mocks.images.AssertNotCalled(t, "PutValidatedAttachment", mock.Anything, mock.Anything, mock.Anything)
	mocks.images.AssertExpectations(t)
}

func Test_ValidateImage_ModerationError(t *testing.T) {
	service, mocks := newTestService()
	body := []byte("image-bytes")
	mocks.images.On("GetImageAttachmentBody", mock.Anything, "todo-1").Return(body, nil)
	mocks.moderation.On("IsImageSafe", mock.Anything, body).Return(false, errors.New("throttled"))

	err := service.ValidateImage(context.Background(), "todo-1")

	assert.EqualError(t, err, "throttled")
	mocks.images.AssertNotCalled(t, "DeleteImageAttachment", mock.Anything, mock.Anything)
}

func Test_SendDeadlineNotifications_EmailsItemsDueToday(t *testing.T) {
	service, mocks := newTestService()
	today := time.Now().UTC().Format("2006-01-02")
	mocks.todos.On("GetTodosByDeadline", mock.Anything, today).Return([]models.TodoItem{
		{UserID: "user-1", TodoID: "todo-1", Name: "buy milk", DueDate: today, Email: "user@example.com"},
		{UserID: "user-2", TodoID: "todo-2", Name: "no address", DueDate: today},
	}, nil)
	mocks.email.On("Send", mock.Anything, models.EmailMessage{
		From:    "notifications@todo-notes.example.com",
		To:      "user@example.com",
		Subject: "TODO Deadline is today",
		Text:    `Your todo "buy milk" is due today.`,
	}).Return(nil)

	err := service.SendDeadlineNotifications(context.Background())

	require.NoError(t, err)
	mocks.email.AssertExpectations(t)
	mocks.email.AssertNumberOfCalls(t, "Send", 1)
}

func Test_SendDeadlineNotifications_SendFailureStopsSweep(t *testing.T) {
	service, mocks := newTestService()
	today := time.Now().UTC().Format("2006-01-02")
	mocks.todos.On("GetTodosByDeadline", mock.Anything, today).Return([]models.TodoItem{
		{UserID: "user-1", TodoID: "todo-1", Name: "buy milk", DueDate: today, Email: "user@example.com"},
	}, nil)
	mocks.email.On("Send", mock.Anything, mock.AnythingOfType("models.EmailMessage")).
		Return(errors.New("delivery failed"))

	err := service.SendDeadlineNotifications(context.Background())

	assert.EqualError(t, err, "delivery failed")
}

func Test_SendDeadlineNotifications_QueryError(t *testing.T) {
	service, mocks := newTestService()
	mocks.todos.On("GetTodosByDeadline", mock.Anything, mock.AnythingOfType("string")).
		Return([]models.TodoItem{}, errors.New("query failed"))

	err := service.SendDeadlineNotifications(context.Background())

	assert.EqualError(t, err, "query failed")
	mocks.email.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}
