package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/SIHalev/todo-notes/lib/data"
	"github.com/SIHalev/todo-notes/lib/email"
	"github.com/SIHalev/todo-notes/lib/models"
	"github.com/SIHalev/todo-notes/lib/recognition"
)

const deadlineSubject = "TODO Deadline is today"

// TodoService composes the store, image store, moderation and email
// clients into the user-facing todo operations.
type TodoService struct {
	Todos       data.TodoRepository
	Images      data.ImageRepository
	Moderation  recognition.ModerationInterface
	Email       email.Sender
	FromAddress string
	Logger      *logrus.Logger
}

// GetAllTodos returns the caller's todos, newest-created first.
func (s *TodoService) GetAllTodos(ctx context.Context, userID string) ([]models.TodoItem, error) {
	return s.Todos.GetAllTodos(ctx, userID)
}

// CreateTodo persists a new item with a generated id and timestamp.
func (s *TodoService) CreateTodo(ctx context.Context, userID, userEmail string, request models.CreateTodoRequest) (models.TodoItem, error) {
	newTodo := models.TodoItem{
		UserID:        userID,
		TodoID:        uuid.New().String(),
		Name:          request.Name,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		DueDate:       request.DueDate,
		Done:          false,
		AttachmentURL: nil,
		Email:         userEmail,
	}

	s.Logger.WithFields(logrus.Fields{
		"user_id":   userID,
		"todo_id":   newTodo.TodoID,
		"operation": "CreateTodo",
	}).Debug("Creating todo")

	return s.Todos.CreateTodo(ctx, newTodo)
}

// MakeUploadURL generates a pre-signed upload URL for the todo's
// attachment and records the post-validation URL on the item. The recorded
// URL resolves only after the client uploads and the image passes
// moderation.
func (s *TodoService) MakeUploadURL(ctx context.Context, userID, todoID string) (string, error) {
	// Attachments reuse the todo id as the object key so the two stay
	// trivially linked.
	imageID := todoID

	uploadURL, err := s.Images.GetImageUploadURL(ctx, imageID)
	if err != nil {
		return "", err
	}

	attachmentURL := s.Images.GetValidatedAttachmentURL(imageID)
	if err := s.Todos.UpdateTodoAttachURL(ctx, userID, todoID, attachmentURL); err != nil {
		return "", err
	}

	return uploadURL, nil
}

// UpdateTodo rewrites the item's name, due date and done flag.
func (s *TodoService) UpdateTodo(ctx context.Context, userID, todoID string, request models.UpdateTodoRequest) error {
	update := models.TodoUpdate{
		Name:    request.Name,
		DueDate: request.DueDate,
		Done:    request.Done,
	}
	return s.Todos.UpdateTodo(ctx, userID, todoID, update)
}

// DeleteTodo removes the item.
func (s *TodoService) DeleteTodo(ctx context.Context, userID, todoID string) error {
	// TODO: remove the stored attachment objects for the deleted todo
	return s.Todos.DeleteTodo(ctx, userID, todoID)
}

// ValidateImage moderates an uploaded attachment: safe images are promoted
// into the validated area, and the incoming object is removed either way,
// so a rejected upload leaves nothing behind.
func (s *TodoService) ValidateImage(ctx context.Context, imageID string) error {
	body, err := s.Images.GetImageAttachmentBody(ctx, imageID)
	if err != nil {
		return err
	}

	isSafe, err := s.Moderation.IsImageSafe(ctx, body)
	if err != nil {
		return err
	}

	if isSafe {
		if err := s.Images.PutValidatedAttachment(ctx, imageID, body); err != nil {
			return err
		}
	}

	s.Logger.WithFields(logrus.Fields{
		"image_id":  imageID,
		"is_safe":   isSafe,
		"operation": "ValidateImage",
	}).Info("Image validation finished")

	return s.Images.DeleteImageAttachment(ctx, imageID)
}

// SendDeadlineNotifications emails the owner of every todo due today, one
// message per matching item that carries an email address.
func (s *TodoService) SendDeadlineNotifications(ctx context.Context) error {
	today := time.Now().UTC().Format("2006-01-02")

	items, err := s.Todos.GetTodosByDeadline(ctx, today)
	if err != nil {
		return err
	}

	sent := 0
	for _, item := range items {
		if item.Email == "" {
			continue
		}

		message := models.EmailMessage{
			From:    s.FromAddress,
			To:      item.Email,
			Subject: deadlineSubject,
			Text:    fmt.Sprintf("Your todo %q is due today.", item.Name),
		}
		if err := s.Email.Send(ctx, message); err != nil {
			return err
		}
		sent++
	}

	s.Logger.WithFields(logrus.Fields{
		"due_date":  today,
		"matched":   len(items),
		"sent":      sent,
		"operation": "SendDeadlineNotifications",
	}).Info("Deadline sweep finished")

	return nil
}
