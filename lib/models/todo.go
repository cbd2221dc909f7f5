package models

// TodoItem is a single todo list entry. The (UserID, TodoID) pair uniquely
// identifies an item; items are only ever listed scoped to their owner.
// AttachmentURL points at the validated image location and stays null until
// an upload URL has been requested for the item.
type TodoItem struct {
	UserID        string  `json:"userId" dynamodbav:"userId"`
	TodoID        string  `json:"todoId" dynamodbav:"todoId"`
	Name          string  `json:"name" dynamodbav:"name"`
	CreatedAt     string  `json:"createdAt" dynamodbav:"createdAt"`
	DueDate       string  `json:"dueDate,omitempty" dynamodbav:"dueDate,omitempty"`
	Done          bool    `json:"done" dynamodbav:"done"`
	AttachmentURL *string `json:"attachmentUrl" dynamodbav:"attachmentUrl"`
	Email         string  `json:"email,omitempty" dynamodbav:"email,omitempty"`
}

// TodoUpdate carries the mutable fields of a todo. All three fields are
// always rewritten on update; the (userId, todoId) key never changes.
type TodoUpdate struct {
	Name    string `json:"name" dynamodbav:"name"`
	DueDate string `json:"dueDate" dynamodbav:"dueDate"`
	Done    bool   `json:"done" dynamodbav:"done"`
}

// EmailMessage is a transient outbound email. It is never persisted.
type EmailMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}
