package models

// CreateTodoRequest is the body of POST /todos.
type CreateTodoRequest struct {
	Name    string `json:"name" validate:"required"`
	DueDate string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateTodoRequest is the body of PATCH /todos/{todoId}. Every field is
// written through as-is, so callers must always supply all three.
type UpdateTodoRequest struct {
	Name    string `json:"name" validate:"required"`
	DueDate string `json:"dueDate" validate:"required,datetime=2006-01-02"`
	Done    bool   `json:"done"`
}

// TodoListResponse wraps the items returned by GET /todos.
type TodoListResponse struct {
	Items []TodoItem `json:"items"`
}

// CreateTodoResponse wraps the item returned by POST /todos.
type CreateTodoResponse struct {
	Item TodoItem `json:"item"`
}

// UploadURLResponse carries the pre-signed upload URL for an attachment.
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
}
