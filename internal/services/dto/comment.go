package dto

type CommentRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Comment string `json:"comment"`
	Rating  *int   `json:"rating"`
}

// UpdateCommentRequest - модерация комментария.
type UpdateCommentRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Comment *string `json:"comment"`
	Rating  *int    `json:"rating"`
	Status  *string `json:"status"`
}

type ReplyRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Comment string `json:"comment" validate:"required,max=1000"`
}
