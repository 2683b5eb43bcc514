package request

// CreateComment is the body for POST /comments.
type CreateComment struct {
	Text     string `json:"text" binding:"required"`
	ItemID   int64  `json:"item_id" binding:"required"`
	ParentID int64  `json:"parent_id"` // 0 for a top-level comment
}

// UpdateComment is the body for PUT /comments/:id.
type UpdateComment struct {
	Text string `json:"text" binding:"required"`
}
