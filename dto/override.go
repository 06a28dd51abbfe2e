package dto

// OverrideRequest is the human-correction intake body. Any subset of
// category/format/tone may be set; reason and author are mandatory.
type OverrideRequest struct {
	Category *string `json:"category,omitempty"`
	Format   *string `json:"format,omitempty"`
	Tone     *string `json:"tone,omitempty"`
	Reason   string  `json:"reason" binding:"required"`
	Author   string  `json:"author" binding:"required"`
}

// OverrideDTO echoes a stored override back to the caller.
type OverrideDTO struct {
	ID        string  `json:"id"`
	EventID   string  `json:"event_id"`
	Category  *string `json:"category,omitempty"`
	Format    *string `json:"format,omitempty"`
	Tone      *string `json:"tone,omitempty"`
	Reason    string  `json:"reason"`
	Author    string  `json:"author"`
	CreatedAt string  `json:"created_at"`
}
