package api

// swagger:model api.DeleteNoteRequest
type DeleteNoteRequest struct {
	NoteID *int `json:"noteId" validate:"required" example:"1"`
}

// EmptyResponse 為 delete-note 固定回傳的 {}
// swagger:model api.EmptyResponse
type EmptyResponse struct{}
