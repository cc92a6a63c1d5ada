package api

// swagger:model api.CreateNoteRequest
type CreateNoteRequest struct {
	Note string `form:"note" validate:"min=1,max=10000" example:"buy milk"`
}
