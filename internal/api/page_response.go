package api

import (
	"time"

	"quicknotes/internal/model"
)

// Flash 類別
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
)

// Flash 為顯示給使用者的一則訊息
type Flash struct {
	Category string `json:"category" example:"error"`
	Message  string `json:"message" example:"Note is too short!"`
}

// UserResponse 不含密碼雜湊
// swagger:model api.UserResponse
type UserResponse struct {
	ID        int       `json:"id" example:"1"`
	Email     string    `json:"email" example:"alice@example.com"`
	FirstName string    `json:"first_name" example:"Alice"`
	CreatedAt time.Time `json:"created_at" example:"2025-05-01T15:04:05Z"`
}

// NoteResponse
// swagger:model api.NoteResponse
type NoteResponse struct {
	ID        int       `json:"id" example:"1"`
	Content   string    `json:"content" example:"buy milk"`
	CreatedAt time.Time `json:"created_at" example:"2025-05-01T15:04:05Z"`
}

// PageResponse 是表單頁面的 JSON 呈現：訊息、當前使用者與（首頁時）筆記列表
// swagger:model api.PageResponse
type PageResponse struct {
	Flashes []Flash        `json:"flashes"`
	User    *UserResponse  `json:"user"`
	Notes   []NoteResponse `json:"notes,omitempty"`
}

// NewUserResponse 將 model.User 轉為回應；nil 表示未登入
func NewUserResponse(u *model.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		CreatedAt: u.CreatedAt,
	}
}

// NewNoteResponses 保留輸入順序
func NewNoteResponses(notes []model.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, NoteResponse{ID: n.ID, Content: n.Content, CreatedAt: n.CreatedAt})
	}
	return out
}
