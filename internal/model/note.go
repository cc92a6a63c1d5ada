// File: internal/model/note.go
package model

import "time"

// NoteMaxLength 為筆記內容的最大字元數，與 notes.content 欄位一致
const NoteMaxLength = 10000

// Note 的 OwnerID 於建立時決定，之後不可變更
type Note struct {
	ID        int       `db:"id" json:"id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	OwnerID   int       `db:"owner_id" json:"owner_id"`
}
