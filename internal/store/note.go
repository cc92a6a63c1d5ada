package store

import (
	"context"
	"fmt"

	"quicknotes/internal/database"
	"quicknotes/internal/model"
)

// CreateNote 新增筆記，id 與 created_at 由資料庫產生
func CreateNote(ctx context.Context, db database.DB, n *model.Note) (*model.Note, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO notes (content, owner_id)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		n.Content,
		n.OwnerID,
	)
	if err := row.Scan(&n.ID, &n.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateNote: %w", translate(err))
	}
	return n, nil
}

// ListNotesByOwner 依建立時間由舊到新列出某使用者的筆記
func ListNotesByOwner(ctx context.Context, db database.DB, ownerID int) ([]model.Note, error) {
	rows, err := db.Query(ctx,
		`SELECT id, content, created_at, owner_id
		 FROM notes
		 WHERE owner_id = $1
		 ORDER BY created_at ASC, id ASC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListNotesByOwner: %w", err)
	}
	defer rows.Close()

	notes := []model.Note{}
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.Content, &n.CreatedAt, &n.OwnerID); err != nil {
			return nil, fmt.Errorf("ListNotesByOwner: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListNotesByOwner: %w", err)
	}
	return notes, nil
}

// DeleteNoteOwnedBy 只刪除屬於 ownerID 的筆記。
// 筆記不存在與不屬於呼叫者皆回傳 (false, nil)，兩者無法區分。
func DeleteNoteOwnedBy(ctx context.Context, db database.DB, noteID, ownerID int) (bool, error) {
	tag, err := db.Exec(ctx,
		`DELETE FROM notes WHERE id = $1 AND owner_id = $2`,
		noteID,
		ownerID,
	)
	if err != nil {
		return false, fmt.Errorf("DeleteNoteOwnedBy: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
