package store

import (
	"time"

	"quicknotes/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

/* ---------- 假實作 ---------- */

// fakeUserRow 支援兩種 Scan 呼叫場景：
// 1) len(dest)==5 → GetUserByID / GetUserByEmail
// 2) len(dest)==2 → CreateUser (id, created_at)
type fakeUserRow struct {
	scanErr error
	user    *model.User
}

func (r *fakeUserRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	u := r.user
	switch len(dest) {
	case 5:
		*dest[0].(*int) = u.ID
		*dest[1].(*string) = u.Email
		*dest[2].(*string) = u.PasswordHash
		*dest[3].(*string) = u.FirstName
		*dest[4].(*time.Time) = u.CreatedAt
	case 2:
		*dest[0].(*int) = u.ID
		*dest[1].(*time.Time) = u.CreatedAt
	default:
		panic("fakeUserRow.Scan: unexpected dest count")
	}
	return nil
}

// fakeNoteRow 模擬 CreateNote 的 RETURNING id, created_at
type fakeNoteRow struct {
	scanErr   error
	id        int
	createdAt time.Time
}

func (r *fakeNoteRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	*dest[0].(*int) = r.id
	*dest[1].(*time.Time) = r.createdAt
	return nil
}

// fakeNoteRows 實作 pgx.Rows，用於模擬多筆掃描行為。
type fakeNoteRows struct {
	data    []model.Note
	idx     int
	scanErr error
	err     error
	closed  bool
}

func (r *fakeNoteRows) Close()                                       { r.closed = true }
func (r *fakeNoteRows) Err() error                                   { return r.err }
func (r *fakeNoteRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeNoteRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeNoteRows) Next() bool                                   { return r.idx < len(r.data) }
func (r *fakeNoteRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	n := r.data[r.idx]
	r.idx++
	*dest[0].(*int) = n.ID
	*dest[1].(*string) = n.Content
	*dest[2].(*time.Time) = n.CreatedAt
	*dest[3].(*int) = n.OwnerID
	return nil
}
func (r *fakeNoteRows) Values() ([]any, error) { return nil, nil }
func (r *fakeNoteRows) RawValues() [][]byte    { return nil }
func (r *fakeNoteRows) Conn() *pgx.Conn        { return nil }
