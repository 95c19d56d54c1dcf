package repository

import "fanfic/internal/domain/models/fanfic"

// Column lists shared by every backend. Scan functions read them in this order.
const (
	FandomColumns  = "id, user_id, name, canon_type, description, is_system, created_at, updated_at"
	StoryColumns   = "id, user_id, fandom_id, title, summary, rating, pairing, tags, status, language, created_at, updated_at"
	ChapterColumns = "id, story_id, order_index, title, notes, content, created_at, updated_at"
)

// Scanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...interface{}) error
}

func ScanFandom(row Scanner, f *fanfic.Fandom) error {
	return row.Scan(
		&f.ID,
		&f.UserID,
		&f.Name,
		&f.CanonType,
		&f.Description,
		&f.IsSystem,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
}

func ScanStory(row Scanner, s *fanfic.Story) error {
	return row.Scan(
		&s.ID,
		&s.UserID,
		&s.FandomID,
		&s.Title,
		&s.Summary,
		&s.Rating,
		&s.Pairing,
		&s.Tags,
		&s.Status,
		&s.Language,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
}

func ScanChapter(row Scanner, c *fanfic.Chapter) error {
	return row.Scan(
		&c.ID,
		&c.StoryID,
		&c.OrderIndex,
		&c.Title,
		&c.Notes,
		&c.Content,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}

// FandomArgs returns insert arguments in FandomColumns order.
func FandomArgs(f *fanfic.Fandom) []interface{} {
	return []interface{}{f.ID, f.UserID, f.Name, f.CanonType, f.Description, f.IsSystem, f.CreatedAt, f.UpdatedAt}
}

// StoryArgs returns insert arguments in StoryColumns order.
func StoryArgs(s *fanfic.Story) []interface{} {
	return []interface{}{
		s.ID, s.UserID, s.FandomID, s.Title, s.Summary, s.Rating,
		s.Pairing, s.Tags, s.Status, s.Language, s.CreatedAt, s.UpdatedAt,
	}
}

// ChapterArgs returns insert arguments in ChapterColumns order.
func ChapterArgs(c *fanfic.Chapter) []interface{} {
	return []interface{}{c.ID, c.StoryID, c.OrderIndex, c.Title, c.Notes, c.Content, c.CreatedAt, c.UpdatedAt}
}

// Placeholders renders n bind parameters separated by commas.
func Placeholders(n int, ph Placeholder) string {
	out := ""
	for i := 1; i <= n; i++ {
		if i > 1 {
			out += ", "
		}
		out += ph(i)
	}
	return out
}
