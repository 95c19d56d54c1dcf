package fanfic

import "time"

// DefaultOrderIndex is assigned to chapters created without an explicit position.
const DefaultOrderIndex = 1

// Chapter is one ordered unit of story content. It has no owner of its own;
// access is always checked through the parent story.
type Chapter struct {
	ID         string    `json:"id" db:"id"`
	StoryID    string    `json:"storyId" db:"story_id"`
	OrderIndex int       `json:"orderIndex" db:"order_index"`
	Title      *string   `json:"title" db:"title"`
	Notes      *string   `json:"notes" db:"notes"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// ChapterPatch holds the fields of a partial chapter update.
type ChapterPatch struct {
	OrderIndex *int
	Title      OptionalString
	Notes      OptionalString
	Content    *string
}

// IsEmpty reports whether no field is present.
func (p *ChapterPatch) IsEmpty() bool {
	return p.OrderIndex == nil && !p.Title.Present && !p.Notes.Present && p.Content == nil
}
