package fanfic

import "time"

// Fandom is a fictional universe that stories are organized under.
// A nil UserID marks a shared fandom; IsSystem marks the pre-seeded catalog.
type Fandom struct {
	ID          string    `json:"id" db:"id"`
	UserID      *string   `json:"userId" db:"user_id"`
	Name        string    `json:"name" db:"name"`
	CanonType   *string   `json:"canonType" db:"canon_type"` // Free text, e.g. "books", "anime"
	Description *string   `json:"description" db:"description"`
	IsSystem    bool      `json:"isSystem" db:"is_system"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// IsOwnedBy reports whether the fandom has an owner and it is userID.
func (f *Fandom) IsOwnedBy(userID string) bool {
	return f.UserID != nil && *f.UserID == userID
}

// IsOwnedByOther reports whether the fandom has an owner other than userID.
func (f *Fandom) IsOwnedByOther(userID string) bool {
	return f.UserID != nil && *f.UserID != userID
}

// FandomPatch holds the fields of a partial fandom update.
// Name cannot be cleared; CanonType and Description can be set to NULL.
type FandomPatch struct {
	Name        *string
	CanonType   OptionalString
	Description OptionalString
}

// IsEmpty reports whether no field is present.
func (p *FandomPatch) IsEmpty() bool {
	return p.Name == nil && !p.CanonType.Present && !p.Description.Present
}
