package fanfic

import "time"

// Story is a fan-authored work, optionally attached to a fandom.
type Story struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	FandomID  *string   `json:"fandomId" db:"fandom_id"` // NULL = no fandom
	Title     string    `json:"title" db:"title"`
	Summary   *string   `json:"summary" db:"summary"`
	Rating    *string   `json:"rating" db:"rating"`
	Pairing   *string   `json:"pairing" db:"pairing"`
	Tags      *string   `json:"tags" db:"tags"` // Serialization is up to the client
	Status    *string   `json:"status" db:"status"`
	Language  *string   `json:"language" db:"language"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// StoryPatch holds the fields of a partial story update.
// A present FandomID with a nil Value detaches the story from its fandom.
type StoryPatch struct {
	FandomID OptionalString
	Title    *string
	Summary  OptionalString
	Rating   OptionalString
	Pairing  OptionalString
	Tags     OptionalString
	Status   OptionalString
	Language OptionalString
}

// IsEmpty reports whether no field is present.
func (p *StoryPatch) IsEmpty() bool {
	return !p.FandomID.Present &&
		p.Title == nil &&
		!p.Summary.Present &&
		!p.Rating.Present &&
		!p.Pairing.Present &&
		!p.Tags.Present &&
		!p.Status.Present &&
		!p.Language.Present
}
