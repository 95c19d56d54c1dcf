package handler

import (
	"fmt"

	"fanfic/internal/domain"
	"fanfic/internal/domain/models/fanfic"
	"fanfic/internal/httputil"
)

// PATCH bodies. Fields absent from the JSON are left untouched, null clears
// nullable columns, and null on a required column is rejected.

type updateFandomBody struct {
	Name        httputil.OptionalString `json:"name"`
	CanonType   httputil.OptionalString `json:"canonType"`
	Description httputil.OptionalString `json:"description"`
}

func (b *updateFandomBody) toPatch() (fanfic.FandomPatch, error) {
	if b.Name.IsNull() {
		return fanfic.FandomPatch{}, nullField("name")
	}
	return fanfic.FandomPatch{
		Name:        b.Name.Value,
		CanonType:   toDomainOptional(b.CanonType),
		Description: toDomainOptional(b.Description),
	}, nil
}

type updateStoryBody struct {
	FandomID httputil.OptionalString `json:"fandomId"`
	Title    httputil.OptionalString `json:"title"`
	Summary  httputil.OptionalString `json:"summary"`
	Rating   httputil.OptionalString `json:"rating"`
	Pairing  httputil.OptionalString `json:"pairing"`
	Tags     httputil.OptionalString `json:"tags"`
	Status   httputil.OptionalString `json:"status"`
	Language httputil.OptionalString `json:"language"`
}

func (b *updateStoryBody) toPatch() (fanfic.StoryPatch, error) {
	if b.Title.IsNull() {
		return fanfic.StoryPatch{}, nullField("title")
	}
	return fanfic.StoryPatch{
		FandomID: toDomainOptional(b.FandomID),
		Title:    b.Title.Value,
		Summary:  toDomainOptional(b.Summary),
		Rating:   toDomainOptional(b.Rating),
		Pairing:  toDomainOptional(b.Pairing),
		Tags:     toDomainOptional(b.Tags),
		Status:   toDomainOptional(b.Status),
		Language: toDomainOptional(b.Language),
	}, nil
}

type updateChapterBody struct {
	OrderIndex httputil.OptionalInt    `json:"orderIndex"`
	Title      httputil.OptionalString `json:"title"`
	Notes      httputil.OptionalString `json:"notes"`
	Content    httputil.OptionalString `json:"content"`
}

func (b *updateChapterBody) toPatch() (fanfic.ChapterPatch, error) {
	if b.OrderIndex.IsNull() {
		return fanfic.ChapterPatch{}, nullField("orderIndex")
	}
	if b.Content.IsNull() {
		return fanfic.ChapterPatch{}, nullField("content")
	}
	return fanfic.ChapterPatch{
		OrderIndex: b.OrderIndex.Value,
		Title:      toDomainOptional(b.Title),
		Notes:      toDomainOptional(b.Notes),
		Content:    b.Content.Value,
	}, nil
}

func toDomainOptional(o httputil.OptionalString) fanfic.OptionalString {
	return fanfic.OptionalString{Present: o.Present, Value: o.Value}
}

func nullField(name string) error {
	return &domain.ValidationError{Message: fmt.Sprintf("%s: cannot be null", name)}
}
