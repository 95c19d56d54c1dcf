// Package repository holds helpers shared by the storage backends.
package repository

import (
	"fmt"
	"strings"

	"fanfic/internal/domain/models/fanfic"
)

// Assignment is one "column = value" pair of an UPDATE statement.
type Assignment struct {
	Column string
	Value  interface{}
}

// Placeholder renders the n-th (1-based) bind parameter for a SQL dialect.
type Placeholder func(n int) string

// DollarPlaceholder renders PostgreSQL-style $n parameters.
func DollarPlaceholder(n int) string { return fmt.Sprintf("$%d", n) }

// QuestionPlaceholder renders SQLite-style ? parameters.
func QuestionPlaceholder(int) string { return "?" }

// SetClause renders assignments as "a = $1, b = $2" and returns the bound values.
// Numbering starts at 1; callers append WHERE arguments after the returned values.
func SetClause(assignments []Assignment, ph Placeholder) (string, []interface{}) {
	parts := make([]string, 0, len(assignments))
	args := make([]interface{}, 0, len(assignments))
	for i, a := range assignments {
		parts = append(parts, fmt.Sprintf("%s = %s", a.Column, ph(i+1)))
		args = append(args, a.Value)
	}
	return strings.Join(parts, ", "), args
}

// optionalValue converts a present OptionalString into a bindable value (nil = NULL).
func optionalValue(o fanfic.OptionalString) interface{} {
	if o.Value == nil {
		return nil
	}
	return *o.Value
}

func addOptional(out []Assignment, column string, o fanfic.OptionalString) []Assignment {
	if !o.Present {
		return out
	}
	return append(out, Assignment{Column: column, Value: optionalValue(o)})
}

// FandomAssignments lists the columns a fandom patch touches.
func FandomAssignments(p *fanfic.FandomPatch) []Assignment {
	var out []Assignment
	if p.Name != nil {
		out = append(out, Assignment{Column: "name", Value: *p.Name})
	}
	out = addOptional(out, "canon_type", p.CanonType)
	out = addOptional(out, "description", p.Description)
	return out
}

// StoryAssignments lists the columns a story patch touches.
func StoryAssignments(p *fanfic.StoryPatch) []Assignment {
	var out []Assignment
	out = addOptional(out, "fandom_id", p.FandomID)
	if p.Title != nil {
		out = append(out, Assignment{Column: "title", Value: *p.Title})
	}
	out = addOptional(out, "summary", p.Summary)
	out = addOptional(out, "rating", p.Rating)
	out = addOptional(out, "pairing", p.Pairing)
	out = addOptional(out, "tags", p.Tags)
	out = addOptional(out, "status", p.Status)
	out = addOptional(out, "language", p.Language)
	return out
}

// ChapterAssignments lists the columns a chapter patch touches.
func ChapterAssignments(p *fanfic.ChapterPatch) []Assignment {
	var out []Assignment
	if p.OrderIndex != nil {
		out = append(out, Assignment{Column: "order_index", Value: *p.OrderIndex})
	}
	out = addOptional(out, "title", p.Title)
	out = addOptional(out, "notes", p.Notes)
	if p.Content != nil {
		out = append(out, Assignment{Column: "content", Value: *p.Content})
	}
	return out
}
