package repository

import "fmt"

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Prefix   string
	Fandoms  string
	Stories  string
	Chapters string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Prefix:   prefix,
		Fandoms:  fmt.Sprintf("%sfandoms", prefix),
		Stories:  fmt.Sprintf("%sfanfic_stories", prefix),
		Chapters: fmt.Sprintf("%sfanfic_chapters", prefix),
	}
}

// All returns the table names in dependency order (parents first).
func (t *TableNames) All() []string {
	return []string{t.Fandoms, t.Stories, t.Chapters}
}
