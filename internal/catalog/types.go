package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"

	models "fanfic/internal/domain/models/fanfic"
)

// namespace scopes the name-derived ids of system fandoms.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("fanfic/system-fandoms"))

// Entry is one system fandom as declared in the embedded YAML.
type Entry struct {
	Name        string `yaml:"name" json:"name"`
	CanonType   string `yaml:"canon_type" json:"canonType,omitempty"`
	Description string `yaml:"description" json:"description,omitempty"`
}

// ID returns the stable id for the entry. Names are compared case-insensitively.
func (e Entry) ID() string {
	key := strings.ToLower(strings.TrimSpace(e.Name))
	return uuid.NewSHA1(namespace, []byte(key)).String()
}

// Fandom converts the entry into an ownerless system fandom.
func (e Entry) Fandom(now time.Time) *models.Fandom {
	return &models.Fandom{
		ID:          e.ID(),
		UserID:      nil,
		Name:        strings.TrimSpace(e.Name),
		CanonType:   optional(e.CanonType),
		Description: optional(e.Description),
		IsSystem:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

type catalogFile struct {
	Fandoms []Entry `yaml:"fandoms"`
}
