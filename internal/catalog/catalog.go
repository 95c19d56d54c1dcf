package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"fanfic/internal/config"
	"fanfic/internal/domain/repositories"
	fanficRepo "fanfic/internal/domain/repositories/fanfic"
)

//go:embed config/fandoms.yaml
var embeddedCatalog []byte

// Catalog is the list of system fandoms shipped with the service
type Catalog struct {
	entries []Entry
}

// Load parses the embedded catalog
func Load() (*Catalog, error) {
	c, err := Parse(embeddedCatalog)
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded catalog: %w", err)
	}
	return c, nil
}

// Parse reads a catalog document. Names must be non-blank, within the fandom
// name limit and unique (case-insensitively).
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}

	seen := make(map[string]bool, len(file.Fandoms))
	for i, entry := range file.Fandoms {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("fandom %d: name is required", i)
		}
		if len(name) > config.MaxFandomNameLength {
			return nil, fmt.Errorf("fandom %q: name exceeds %d characters", name, config.MaxFandomNameLength)
		}
		if len(strings.TrimSpace(entry.CanonType)) > config.MaxCanonTypeLength {
			return nil, fmt.Errorf("fandom %q: canon_type exceeds %d characters", name, config.MaxCanonTypeLength)
		}

		key := strings.ToLower(name)
		if seen[key] {
			return nil, fmt.Errorf("fandom %q: duplicate name", name)
		}
		seen[key] = true
	}

	return &Catalog{entries: file.Fandoms}, nil
}

// Entries returns the catalog entries in file order
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// Seed upserts every entry as a system fandom in a single transaction.
// Re-running it refreshes names and descriptions without duplicating rows.
func Seed(
	ctx context.Context,
	c *Catalog,
	fandomRepo fanficRepo.FandomRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) (int, error) {
	now := time.Now().UTC()

	err := txManager.ExecTx(ctx, func(txCtx context.Context) error {
		for _, entry := range c.entries {
			if err := fandomRepo.UpsertSystem(txCtx, entry.Fandom(now)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seed system fandoms: %w", err)
	}

	logger.Info("system fandoms seeded", "count", len(c.entries))
	return len(c.entries), nil
}
