package config

const (
	// MaxFandomNameLength is the maximum length for fandom names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxFandomNameLength = 255

	// MaxCanonTypeLength is the maximum length for a fandom's canon type label.
	MaxCanonTypeLength = 100

	// MaxStoryTitleLength is the maximum length for story titles.
	MaxStoryTitleLength = 255

	// MaxChapterTitleLength is the maximum length for chapter titles.
	MaxChapterTitleLength = 255

	// MaxPairingLength is the maximum length for a story's pairing.
	MaxPairingLength = 255

	// MaxShortLabelLength bounds rating, status and language labels.
	MaxShortLabelLength = 50

	// MaxOrderIndex bounds chapter positions so they fit a 32-bit INTEGER column.
	MaxOrderIndex = 1<<31 - 1
)
