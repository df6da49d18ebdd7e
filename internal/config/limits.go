package config

const (
	// MaxContentTitleLength is the maximum length for content titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxContentTitleLength = 255

	// MaxGroupingKeyLength is the maximum length for institute, subject,
	// chapter and topic names.
	MaxGroupingKeyLength = 255

	// MaxContentURLLength is the maximum length for a content resource URL.
	MaxContentURLLength = 2048

	// MaxContentBodyLength is the maximum length for plain-text content.
	MaxContentBodyLength = 100_000

	// MaxTopicItems caps how many items a single reorder request may carry.
	MaxTopicItems = 1000

	// MaxTreeNodeIDLength bounds node ids accepted by the toggle endpoint,
	// in runes like the grouping keys it is built from.
	// Four grouping keys plus a content id and separators.
	MaxTreeNodeIDLength = 4*MaxGroupingKeyLength + 64
)
