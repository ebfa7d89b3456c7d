package loam

// ActionMetadata is the front matter of an action document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type ActionMetadata struct {
	// ID overrides the key derived from the file name.
	ID   string `json:"id" mapstructure:"id"`
	Cost any    `json:"cost" mapstructure:"cost"`

	Preconditions map[string]any `json:"preconditions" mapstructure:"preconditions"`
	Effects       map[string]any `json:"effects" mapstructure:"effects"`
}
