package mode

// Mode tells which candidate set a search returned.
type Mode string

// Search mode constants.
const (
	// Basic is plain substring matching of the raw query.
	Basic Mode = "basic"
	// Enhanced applies the interpreted filters.
	Enhanced Mode = "enhanced"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Basic || m == Enhanced
}
