package derive

import "fmt"

// MalformedHandError reports input that is well formed enough to derive
// from but is missing data a later stage needs, such as a board street or a
// player's hole cards. The caller decides whether to keep the partial
// result.
type MalformedHandError struct {
	HandID string
	Path   string
	Reason string
}

func (e *MalformedHandError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("malformed hand %s (%s): %s", e.HandID, e.Path, e.Reason)
	}
	return fmt.Sprintf("malformed hand %s: %s", e.HandID, e.Reason)
}
