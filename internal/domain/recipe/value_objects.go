package recipe

import "strings"

// Status is a recipe's personal tag. Values are stored in canonical lowercase form.
type Status string

const (
	StatusFavorite   Status = "favorite"
	StatusToTry      Status = "to try"
	StatusMadeBefore Status = "made before"
)

// Statuses lists every accepted status in display order.
var Statuses = []Status{StatusFavorite, StatusToTry, StatusMadeBefore}

// ParseStatus matches s case-insensitively against the known statuses.
func ParseStatus(s string) (Status, error) {
	candidate := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Statuses {
		if candidate == known {
			return known, nil
		}
	}
	return "", ErrInvalidStatus
}

// ParseOptionalStatus behaves like ParseStatus but accepts the empty string.
func ParseOptionalStatus(s string) (Status, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	return ParseStatus(s)
}

// String returns the status as stored
func (s Status) String() string {
	return string(s)
}
