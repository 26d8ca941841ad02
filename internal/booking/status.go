package booking

import "fmt"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// StatusAll is the listing keyword for "every status".
const StatusAll = "all"

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %s", s)
	}
}

// ParseStatusFilter maps the listing query value to a filter status.
// Empty defaults to approved; "all" yields the empty status.
func ParseStatusFilter(s string) (Status, error) {
	switch s {
	case "":
		return StatusApproved, nil
	case StatusAll:
		return "", nil
	default:
		return ParseStatus(s)
	}
}

// Cross-status moves only; stores short-circuit same-status updates before asking.
// A stored status outside this map cannot be moved.
var allowedTransitions = map[Status]map[Status]bool{
	StatusPending:  {StatusApproved: true},
	StatusApproved: {StatusPending: true},
}

func CanTransition(from, to Status) bool {
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}
