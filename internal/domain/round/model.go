package round

import "fmt"

// Round is one discrete scoring period. Numbers are sequential and immutable
// once assigned.
type Round struct {
	ID     string
	Number int
}

func (r Round) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("round id is required")
	}
	if r.Number <= 0 {
		return fmt.Errorf("round number must be greater than zero")
	}

	return nil
}
