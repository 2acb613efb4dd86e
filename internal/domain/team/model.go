package team

import "fmt"

// Team links an internal record to the feed provider's team key.
type Team struct {
	ID         string
	ExternalID int64
	Name       string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.ExternalID <= 0 {
		return fmt.Errorf("team external id must be greater than zero")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
