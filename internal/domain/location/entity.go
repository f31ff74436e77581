package location

import "time"

type Location struct {
	ID        string
	Name      string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
