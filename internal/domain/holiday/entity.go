package holiday

import "time"

// Holiday applies to every employee on its date.
type Holiday struct {
	ID        string
	Date      time.Time
	Label     string
	CreatedAt time.Time
}
