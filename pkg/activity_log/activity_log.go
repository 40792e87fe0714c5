package activity_log

import "time"

// ActivityLog is one entry in the per-user activity feed shown on the
// dashboard.
type ActivityLog struct {
	ID          int
	Type        string
	Description string
	EntityType  string
	EntityID    int
	CreatedAt   time.Time
}
