package kafka

import "time"

// UserSignedInEvent is published by the user service after a successful login.
// DeviceID carries the anonymous device identity so the favorites service can
// reconcile the device-local favorite set into the user's remote set.
type UserSignedInEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	DeviceID  string    `json:"device_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// FavoritesReconciledEvent is published by the favorites service after a
// reconciliation run, with the outcome counts of that run.
type FavoritesReconciledEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	UserID     uint      `json:"user_id"`
	DeviceID   string    `json:"device_id,omitempty"`
	Added      int       `json:"added"`
	Pruned     int       `json:"pruned"`
	Unresolved int       `json:"unresolved"`
	Failed     int       `json:"failed"`
	Timestamp  time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeUserSignedIn        = "user.signed_in"
	EventTypeFavoritesReconciled = "favorites.reconciled"
)

// Kafka topics
const (
	TopicUserSignedIn        = "user-signed-in"
	TopicFavoritesReconciled = "favorites-reconciled"
)
