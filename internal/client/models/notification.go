package models

// Notification is a server-side reminder or alert for the user. CreatedAt
// is kept as sent; the server emits zone-less local timestamps.
type Notification struct {
	ID        ID     `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
}
