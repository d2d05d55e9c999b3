package queue

import "time"

// Item is one deferred entry.
type Item struct {
	ID            int64
	Key           string
	Title         string
	Logbooks      string
	CertPath      string
	Payload       string
	CreatedAt     time.Time
	Attempts      int
	LastAttemptAt time.Time
	LastError     string
}

// NewItem describes an entry to defer. Key is generated when empty.
type NewItem struct {
	Key      string
	Title    string
	Logbooks string
	CertPath string
	Payload  string
}
