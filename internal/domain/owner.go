package domain

import "time"

// Owner is the person or company a property belongs to.
// Owners are written by an external system; this service only reads them.
type Owner struct {
	ID       string
	Name     string
	Address  string
	PhotoURL string
	Birthday time.Time
}
