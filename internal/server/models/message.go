package models

import "time"

// Message is a stored direct message. From and To carry user ids but are not
// validated against the user collection; a message may reference an id that
// was never registered.
type Message struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
