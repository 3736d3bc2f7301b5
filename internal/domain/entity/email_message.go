package entity

import "time"

// EmailMessage is a raw email fetched from a provider, ready for extraction.
type EmailMessage struct {
	ID          string // Gmail message ID or Graph message ID
	Subject     string
	From        string
	ReceivedAt  time.Time
	BodyText    string // plain text, HTML stripped
	Attachments []string
	RawContent  string // full raw body handed to the extractor
}
