package models

import "time"

// Channel names where an invoice went.
type Channel string

const (
	ChannelLocal  Channel = "local"
	ChannelDrive  Channel = "drive"
	ChannelS3     Channel = "s3"
	ChannelLedger Channel = "ledger"
)

// ExportRecord is one row of the local export history.
type ExportRecord struct {
	ID            string
	InvoiceNumber string
	FileName      string
	Channel       Channel
	// Tier is the persistence tier that wrote the file (1..3), 0 otherwise.
	Tier      int
	Status    string
	Location  string
	Detail    string
	CreatedAt time.Time
}
