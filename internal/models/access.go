package models

import "time"

// AccessKind distinguishes the two read paths that fetch a command body.
type AccessKind string

const (
	AccessFull AccessKind = "full" // detail lookup, counted as a view
	AccessRaw  AccessKind = "raw"  // raw snippet download, not counted as a view
)

// Access represents one recorded fetch of a command, stored in the database.
// This model tracks how commands are retrieved for later analysis.
type Access struct {
	ID uint `gorm:"primaryKey"`

	// CommandID is the foreign key referencing the Command that was fetched
	// - index: queries aggregate accesses per command
	CommandID uint `gorm:"index"`

	Command Command `gorm:"foreignKey:CommandID"`

	// Kind records which read path served the request (full or raw)
	Kind AccessKind `gorm:"size:10"`

	Timestamp time.Time

	UserAgent string `gorm:"size:255"`

	IPAddress string `gorm:"size:50"`
}

// AccessEvent is the lightweight form of an Access passed through channels.
// It carries only what the workers need to build the database record.
type AccessEvent struct {
	CommandID uint
	Kind      AccessKind
	Timestamp time.Time
	UserAgent string
	IPAddress string
}
