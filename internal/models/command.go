package models

import (
	"strings"
	"time"
)

// TagDelimiter is the separator used to store the ordered tag list in a single
// column. A tag that itself contains a comma will not survive the round trip;
// this is a known constraint of the storage format.
const TagDelimiter = ","

// Command représente une commande partagée dans la base de données.
type Command struct {
	ID          uint   `gorm:"primaryKey"`
	ShortID     string `gorm:"uniqueIndex;size:10;not null"`
	Name        string `gorm:"uniqueIndex;not null"`
	Description string
	Author      string `gorm:"not null"`
	Code        string `gorm:"not null"`
	Category    string
	// Tags holds the ordered tag list joined with TagDelimiter.
	Tags       string
	Difficulty string
	Views      int       `gorm:"default:0;not null"`
	Likes      int       `gorm:"default:0;not null"`
	Shares     int       `gorm:"default:0;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// TagList splits the stored tag column back into the ordered tag sequence.
// An empty column yields an empty slice, not [""].
func (c *Command) TagList() []string {
	if c.Tags == "" {
		return []string{}
	}
	return strings.Split(c.Tags, TagDelimiter)
}

// JoinTags serializes an ordered tag sequence into the stored column format.
func JoinTags(tags []string) string {
	return strings.Join(tags, TagDelimiter)
}

// CommandSummary is the listing projection of a Command. It carries every
// field except the snippet body.
type CommandSummary struct {
	ID          uint      `json:"id"`
	ShortID     string    `json:"shortId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Difficulty  string    `json:"difficulty"`
	Views       int       `json:"views"`
	Likes       int       `json:"likes"`
	Shares      int       `json:"shares"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CommandDetail is the full projection, including the snippet body.
type CommandDetail struct {
	CommandSummary
	Code string `json:"code"`
}

// Summary builds the listing projection for this command.
func (c *Command) Summary() CommandSummary {
	return CommandSummary{
		ID:          c.ID,
		ShortID:     c.ShortID,
		Name:        c.Name,
		Description: c.Description,
		Author:      c.Author,
		Category:    c.Category,
		Tags:        c.TagList(),
		Difficulty:  c.Difficulty,
		Views:       c.Views,
		Likes:       c.Likes,
		Shares:      c.Shares,
		CreatedAt:   c.CreatedAt,
	}
}

// Detail builds the full projection for this command.
func (c *Command) Detail() CommandDetail {
	return CommandDetail{
		CommandSummary: c.Summary(),
		Code:           c.Code,
	}
}
