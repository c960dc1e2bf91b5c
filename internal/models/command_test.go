package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagRoundTrip(t *testing.T) {
	tags := []string{"goatbot", "command", "download"}

	command := Command{Tags: JoinTags(tags)}
	assert.Equal(t, "goatbot,command,download", command.Tags)
	assert.Equal(t, tags, command.TagList())
}

func TestTagListEmptyColumn(t *testing.T) {
	command := Command{Tags: ""}
	assert.Equal(t, []string{}, command.TagList())
	assert.Equal(t, "", JoinTags(nil))
	assert.Equal(t, "", JoinTags([]string{}))
}

func TestTagOrderPreserved(t *testing.T) {
	tags := []string{"zulu", "alpha", "mike"}
	command := Command{Tags: JoinTags(tags)}
	assert.Equal(t, tags, command.TagList())
}

func TestSummaryExcludesCode(t *testing.T) {
	command := Command{
		ID:      7,
		ShortID: "ab12cd",
		Name:    "autodl",
		Author:  "GoatBot Team",
		Code:    "// autodl code here",
		Tags:    "goatbot,command",
		Views:   15,
		Likes:   3,
	}

	summary := command.Summary()
	assert.Equal(t, uint(7), summary.ID)
	assert.Equal(t, "ab12cd", summary.ShortID)
	assert.Equal(t, []string{"goatbot", "command"}, summary.Tags)
	assert.Equal(t, 15, summary.Views)

	detail := command.Detail()
	assert.Equal(t, summary, detail.CommandSummary)
	assert.Equal(t, "// autodl code here", detail.Code)
}
