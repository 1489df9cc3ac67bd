package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadedFiles(t *testing.T) {
	mapping := &FileHandle{Name: "mapping.xlsx", Size: 1536}
	template := &FileHandle{Name: "template.txt", Size: 10}

	var files UploadedFiles
	assert.False(t, files.Complete())
	assert.Equal(t, "-|-", files.Fingerprint())

	files = files.With(SlotMapping, mapping)
	assert.False(t, files.Complete())
	assert.Same(t, mapping, files.Get(SlotMapping))

	full := files.With(SlotTemplate, template)
	assert.True(t, full.Complete())
	assert.Nil(t, files.Template, "With returns a copy")
	assert.Equal(t, "mapping.xlsx:1536|template.txt:10", full.Fingerprint())
	assert.Nil(t, full.Get(FileSlot(7)))
}

func TestFileHandleSizeKB(t *testing.T) {
	assert.Equal(t, "1.5 KB", (&FileHandle{Size: 1536}).SizeKB())
	assert.Equal(t, "0.0 KB", (&FileHandle{}).SizeKB())
}

func TestToggleQueryType(t *testing.T) {
	cfg := TestConfig{QueryTypes: []string{"count", "mapping"}}

	cfg.ToggleQueryType("count")
	assert.Equal(t, []string{"mapping"}, cfg.QueryTypes)
	assert.False(t, cfg.HasQueryType("count"))

	cfg.ToggleQueryType("null")
	assert.Equal(t, []string{"mapping", "null"}, cfg.QueryTypes)
	assert.True(t, cfg.HasQueryType("null"))
}

func TestSlotNames(t *testing.T) {
	assert.Equal(t, "mapping", SlotMapping.String())
	assert.Equal(t, "Template", SlotTemplate.Title())
	assert.Equal(t, "tc-004.sql", (&TestCase{ID: "tc-004"}).FileName())
}
