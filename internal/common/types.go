package common

import (
	"fmt"
	"strings"
)

// FileSlot identifies which upload a file handle belongs to
type FileSlot int

const (
	SlotMapping FileSlot = iota
	SlotTemplate
)

// String returns the slot name used in messages and file names
func (s FileSlot) String() string {
	switch s {
	case SlotMapping:
		return "mapping"
	case SlotTemplate:
		return "template"
	default:
		return "unknown"
	}
}

// Title returns the capitalized slot label
func (s FileSlot) Title() string {
	switch s {
	case SlotMapping:
		return "Mapping"
	case SlotTemplate:
		return "Template"
	default:
		return "Unknown"
	}
}

// FileHandle references an uploaded file. Contents are never read.
type FileHandle struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
	Size int64  `json:"size" yaml:"size"`
}

// SizeKB formats the size the way the uploader displays it
func (h *FileHandle) SizeKB() string {
	return fmt.Sprintf("%.1f KB", float64(h.Size)/1024)
}

// UploadedFiles holds the two upload slots
type UploadedFiles struct {
	Mapping  *FileHandle `json:"mapping,omitempty"`
	Template *FileHandle `json:"template,omitempty"`
}

// Complete reports whether both slots are filled
func (f UploadedFiles) Complete() bool {
	return f.Mapping != nil && f.Template != nil
}

// Get returns the handle stored in slot
func (f UploadedFiles) Get(slot FileSlot) *FileHandle {
	switch slot {
	case SlotMapping:
		return f.Mapping
	case SlotTemplate:
		return f.Template
	default:
		return nil
	}
}

// With returns a copy with slot set to handle
func (f UploadedFiles) With(slot FileSlot, handle *FileHandle) UploadedFiles {
	switch slot {
	case SlotMapping:
		f.Mapping = handle
	case SlotTemplate:
		f.Template = handle
	}
	return f
}

// Fingerprint identifies the file pair for memoization
func (f UploadedFiles) Fingerprint() string {
	parts := make([]string, 0, 2)
	for _, h := range []*FileHandle{f.Mapping, f.Template} {
		if h == nil {
			parts = append(parts, "-")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:%d", h.Name, h.Size))
	}
	return strings.Join(parts, "|")
}

// MappingRow is one source-to-target column mapping
type MappingRow struct {
	SourceTable        string `json:"source_table"`
	SourceColumn       string `json:"source_column"`
	TargetTable        string `json:"target_table"`
	TargetColumn       string `json:"target_column"`
	TransformationType string `json:"transformation_type"`
}

// AnalysisResult is the synthesized outcome of analyzing an upload pair
type AnalysisResult struct {
	TotalMappings    int          `json:"total_mappings"`
	SourceTables     int          `json:"source_tables"`
	TargetTables     int          `json:"target_tables"`
	TemplateSections []string     `json:"template_sections"`
	MappingPreview   []MappingRow `json:"mapping_preview"`
}

// TestConfig holds the generation options chosen in the configure step
type TestConfig struct {
	OutputFormat string   `json:"output_format" yaml:"output_format" validate:"required,oneof=excel word csv text"`
	QueryTypes   []string `json:"query_types" yaml:"query_types" validate:"required,min=1,unique,dive,oneof=count mapping quality business null"`
	Complexity   string   `json:"complexity" yaml:"complexity" validate:"required,oneof=basic intermediate advanced"`
	CommentLevel string   `json:"comment_level" yaml:"comment_level" validate:"required,oneof=detailed basic none"`
}

// HasQueryType reports whether id is selected
func (c *TestConfig) HasQueryType(id string) bool {
	for _, q := range c.QueryTypes {
		if q == id {
			return true
		}
	}
	return false
}

// ToggleQueryType adds id when absent and removes it when present
func (c *TestConfig) ToggleQueryType(id string) {
	for i, q := range c.QueryTypes {
		if q == id {
			c.QueryTypes = append(c.QueryTypes[:i:i], c.QueryTypes[i+1:]...)
			return
		}
	}
	c.QueryTypes = append(c.QueryTypes, id)
}

// TestCase is one generated SQL test case
type TestCase struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	QueryType   string `json:"query_type"`
	Description string `json:"description"`
	SQL         string `json:"sql"`
}

// FileName is the download name of the test case
func (tc *TestCase) FileName() string {
	return tc.ID + ".sql"
}
