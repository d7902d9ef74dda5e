package model

import "time"

// ParsedCSV holds the table extracted from a CSV upload. The parser is the
// naive comma/newline split the console has always used; see task.ParseCSV.
type ParsedCSV struct {
	Headers []string            `json:"headers"`
	Rows    []map[string]string `json:"rows"`
}

// FileRecord describes one uploaded artifact attached to a device.
type FileRecord struct {
	Name       string     `json:"name"`
	Size       int64      `json:"size"`
	Type       string     `json:"type"`
	UploadedAt time.Time  `json:"uploadedAt"`
	ImportType ImportType `json:"importType"`

	// Preview is only set for image imports (a handle into the static asset
	// namespace or a data URI).
	Preview string `json:"preview,omitempty"`
	// ParsedData is only populated for CSV imports.
	ParsedData *ParsedCSV `json:"parsedData,omitempty"`
}
