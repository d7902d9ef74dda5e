package task

import (
	"strings"

	"rockfall-console-backend/internal/model"
)

// ParseCSV splits text into headers and rows. This is deliberately the naive
// parser the console has always used: it splits strictly on newlines and
// commas, trims whitespace, and knows nothing about quoting or escaping.
// Callers wanting a real CSV grammar should plug in encoding/csv instead of
// changing this default.
func ParseCSV(text string) model.ParsedCSV {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return model.ParsedCSV{Headers: []string{}, Rows: []map[string]string{}}
	}

	headers := splitTrim(lines[0])
	rows := make([]map[string]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := splitTrim(line)
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(values) {
				row[h] = values[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return model.ParsedCSV{Headers: headers, Rows: rows}
}

func splitTrim(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
