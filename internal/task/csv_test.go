package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCSV(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		wantHeaders []string
		wantRows    []map[string]string
	}{
		{
			name:        "basic two rows",
			input:       "a,b\n1,2\n3,4",
			wantHeaders: []string{"a", "b"},
			wantRows: []map[string]string{
				{"a": "1", "b": "2"},
				{"a": "3", "b": "4"},
			},
		},
		{
			name:        "blank lines skipped and fields trimmed",
			input:       "sensor, value\n\n ext-1 , 0.42 \n",
			wantHeaders: []string{"sensor", "value"},
			wantRows: []map[string]string{
				{"sensor": "ext-1", "value": "0.42"},
			},
		},
		{
			name:        "short row padded with empty values",
			input:       "a,b,c\n1,2",
			wantHeaders: []string{"a", "b", "c"},
			wantRows: []map[string]string{
				{"a": "1", "b": "2", "c": ""},
			},
		},
		{
			name:        "quotes are not interpreted",
			input:       `a,b` + "\n" + `"1,x",2`,
			wantHeaders: []string{"a", "b"},
			wantRows: []map[string]string{
				{"a": `"1`, "b": `x"`},
			},
		},
		{
			name:        "empty input",
			input:       "",
			wantHeaders: []string{},
			wantRows:    []map[string]string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseCSV(tc.input)
			assert.Equal(t, tc.wantHeaders, got.Headers)
			assert.Equal(t, tc.wantRows, got.Rows)
		})
	}
}
