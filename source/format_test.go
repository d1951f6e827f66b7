package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		format Format
		want   string
		ext    string
	}{
		{PDF, "PDF", ".pdf"},
		{YAML, "YAML", ".yaml"},
		{JSON, "JSON", ".json"},
		{Unknown, "Unknown", ""},
		{Format(99), "Unknown", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.format.String())
		assert.Equal(t, tt.ext, tt.format.Extension())
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"golden.pdf", PDF},
		{"GOLDEN.PDF", PDF},
		{"fragments.yaml", YAML},
		{"fragments.YML", YAML},
		{"fragments.json", JSON},
		{"notes.txt", Unknown},
		{"noext", Unknown},
		{"/path/to/archive.tar.json", JSON},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.filename))
		})
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Format
	}{
		{"pdf header", "%PDF-1.7\n", PDF},
		{"json object", "  {\"pages\": []}", JSON},
		{"json array", "[]", JSON},
		{"yaml document marker", "---\npages: []\n", YAML},
		{"yaml pages key", "pages:\n  - index: 0\n", YAML},
		{"yaml directive", "%YAML 1.2\n---\n", YAML},
		{"empty", "", Unknown},
		{"whitespace", " \n\t", Unknown},
		{"plain text", "hello", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFromMagic([]byte(tt.data)))
		})
	}
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, PDF, DetectFormat("misnamed.yaml", []byte("%PDF-1.4")))
	assert.Equal(t, YAML, DetectFormat("fragments.yml", []byte("# comment first\npages: []")))
	assert.Equal(t, Unknown, DetectFormat("unknown.bin", []byte{0x00, 0x01}))
}
