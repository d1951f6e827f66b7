package source

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document, extracted into fragments.
	PDF
	// YAML indicates a fragment file in YAML.
	YAML
	// JSON indicates a fragment file in JSON.
	JSON
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case YAML:
		return "YAML"
	case JSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case YAML:
		return ".yaml"
	case JSON:
		return ".json"
	default:
		return ""
	}
}

// Detect determines the format from a filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".yaml", ".yml":
		return YAML
	case ".json":
		return JSON
	default:
		return Unknown
	}
}

// DetectFromMagic checks the leading bytes of a file.
// Returns Unknown if the format cannot be determined from content alone.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return PDF
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return Unknown
	}
	switch {
	case trimmed[0] == '{' || trimmed[0] == '[':
		return JSON
	case bytes.HasPrefix(trimmed, []byte("---")),
		bytes.HasPrefix(trimmed, []byte("%YAML")),
		bytes.HasPrefix(trimmed, []byte("pages:")):
		return YAML
	}
	return Unknown
}

// DetectFormat combines content and extension detection. Content wins when
// it is conclusive.
func DetectFormat(name string, head []byte) Format {
	if f := DetectFromMagic(head); f != Unknown {
		return f
	}
	return Detect(name)
}
