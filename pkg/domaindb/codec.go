package domaindb

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decode parses a messages document. The format is chosen by file extension:
// ".json", ".yaml" or ".yml".
func Decode(ext string, data []byte) (Messages, error) {
	var (
		raw map[string]any
		err error
	)

	switch strings.ToLower(ext) {
	case ".json":
		err = json.Unmarshal(data, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("%w: unsupported extension %q", ErrInvalidFile, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFile, err)
	}

	return FromMap(raw), nil
}

// IsMessagesFile reports whether name has an extension Decode understands.
func IsMessagesFile(name string) bool {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return false
	}
	switch strings.ToLower(name[i:]) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
