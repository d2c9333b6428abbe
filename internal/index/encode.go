package index

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-postindex/pkg/interfaces"
)

// encodeIndex serializes the index as a 2-space-indented JSON array with a
// trailing newline. A nil index encodes as [] so consumers always receive
// an array.
func encodeIndex(index interfaces.PostIndex) ([]byte, error) {
	if index == nil {
		index = interfaces.PostIndex{}
	}
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("index: encode: %w", err)
	}
	return append(data, '\n'), nil
}
