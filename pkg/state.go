package pkg

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// ViewState is the persisted state of one view: the game source and where
// the reader left the cursor
type ViewState struct {
	Source string `json:"source"`
	Cursor int    `json:"cursor"`
}

// DocumentState is the persisted state of every view of a document
type DocumentState struct {
	Path  string      `json:"path"`
	Views []ViewState `json:"views"`
}

// Find returns the saved state of the view loaded from source
func (d DocumentState) Find(source string) (ViewState, bool) {
	for _, v := range d.Views {
		if v.Source == source {
			return v, true
		}
	}
	return ViewState{}, false
}

func Encode(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		log.Panic(err)
	}
	return data
}

func Decode(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// LoadState reads a document state file. A missing file is an empty state.
func LoadState(path string) (DocumentState, error) {
	var s DocumentState
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read state %s: %w", path, err)
	}
	if err := Decode(data, &s); err != nil {
		return s, fmt.Errorf("failed to decode state %s: %w", path, err)
	}
	return s, nil
}

// SaveState writes a document state file
func SaveState(path string, s DocumentState) error {
	if err := os.WriteFile(path, Encode(s), 0644); err != nil {
		return fmt.Errorf("failed to write state %s: %w", path, err)
	}
	return nil
}
