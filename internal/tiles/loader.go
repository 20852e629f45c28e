package tiles

import (
	"encoding/json"
	"fmt"
)

// load reads and unmarshals a JSON file from the embedded filesystem.
func load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}

	return result, nil
}

// Load parses the embedded tileset.json into a Table.
func Load() (*Table, error) {
	file, err := load[File]("tileset.json")
	if err != nil {
		return nil, err
	}
	return NewTable(file)
}

// MustLoad loads the embedded tileset, panicking on error.
// Use this at startup: the tileset must be present for the game to function.
func MustLoad() *Table {
	table, err := Load()
	if err != nil {
		panic(err)
	}
	return table
}
