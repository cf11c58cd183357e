package main

import (
	"encoding/json"
	"fmt"
	"os"
)

const boardFormat = "stormboard"

type boardDocument struct {
	Format  string `json:"format"`
	Version int    `json:"version"`
	Board   Board  `json:"board"`
}

// SaveBoard writes a board document. Only the host calls this; the engine
// never touches storage.
func SaveBoard(filename string, b Board) error {
	data, err := json.MarshalIndent(boardDocument{Format: boardFormat, Version: 1, Board: b}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}

// LoadBoard reads a board document and repairs dangling references.
func LoadBoard(filename string, ids IDSource) (Board, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Board{}, fmt.Errorf("read %s: %w", filename, err)
	}
	var doc boardDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return Board{}, fmt.Errorf("decode %s: %w", filename, err)
	}
	if doc.Format != boardFormat {
		return Board{}, fmt.Errorf("invalid file format")
	}
	b := doc.Board.Normalize(ids)
	if err := b.Validate(); err != nil {
		return Board{}, fmt.Errorf("validate %s: %w", filename, err)
	}
	return b, nil
}
