package fs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/repackdb/repackdb"
)

// WriteRepacks writes records to path as indented JSON, creating parent
// directories as needed.
func WriteRepacks(path string, repacks []*repackdb.Repack) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(repacks, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadRepacks reads records previously written by WriteRepacks.
func ReadRepacks(path string) ([]*repackdb.Repack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var repacks []*repackdb.Repack
	if err := json.Unmarshal(data, &repacks); err != nil {
		return nil, repackdb.Errorf(repackdb.EINVALID, "invalid export file %s: %s", path, err)
	}
	return repacks, nil
}
