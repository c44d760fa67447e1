// Package store persists the aggregated snapshot as a single JSON document.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Load reads the snapshot at path. A missing or undecodable file is not an
// error: history is simply treated as empty and the run rebuilds from scratch.
func Load(path string) *Snapshot {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("snapshot unreadable, starting with empty history", "path", path, "err", err)
		}
		return &Snapshot{}
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Warn("snapshot corrupt, starting with empty history", "path", path, "err", err)
		return &Snapshot{}
	}
	return &snap
}

// Save writes the snapshot atomically: marshal to a sibling temp file, then
// rename over the destination. A failed write leaves the previous snapshot
// intact.
func Save(path string, snap *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}
