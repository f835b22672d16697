package uploadledger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	websqlite "github.com/firehorseusa/firehorse/internal/services/web/storage/sqlite"
)

// OpenStore opens the upload ledger when a storage path is provided.
// An empty path disables the ledger and returns a nil store.
func OpenStore(path string) (*websqlite.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create upload ledger dir: %w", err)
		}
	}
	store, err := websqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open upload ledger sqlite store: %w", err)
	}
	return store, nil
}
