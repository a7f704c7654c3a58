package kv

import "fpadmin/internal/infra/kv/fs"

// NewFilesystem constructs a filesystem-backed kv.Store rooted at the provided path.
func NewFilesystem(root string) (Store, error) {
	return fs.New(root)
}
