package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CatalogExt is the file extension of catalogs.
const CatalogExt = ".jsonl"

// CatalogManager maps catalog names onto files in one directory.
type CatalogManager struct {
	Dir string
}

// NewCatalogManager returns a manager for catalogs under dir.
func NewCatalogManager(dir string) *CatalogManager {
	return &CatalogManager{Dir: dir}
}

// Path resolves a catalog name. A name that already looks like a file
// path is returned unchanged.
func (c *CatalogManager) Path(name string) string {
	if strings.HasSuffix(name, CatalogExt) || strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		return name
	}
	return filepath.Join(c.Dir, name+CatalogExt)
}

// Open opens or creates the named catalog.
func (c *CatalogManager) Open(name string) (*Store, error) {
	return NewStore(c.Path(name))
}

// Load opens an existing catalog and fails if it does not exist.
func (c *CatalogManager) Load(name string) (*Store, error) {
	path := c.Path(name)
	if stat, err := os.Stat(path); err != nil || stat.IsDir() {
		return nil, fmt.Errorf("catalog not found: %s", path)
	}
	return NewStore(path)
}

// List returns the names of the catalogs in the directory.
func (c *CatalogManager) List() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(c.Dir, "*"+CatalogExt))
	if err != nil {
		return nil, err
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = strings.TrimSuffix(filepath.Base(m), CatalogExt)
	}
	sort.Strings(names)
	return names, nil
}
