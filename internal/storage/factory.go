package storage

import "fmt"

// NewStore builds the genotype store for the requested backend kind.
// An empty kind selects the in-memory store. The path argument is only
// consulted by the sqlite backend.
func NewStore(kind, path string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return newSQLiteStore(path)
	}
	return nil, fmt.Errorf("unsupported store backend: %s", kind)
}

// CloseIfSupported releases backend resources for stores that hold any,
// such as the sqlite connection. Stores without a Close method are left
// untouched.
func CloseIfSupported(s Store) error {
	if closer, ok := s.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
