// Package storage selects and opens the backing key-value engine that
// persists the ledger.
package storage

import (
	"fmt"

	"github.com/blocklog/blocklog/foundation/ledger/database"
	"github.com/blocklog/blocklog/foundation/ledger/storage/badger"
	"github.com/blocklog/blocklog/foundation/ledger/storage/leveldb"
	"github.com/blocklog/blocklog/foundation/ledger/storage/memory"
)

// Engine identifies a backing key-value store implementation.
type Engine string

// Set of supported engines.
const (
	EngineMemory  Engine = "memory"
	EngineBadger  Engine = "badger"
	EngineLevelDB Engine = "leveldb"
)

// Config represents the configuration required to open a storage engine.
type Config struct {
	Engine Engine
	Path   string // Database directory for the file based engines.
}

// Open constructs the storage implementation for the configured engine.
func Open(cfg Config) (database.Storage, error) {
	switch cfg.Engine {
	case EngineMemory:
		return memory.New(), nil

	case EngineBadger:
		if cfg.Path == "" {
			return nil, fmt.Errorf("engine %q requires a database path", cfg.Engine)
		}
		return badger.New(cfg.Path)

	case EngineLevelDB:
		if cfg.Path == "" {
			return nil, fmt.Errorf("engine %q requires a database path", cfg.Engine)
		}
		return leveldb.New(cfg.Path)
	}

	return nil, fmt.Errorf("unsupported storage engine %q", cfg.Engine)
}
