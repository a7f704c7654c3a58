package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fpadmin/internal/infra/persistence/memory"
	"fpadmin/internal/infra/persistence/postgres"
	"fpadmin/internal/infra/persistence/sqlite"
)

// StorageDriver enumerates supported persistent store backends.
type StorageDriver string

const (
	// StorageMemory keeps records in process memory only.
	StorageMemory StorageDriver = "memory"
	// StorageSQLite snapshots records into a local SQLite file.
	StorageSQLite StorageDriver = "sqlite"
	// StoragePostgres snapshots records into a PostgreSQL table.
	StoragePostgres StorageDriver = "postgres"
)

// ID strategies for newly created records.
const (
	IDStrategyUUID      = "uuid"
	IDStrategyTimestamp = "timestamp"
)

// StorageConfig selects and configures the records backend.
type StorageConfig struct {
	Driver      StorageDriver `yaml:"driver" validate:"omitempty,oneof=memory sqlite postgres"`
	SQLitePath  string        `yaml:"sqlite_path"`
	PostgresDSN string        `yaml:"postgres_dsn"`
	IDStrategy  string        `yaml:"id_strategy" validate:"omitempty,oneof=uuid timestamp"`
}

// OpenPersistentStore constructs the configured backend. The returned closer
// releases database handles and is never nil.
func OpenPersistentStore(ctx context.Context, cfg StorageConfig, engine *RulesEngine) (PersistentStore, func() error, error) {
	if engine == nil {
		engine = NewDefaultRulesEngine()
	}
	opts := []memory.Option{memory.WithIDGenerator(idGenerator(cfg.IDStrategy))}
	noop := func() error { return nil }

	switch StorageDriver(strings.ToLower(string(cfg.Driver))) {
	case "", StorageMemory:
		return memory.NewStore(engine, opts...), noop, nil
	case StorageSQLite:
		store, err := sqlite.NewStore(cfg.SQLitePath, engine, opts...)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	case StoragePostgres:
		store, err := postgres.NewStore(ctx, cfg.PostgresDSN, engine, opts...)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func idGenerator(strategy string) memory.IDGenerator {
	if strategy == IDStrategyTimestamp {
		return memory.TimestampGenerator(time.Now)
	}
	return memory.UUIDGenerator()
}

// NewInMemoryService is a convenience constructor for tests and ephemeral runs.
func NewInMemoryService(engine *RulesEngine, opts ...Option) *RecordsService {
	if engine == nil {
		engine = NewDefaultRulesEngine()
	}
	return NewRecordsService(memory.NewStore(engine), opts...)
}
