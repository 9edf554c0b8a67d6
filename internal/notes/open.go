package notes

import (
	"context"
	"fmt"
	"strings"

	"notebook/internal/config"
	"notebook/internal/gql"
	"go.uber.org/zap"
)

// Open builds the store selected by cfg.Driver. The caller owns the returned
// store and must Close it.
func Open(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch driver {
	case "", config.DriverMemory:
		store := NewMemoryStore()
		if seed := strings.TrimSpace(cfg.Seed); seed != "" {
			seeded, err := ReadSeedFile(seed, nil)
			if err != nil {
				return nil, err
			}
			if err := store.PutNotes(ctx, seeded); err != nil {
				return nil, err
			}
			logger.Info("memory store seeded", zap.String("seed", seed), zap.Int("notes", len(seeded)))
		}
		return store, nil

	case config.DriverSQLite:
		store, err := OpenSQLite(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		logger.Info("sqlite store opened", zap.String("dsn", cfg.DSN))
		return store, nil

	case config.DriverDir:
		store, err := OpenDir(cfg.Dir, cfg.Pattern, logger.Named("dir"))
		if err != nil {
			return nil, err
		}
		logger.Info("directory store opened", zap.String("dir", cfg.Dir), zap.String("pattern", store.pattern))
		return store, nil

	case config.DriverGraphQL:
		client := gql.NewClient(cfg.GraphQL.Endpoint, cfg.GraphQL.Token, cfg.GraphQL.Timeout)
		logger.Info("graphql store configured", zap.String("endpoint", cfg.GraphQL.Endpoint))
		return NewGraphQLStore(client), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}
