// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-achievement-unlocker/pkg/achievement"
	"github.com/AccelByte/extend-achievement-unlocker/pkg/pipeline"
	"github.com/sirupsen/logrus"
)

// CatalogStore persists catalog definitions relationally.
type CatalogStore interface {
	achievement.Catalog
	SeedCatalog(ctx context.Context, definitions []achievement.Definition) error
}

// InitCatalog loads the catalog file at path.
//
// With a nil store the catalog is served from memory. Otherwise the definitions are
// seeded into the store and passes read through it with an in-process cache.
func InitCatalog(ctx context.Context, path string, store CatalogStore) (achievement.Catalog, []achievement.Definition, error) {
	cfg, err := pipeline.LoadConfig(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog from %s: %w", path, err)
	}

	definitions := cfg.Definitions()
	logrus.Infof("loaded %d achievements from %s", len(definitions), path)

	if store == nil {
		catalog, err := achievement.NewStaticCatalog(definitions)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build catalog: %w", err)
		}
		return catalog, definitions, nil
	}

	if err := store.SeedCatalog(ctx, definitions); err != nil {
		return nil, nil, fmt.Errorf("failed to seed catalog: %w", err)
	}
	logrus.Infof("seeded %d achievements into catalog store", len(definitions))

	return achievement.NewCachedCatalog(store), definitions, nil
}
