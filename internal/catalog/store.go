// internal/catalog/store.go
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	"product-advisor/internal/common/errors"
	"product-advisor/internal/common/logger"
	"product-advisor/internal/models"
)

// Store holds the product catalog loaded once at startup. All reads after
// Load are lock-free: the slice is never mutated again.
type Store struct {
	table    string
	logger   logger.Logger
	products []models.Product
}

func NewStore(table string, log logger.Logger) *Store {
	if table == "" {
		table = "products"
	}
	return &Store{
		table:  table,
		logger: log.WithFields(map[string]interface{}{"component": "catalog"}),
	}
}

// Load reads the full product table ordered by id. An empty table is an
// error: the pipeline cannot answer anything without a catalog.
func (s *Store) Load(ctx context.Context, db *sql.DB) error {
	query := fmt.Sprintf(
		`SELECT ma_san_pham, linh_vuc, danh_muc, ten, mo_ta, gia, thuong_hieu, loi_ich, loi_khuyen, danh_gia, thuoc_tinh FROM %s ORDER BY ma_san_pham`,
		s.table,
	)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return errors.NewCatalogLoadFailedError(fmt.Errorf("query %s: %w", s.table, err))
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var (
			p       models.Product
			rawAttr []byte
		)
		if err := rows.Scan(
			&p.ID, &p.Domain, &p.Category, &p.Name, &p.Description,
			&p.Price, &p.Brand, &p.Benefits, &p.Advice, &p.Rating, &rawAttr,
		); err != nil {
			return errors.NewCatalogLoadFailedError(fmt.Errorf("scan: %w", err))
		}
		if len(rawAttr) > 0 {
			if err := json.Unmarshal(rawAttr, &p.Attributes); err != nil {
				s.logger.Warn("Skipping malformed attribute payload", map[string]interface{}{
					"productId": p.ID,
					"error":     err.Error(),
				})
				p.Attributes = nil
			}
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return errors.NewCatalogLoadFailedError(fmt.Errorf("row iteration: %w", err))
	}
	if len(products) == 0 {
		return errors.NewCatalogEmptyError(s.table)
	}

	s.products = products
	s.logger.Info("Catalog loaded", map[string]interface{}{
		"table":    s.table,
		"products": len(products),
	})
	return nil
}

// Products returns the loaded catalog. Callers must not mutate the slice.
func (s *Store) Products() []models.Product {
	return s.products
}

// AttributeKeys returns the distinct attribute keys across the catalog,
// sorted. The extractor prompt lists them so the model picks real keys.
func (s *Store) AttributeKeys() []string {
	seen := make(map[string]struct{})
	for _, p := range s.products {
		for k := range p.Attributes {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
