package repository

import (
	"context"
	"errors"

	"github.com/openfleet/drivers-api/internal/database"
	"github.com/openfleet/drivers-api/internal/model"
)

// ProductRepository handles product data access
type ProductRepository struct {
	db database.Database
}

// NewProductRepository creates a new product repository
func NewProductRepository(db database.Database) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns all products ordered by name
func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	query := `SELECT * FROM product ORDER BY name`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return []model.Product{}, nil
		}
		return nil, err
	}

	records := unwrapQueryResults(result)
	products := make([]model.Product, 0, len(records))
	for _, record := range records {
		products = append(products, parseProduct(record))
	}
	return products, nil
}

// parseProduct maps a SurrealDB record to a model.Product
func parseProduct(record map[string]interface{}) model.Product {
	product := model.Product{
		Name:  getString(record, "name"),
		Price: getFloat(record, "price"),
	}
	if id, ok := record["id"]; ok {
		product.ID = convertSurrealID(id)
	}
	if t := getTime(record, "created_on"); t != nil {
		product.CreatedOn = *t
	}
	return product
}
