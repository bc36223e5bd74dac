package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rogerio-castellano/product-catalog/internal/db"
	"github.com/rogerio-castellano/product-catalog/internal/models"
)

const pgUniqueViolation = "23505"

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(database *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: database}
}

const productColumns = `id, name, sku, description, price_amount, price_currency,
	tags, dimensions, images, in_stock, category_id, owner_id, created_at, updated_at`

func (r *PostgresProductRepository) Create(p models.Product) (models.Product, error) {
	tags, dimensions, images, err := marshalJSONColumns(p)
	if err != nil {
		return models.Product{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `INSERT INTO products
			(name, sku, description, price_amount, price_currency, tags, dimensions, images, in_stock, category_id, owner_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id`
		return tx.QueryRowContext(ctx, query,
			p.Name, p.SKU, nullString(p.Description), p.Price.Amount, p.Price.Currency,
			tags, dimensions, images, p.InStock, p.CategoryID, p.OwnerID, p.CreatedAt,
		).Scan(&p.ID)
	})
	if err != nil {
		return models.Product{}, mapUniqueViolation(err)
	}
	return p, nil
}

func (r *PostgresProductRepository) GetAll(skip, limit int) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id OFFSET $1 LIMIT $2`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresProductRepository) GetByID(id int) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Update(p models.Product) (models.Product, error) {
	tags, dimensions, images, err := marshalJSONColumns(p)
	if err != nil {
		return models.Product{}, err
	}

	query := `UPDATE products SET
		name = $1, sku = $2, description = $3, price_amount = $4, price_currency = $5,
		tags = $6, dimensions = $7, images = $8, in_stock = $9, category_id = $10, updated_at = $11
		WHERE id = $12`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.SKU, nullString(p.Description), p.Price.Amount, p.Price.Currency,
		tags, dimensions, images, p.InStock, p.CategoryID, now, p.ID)
	if err != nil {
		return models.Product{}, mapUniqueViolation(err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Product{}, ErrProductNotFound
	}
	p.UpdatedAt = &now
	return p, nil
}

func (r *PostgresProductRepository) ExistsBySKU(sku string) (bool, error) {
	return r.exists(`SELECT EXISTS(SELECT 1 FROM products WHERE sku = $1)`, sku)
}

func (r *PostgresProductRepository) ExistsByName(name string) (bool, error) {
	return r.exists(`SELECT EXISTS(SELECT 1 FROM products WHERE name = $1)`, name)
}

func (r *PostgresProductRepository) exists(query, arg string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var found bool
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&found)
	return found, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var (
		p          models.Product
		desc       sql.NullString
		tags       []byte
		dimensions []byte
		images     []byte
		updatedAt  sql.NullTime
	)
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &desc, &p.Price.Amount, &p.Price.Currency,
		&tags, &dimensions, &images, &p.InStock, &p.CategoryID, &p.OwnerID, &p.CreatedAt, &updatedAt)
	if err != nil {
		return models.Product{}, err
	}

	p.Description = desc.String
	if updatedAt.Valid {
		t := updatedAt.Time
		p.UpdatedAt = &t
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &p.Tags); err != nil {
			return models.Product{}, fmt.Errorf("invalid tags column: %w", err)
		}
	}
	if len(dimensions) > 0 {
		var d models.Dimensions
		if err := json.Unmarshal(dimensions, &d); err != nil {
			return models.Product{}, fmt.Errorf("invalid dimensions column: %w", err)
		}
		p.Dimensions = &d
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return models.Product{}, fmt.Errorf("invalid images column: %w", err)
		}
	}
	return p, nil
}

// marshalJSONColumns denormalizes tags, dimensions and images into their
// storage-native JSON columns. Dimensions stay NULL when absent.
func marshalJSONColumns(p models.Product) (tags, dimensions, images []byte, err error) {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if tags, err = json.Marshal(p.Tags); err != nil {
		return nil, nil, nil, err
	}
	if p.Dimensions != nil {
		if dimensions, err = json.Marshal(p.Dimensions); err != nil {
			return nil, nil, nil, err
		}
	}
	if p.Images == nil {
		p.Images = []models.Image{}
	}
	if images, err = json.Marshal(p.Images); err != nil {
		return nil, nil, nil, err
	}
	return tags, dimensions, images, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicatedValueUnique
	}
	return err
}
