package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vbonduro/officepantry/internal/domain"
)

type ProductStore struct {
	db DBTX
}

func NewProductStore(db DBTX) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id, name, category, current_price, cost_price, stock, status, icon, updated_at`

func scanProduct(sc interface{ Scan(...any) error }, p *domain.Product) error {
	return sc.Scan(&p.ID, &p.Name, &p.Category, &p.CurrentPrice, &p.CostPrice, &p.Stock, &p.Status, &p.Icon, &p.UpdatedAt)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (s *ProductStore) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO products (name, category, current_price, cost_price, stock, status, icon)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.Name, p.Category, money(p.CurrentPrice), money(p.CostPrice), p.Stock, string(p.Status), p.Icon)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *ProductStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p := &domain.Product{}
	err := scanProduct(s.db.QueryRowContext(ctx, `
		SELECT `+productColumns+` FROM products WHERE id = ?
	`, id), p)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return p, nil
}

// List returns every product in insertion order.
func (s *ProductStore) List(ctx context.Context) ([]*domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+productColumns+` FROM products ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer closeRows(rows)

	var products []*domain.Product
	for rows.Next() {
		p := &domain.Product{}
		if err := scanProduct(rows, p); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

func (s *ProductStore) UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE products SET current_price = ?, updated_at = datetime('now') WHERE id = ?
	`, money(price), id)
	if err != nil {
		return fmt.Errorf("failed to update price: %w", err)
	}
	return expectOneRow(result, "product")
}

func (s *ProductStore) UpdateStock(ctx context.Context, id int64, stock int, status domain.ProductStatus) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE products SET stock = ?, status = ?, updated_at = datetime('now') WHERE id = ?
	`, stock, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	return expectOneRow(result, "product")
}

func (s *ProductStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}
