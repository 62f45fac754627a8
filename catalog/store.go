// Package catalog implements the product service backend the console talks to.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"productconsole/database"
	"productconsole/models"
	"productconsole/utils"
)

var (
	// ErrProductNotFound는 제품이 존재하지 않을 때 반환됩니다.
	ErrProductNotFound = errors.New("product not found")
	// ErrFileNotFound는 첨부 파일이 존재하지 않을 때 반환됩니다.
	ErrFileNotFound = errors.New("file not found")
)

const productColumns = `id, name, type, description, api_endpoint, status, pricing_model, base_price, documentation, created_at, updated_at`

const fileColumns = `id, product_id, file_type, file_name, stored_name, content_type, size, checksum, storage_path, created_at`

// Store persists products and file metadata.
type Store struct {
	db database.SQLExecutor
}

// NewStore wraps db.
func NewStore(db database.SQLExecutor) *Store {
	return &Store{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.ProductResponse, error) {
	var (
		p     models.ProductResponse
		price string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Type, &p.Description, &p.APIEndpoint, &p.Status,
		&p.PricingModel, &price, &p.Documentation, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	p.BasePrice, err = decimal.NewFromString(price)
	if err != nil {
		return p, fmt.Errorf("product %s: invalid base price %q: %w", p.ID, price, err)
	}
	return p, nil
}

// ListProducts returns every product ordered by id.
func (s *Store) ListProducts(ctx context.Context) ([]models.ProductResponse, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.ProductResponse{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetProduct returns product id or ErrProductNotFound.
func (s *Store) GetProduct(ctx context.Context, id int64) (models.ProductResponse, error) {
	p, err := scanProduct(s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrProductNotFound
	}
	return p, err
}

// CreateProduct inserts a product. Missing status defaults to DRAFT.
func (s *Store) CreateProduct(ctx context.Context, req models.ProductCreateRequest) (models.ProductResponse, error) {
	status := req.Status
	if status == "" {
		status = models.ProductStatusDraft
	}
	now := utils.FormatTimestamp(utils.NowUTC())

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO products (name, type, description, api_endpoint, status, pricing_model, base_price, documentation, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		strings.TrimSpace(req.Name), req.Type, req.Description, req.APIEndpoint, status,
		req.PricingModel, req.BasePrice.String(), req.Documentation, now, now,
	)
	if err != nil {
		return models.ProductResponse{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.ProductResponse{}, err
	}

	return models.ProductResponse{
		ID:            models.IDFromInt(id),
		Name:          strings.TrimSpace(req.Name),
		Type:          req.Type,
		Description:   req.Description,
		APIEndpoint:   req.APIEndpoint,
		Status:        status,
		PricingModel:  req.PricingModel,
		BasePrice:     req.BasePrice,
		Documentation: req.Documentation,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// UpdateProduct applies the non-nil fields of req.
func (s *Store) UpdateProduct(ctx context.Context, id int64, req models.ProductUpdateRequest) (models.ProductResponse, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return p, err
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		p.Type = *req.Type
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.APIEndpoint != nil {
		p.APIEndpoint = *req.APIEndpoint
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.PricingModel != nil {
		p.PricingModel = *req.PricingModel
	}
	if req.BasePrice != nil {
		p.BasePrice = *req.BasePrice
	}
	if req.Documentation != nil {
		p.Documentation = *req.Documentation
	}
	p.UpdatedAt = utils.FormatTimestamp(utils.NowUTC())

	_, err = s.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, type = ?, description = ?, api_endpoint = ?, status = ?, pricing_model = ?, base_price = ?, documentation = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Type, p.Description, p.APIEndpoint, p.Status, p.PricingModel,
		p.BasePrice.String(), p.Documentation, p.UpdatedAt, id,
	)
	return p, err
}

// DeleteProduct removes a product and its file metadata. Stored blobs are left for the sweeper.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_files WHERE product_id = ?`, id); err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return tx.Commit()
}

func scanFile(row rowScanner) (models.FileAsset, error) {
	var f models.FileAsset
	err := row.Scan(&f.ID, &f.ProductID, &f.FileType, &f.FileName, &f.StoredName,
		&f.ContentType, &f.Size, &f.Checksum, &f.StoragePath, &f.CreatedAt)
	return f, err
}

// CreateFile records metadata for a stored blob.
func (s *Store) CreateFile(ctx context.Context, f models.FileAsset) (models.FileAsset, error) {
	if f.CreatedAt == "" {
		f.CreatedAt = utils.FormatTimestamp(utils.NowUTC())
	}
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO product_files (product_id, file_type, file_name, stored_name, content_type, size, checksum, storage_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ProductID, f.FileType, f.FileName, f.StoredName, f.ContentType, f.Size, f.Checksum, f.StoragePath, f.CreatedAt,
	)
	if err != nil {
		return f, err
	}
	f.ID, err = result.LastInsertId()
	return f, err
}

// ListFiles returns the files of one product slot, oldest first.
func (s *Store) ListFiles(ctx context.Context, productID int64, fileType models.FileType) ([]models.FileAsset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+fileColumns+` FROM product_files WHERE product_id = ? AND file_type = ? ORDER BY id`,
		productID, fileType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := []models.FileAsset{}
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// GetFile returns file id or ErrFileNotFound.
func (s *Store) GetFile(ctx context.Context, id int64) (models.FileAsset, error) {
	f, err := scanFile(s.db.QueryRowContext(ctx, `SELECT `+fileColumns+` FROM product_files WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return f, ErrFileNotFound
	}
	return f, err
}

// DeleteFile removes file metadata and returns the deleted record.
func (s *Store) DeleteFile(ctx context.Context, id int64) (models.FileAsset, error) {
	f, err := s.GetFile(ctx, id)
	if err != nil {
		return f, err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM product_files WHERE id = ?`, id); err != nil {
		return f, err
	}
	return f, nil
}

// StoragePaths returns the set of blob paths still referenced by metadata.
func (s *Store) StoragePaths(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT storage_path FROM product_files`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	paths := make(map[string]struct{})
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths[p] = struct{}{}
	}
	return paths, rows.Err()
}
