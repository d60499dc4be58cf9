package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/woodora/woodora-backend/internal/model"
	"github.com/woodora/woodora-backend/internal/product/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, name, description, regular_price, sale_price, category, tags,
            inventory, options, color_options, allow_image_upload, image_url,
            length_cm, width_cm, height_cm, weight_g, is_active, created_at, updated_at
        )
        VALUES (
            :id, :name, :description, :regular_price, :sale_price, :category, :tags,
            :inventory, :options, :color_options, :allow_image_upload, :image_url,
            :length_cm, :width_cm, :height_cm, :weight_g, :is_active, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, sku)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var products []model.Product
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.Category != "" {
		// category column is comma-joined; match a whole segment
		conditions = append(conditions, "(',' || replace(category, ', ', ',') || ',') ILIKE :category")
		args["category"] = "%," + f.Category + ",%"
	}
	if f.Tag != "" {
		conditions = append(conditions, "tags::jsonb @> :tag")
		tagJSON, _ := json.Marshal([]string{f.Tag})
		args["tag"] = string(tagJSON)
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR id ILIKE :search OR description ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM products" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	orderBy := "created_at DESC"
	if f.SortBy != "" {
		// whitelist sortable fields
		switch f.SortBy {
		case "name":
			orderBy = "name"
		case "price":
			orderBy = "regular_price"
		case "created_at":
			orderBy = "created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf("SELECT * FROM products%s ORDER BY %s", whereClause, orderBy)

	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		if offset < 0 {
			offset = 0
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &products, args); err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET name = :name,
            description = :description,
            regular_price = :regular_price,
            sale_price = :sale_price,
            category = :category,
            tags = :tags,
            inventory = :inventory,
            options = :options,
            color_options = :color_options,
            allow_image_upload = :allow_image_upload,
            image_url = :image_url,
            length_cm = :length_cm,
            width_cm = :width_cm,
            height_cm = :height_cm,
            weight_g = :weight_g,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, sku string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1", sku)
	return err
}

// BulkUpdatePrices shifts prices for every matched product inside one
// transaction, so a partial batch can never be left behind.
func (r *PGRepository) BulkUpdatePrices(ctx context.Context, input *dto.BulkPriceInput) (int, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var set string
	switch input.Mode {
	case "percent":
		set = "regular_price = round(regular_price * (1 + $1 / 100.0), 2)"
	case "flat":
		set = "regular_price = greatest(regular_price + $1, 0)"
	default:
		return 0, fmt.Errorf("unknown bulk price mode %q", input.Mode)
	}

	query := "UPDATE products SET " + set + ", updated_at = NOW()"
	args := []interface{}{input.Value}
	if input.Category != "" {
		query += " WHERE (',' || replace(category, ', ', ',') || ',') ILIKE $2"
		args = append(args, "%,"+input.Category+",%")
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(rows), nil
}

// BulkUpdateTags reads, rewrites and stores the tag list of each named SKU
// inside one transaction.
func (r *PGRepository) BulkUpdateTags(ctx context.Context, input *dto.BulkTagsInput) (int, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	updated := 0
	for _, sku := range input.SKUs {
		var p model.Product
		err := tx.GetContext(ctx, &p, `SELECT * FROM products WHERE id = $1 FOR UPDATE`, sku)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return 0, err
		}

		p.Tags = mergeTags(p.Tags, input.Add, input.Remove)

		if _, err := tx.ExecContext(ctx,
			`UPDATE products SET tags = $1, updated_at = NOW() WHERE id = $2`,
			p.Tags, sku,
		); err != nil {
			return 0, err
		}
		updated++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return updated, nil
}

func mergeTags(current model.StringList, add, remove []string) model.StringList {
	seen := map[string]bool{}
	for _, t := range remove {
		seen[strings.ToLower(t)] = true
	}

	out := model.StringList{}
	for _, t := range current {
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	for _, t := range add {
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}
