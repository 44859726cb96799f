package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/kailas-cloud/catalogai/internal/db"
	"github.com/kailas-cloud/catalogai/internal/db/sqlstore"
	"github.com/kailas-cloud/catalogai/internal/domain"
	domcat "github.com/kailas-cloud/catalogai/internal/domain/catalog"
	"github.com/kailas-cloud/catalogai/internal/lexicon"
)

// columns maps searchable fields to SQL expressions.
var columns = map[domcat.Field]string{
	domcat.FieldTitle:       "p.title",
	domcat.FieldBrand:       "p.brand",
	domcat.FieldDescription: "p.description",
	domcat.FieldFeatures:    "p.features",
	domcat.FieldCategory:    "c.name",
}

const selectItems = `SELECT p.id, p.title, p.brand, p.description, p.features,
	COALESCE(c.name, ''), p.price, p.stock, p.status
FROM products p
LEFT JOIN categories c ON c.id = p.category_id`

var schema = map[sqlstore.Dialect][]string{
	sqlstore.SQLite: {
		`CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			brand TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			features TEXT NOT NULL DEFAULT '',
			category_id INTEGER REFERENCES categories(id),
			price REAL NOT NULL DEFAULT 0,
			stock INTEGER NOT NULL DEFAULT 0,
			status INTEGER NOT NULL DEFAULT 1
		)`,
	},
	sqlstore.Postgres: {
		`CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id BIGINT PRIMARY KEY,
			title TEXT NOT NULL,
			brand TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			features TEXT NOT NULL DEFAULT '',
			category_id BIGINT REFERENCES categories(id),
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			stock INTEGER NOT NULL DEFAULT 0,
			status SMALLINT NOT NULL DEFAULT 1
		)`,
	},
}

// SQL reads the catalog from products/categories tables.
type SQL struct {
	db      *sql.DB
	dialect sqlstore.Dialect
}

// NewSQL creates a SQL-backed catalog.
func NewSQL(conn *sql.DB, dialect sqlstore.Dialect) *SQL {
	return &SQL{db: conn, dialect: dialect}
}

// Migrate creates the tables when missing.
func (s *SQL) Migrate(ctx context.Context) error {
	for _, stmt := range schema[s.dialect] {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return &db.Error{Op: db.OpMigrate, Err: err}
		}
	}
	return nil
}

// Find translates q into LIKE predicates and returns matches in id order.
// LOWER() folds ASCII only on sqlite, so terms are compared after Lower.
func (s *SQL) Find(ctx context.Context, q domcat.Query) ([]domcat.Item, error) {
	query, args := s.buildFind(q)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, &db.Error{Op: db.OpQuery, Err: err})
	}
	defer rows.Close()

	var out []domcat.Item
	for rows.Next() {
		var it domcat.Item
		var status int
		if err := rows.Scan(&it.ID, &it.Title, &it.Brand, &it.Description, &it.Features,
			&it.Category, &it.Price, &it.Stock, &status); err != nil {
			return nil, &db.Error{Op: db.OpQuery, Err: err}
		}
		it.Status = domcat.Status(status)
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, &db.Error{Op: db.OpQuery, Err: err})
	}
	return out, nil
}

func (s *SQL) buildFind(q domcat.Query) (string, []any) {
	var b strings.Builder
	var args []any
	bind := func(v any) string {
		args = append(args, v)
		return s.dialect.Placeholder(len(args))
	}

	b.WriteString(selectItems)
	b.WriteString("\nWHERE p.status = ")
	b.WriteString(bind(int(domcat.Active)))

	for _, g := range q.Groups() {
		var ors []string
		for _, c := range g {
			pattern := "%" + escapeLike(lexicon.Lower(c.Term())) + "%"
			for _, f := range c.Fields() {
				col, ok := columns[f]
				if !ok {
					continue
				}
				ors = append(ors, fmt.Sprintf(`LOWER(%s) LIKE %s ESCAPE '\'`, col, bind(pattern)))
			}
		}
		if len(ors) == 0 {
			continue
		}
		b.WriteString("\n  AND (")
		b.WriteString(strings.Join(ors, " OR "))
		b.WriteString(")")
	}

	if pr := q.Price(); pr != nil {
		if lo := pr.Min(); lo != nil {
			b.WriteString("\n  AND p.price >= ")
			b.WriteString(bind(*lo))
		}
		if hi := pr.Max(); hi != nil {
			b.WriteString("\n  AND p.price < ")
			b.WriteString(bind(*hi))
		}
	}

	b.WriteString("\nORDER BY p.id\nLIMIT ")
	b.WriteString(bind(q.Limit()))
	return b.String(), args
}

// Upsert inserts or updates items and their categories in one transaction.
func (s *SQL) Upsert(ctx context.Context, items []domcat.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &db.Error{Op: db.OpUpsert, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	p := s.dialect.Placeholder
	insertCategory := fmt.Sprintf(
		"INSERT INTO categories (name) VALUES (%s) ON CONFLICT (name) DO NOTHING", p(1))
	selectCategory := fmt.Sprintf("SELECT id FROM categories WHERE name = %s", p(1))
	upsertProduct := fmt.Sprintf(`INSERT INTO products
	(id, title, brand, description, features, category_id, price, stock, status)
VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s)
ON CONFLICT (id) DO UPDATE SET
	title = excluded.title, brand = excluded.brand, description = excluded.description,
	features = excluded.features, category_id = excluded.category_id,
	price = excluded.price, stock = excluded.stock, status = excluded.status`,
		p(1), p(2), p(3), p(4), p(5), p(6), p(7), p(8), p(9))

	categories := make(map[string]int64)
	for _, it := range items {
		var categoryID sql.NullInt64
		if it.Category != "" {
			id, ok := categories[it.Category]
			if !ok {
				if _, err := tx.ExecContext(ctx, insertCategory, it.Category); err != nil {
					return &db.Error{Op: db.OpUpsert, Err: fmt.Errorf("category %q: %w", it.Category, err)}
				}
				if err := tx.QueryRowContext(ctx, selectCategory, it.Category).Scan(&id); err != nil {
					return &db.Error{Op: db.OpUpsert, Err: fmt.Errorf("category %q id: %w", it.Category, err)}
				}
				categories[it.Category] = id
			}
			categoryID = sql.NullInt64{Int64: id, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, upsertProduct,
			it.ID, it.Title, it.Brand, it.Description, it.Features,
			categoryID, it.Price, it.Stock, int(it.Status),
		); err != nil {
			return &db.Error{Op: db.OpUpsert, Err: fmt.Errorf("product %d: %w", it.ID, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &db.Error{Op: db.OpUpsert, Err: err}
	}
	return nil
}

// Ping checks the database connection.
func (s *SQL) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	return nil
}

// escapeLike escapes LIKE wildcards so terms match literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
