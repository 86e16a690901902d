// Package vmdb gives tests direct read access to the product's backing
// postgres database, for assertions the UI cannot make. Table layouts
// differ between product versions, so the schema is reflected at runtime
// rather than declared.
package vmdb

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	DefaultPort     = 5432
	DefaultDatabase = "vmdb_production"
)

// BuildURL assembles the connection string for an appliance database.
func BuildURL(host, username, password string) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(username, password),
		Host:   fmt.Sprintf("%s:%d", host, DefaultPort),
		Path:   DefaultDatabase,
	}
	return u.String()
}

// Column describes one reflected column.
type Column struct {
	Name     string
	DataType string
	Nullable bool
}

// Table describes one reflected table.
type Table struct {
	Name    string
	Columns []Column
}

// UnknownTableError is returned when reflection finds no such table.
type UnknownTableError struct {
	Name string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("no table %q in schema", e.Name)
}

// Reflector loads one table's layout from the live schema. *Pool satisfies
// it; tests substitute fakes.
type Reflector interface {
	ReflectTable(ctx context.Context, name string) (*Table, error)
	TableNames(ctx context.Context) ([]string, error)
}

// Client caches reflected tables. Reflection round-trips to the database,
// and test sessions touch the same handful of tables repeatedly, so each
// layout is loaded once and kept until Reset.
type Client struct {
	reflector Reflector

	mu     sync.Mutex
	tables map[string]*Table
}

func NewClient(reflector Reflector) *Client {
	return &Client{
		reflector: reflector,
		tables:    make(map[string]*Table),
	}
}

// Table returns the named table's layout, reflecting it on first use.
func (c *Client) Table(ctx context.Context, name string) (*Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if table, ok := c.tables[name]; ok {
		return table, nil
	}
	table, err := c.reflector.ReflectTable(ctx, name)
	if err != nil {
		return nil, err
	}
	c.tables[name] = table
	return table, nil
}

// TableNames lists the schema's tables, sorted.
func (c *Client) TableNames(ctx context.Context) ([]string, error) {
	names, err := c.reflector.TableNames(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Reset drops the cache, forcing re-reflection. Needed after operations
// that migrate the schema, e.g. an appliance upgrade.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables = make(map[string]*Table)
}

// Pool reflects schema over a live pgx connection pool.
type Pool struct {
	pool *pgxpool.Pool
}

var _ Reflector = (*Pool)(nil)

// Connect opens a pool against the appliance database.
func Connect(ctx context.Context, url string) (*Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connecting to vmdb: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging vmdb: %w", err)
	}
	return &Pool{pool: pool}, nil
}

func (p *Pool) Close() { p.pool.Close() }

func (p *Pool) ReflectTable(ctx context.Context, name string) (*Table, error) {
	rows, err := p.pool.Query(ctx, `
SELECT column_name, data_type, is_nullable = 'YES'
FROM information_schema.columns
WHERE table_schema = 'public' AND table_name = $1
ORDER BY ordinal_position`, name)
	if err != nil {
		return nil, fmt.Errorf("reflecting table %q: %w", name, err)
	}
	defer rows.Close()

	table := Table{Name: name}
	for rows.Next() {
		var col Column
		if err := rows.Scan(&col.Name, &col.DataType, &col.Nullable); err != nil {
			return nil, err
		}
		table.Columns = append(table.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(table.Columns) == 0 {
		return nil, &UnknownTableError{Name: name}
	}
	return &table, nil
}

func (p *Pool) TableNames(ctx context.Context) ([]string, error) {
	rows, err := p.pool.Query(ctx, `
SELECT table_name
FROM information_schema.tables
WHERE table_schema = 'public' AND table_type = 'BASE TABLE'`)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
