package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"sales-dashboard/models"
	"sales-dashboard/utils"
)

const insertBatchSize = 50

// transactionColumns is the insert/select column order of the transactions table.
var transactionColumns = []string{
	"row_id", "order_id", "order_date", "ship_date", "ship_mode", "customer_id",
	"customer_name", "segment", "country", "city", "state", "postal_code",
	"region", "product_id", "category", "sub_category", "product_name", "sales",
}

// PostgresStore keeps the cleaned dataset in a PostgreSQL transactions table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection, waits for the server with retry and
// runs schema migrations.
func NewPostgresStore(dsn string, retry *utils.RetryConfig) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 1}
	}
	if err := retry.Do("postgres ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	ps := &PostgresStore{db: db}
	if err := ps.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return ps, nil
}

func (ps *PostgresStore) migrate() error {
	_, err := ps.db.Exec(`
		CREATE TABLE IF NOT EXISTS transactions (
			row_id        BIGINT        PRIMARY KEY,
			order_id      TEXT          NOT NULL,
			order_date    DATE          NOT NULL,
			ship_date     DATE          NOT NULL,
			ship_mode     TEXT          NOT NULL DEFAULT '',
			customer_id   TEXT          NOT NULL DEFAULT '',
			customer_name TEXT          NOT NULL DEFAULT '',
			segment       TEXT          NOT NULL DEFAULT '',
			country       TEXT          NOT NULL DEFAULT '',
			city          TEXT          NOT NULL DEFAULT '',
			state         TEXT          NOT NULL DEFAULT '',
			postal_code   TEXT          NOT NULL DEFAULT '',
			region        TEXT          NOT NULL DEFAULT '',
			product_id    TEXT          NOT NULL DEFAULT '',
			category      TEXT          NOT NULL DEFAULT '',
			sub_category  TEXT          NOT NULL DEFAULT '',
			product_name  TEXT          NOT NULL DEFAULT '',
			sales         NUMERIC(14,4) NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_transactions_order_date ON transactions(order_date);
		CREATE INDEX IF NOT EXISTS idx_transactions_segment    ON transactions(segment);
		CREATE INDEX IF NOT EXISTS idx_transactions_region     ON transactions(region);
	`)
	return err
}

// execer is the part of *sql.DB and *sql.Tx used for writes.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// Clear deletes every stored transaction.
func (ps *PostgresStore) Clear() error {
	return clearRows(ps.db)
}

func clearRows(ex execer) error {
	if _, err := ex.Exec("DELETE FROM transactions"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write replaces the stored dataset with rows in one transaction. On any
// error the previous contents are kept.
func (ps *PostgresStore) Write(rows []models.TransactionRow) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := ps.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	if err := replaceRows(tx, rows); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// replaceRows clears the table and inserts rows in batches, stopping at the first error.
func replaceRows(ex execer, rows []models.TransactionRow) error {
	if err := clearRows(ex); err != nil {
		return err
	}
	for i := 0; i < len(rows); i += insertBatchSize {
		end := min(i+insertBatchSize, len(rows))
		query, args := buildInsert(rows[i:end])
		if _, err := ex.Exec(query, args...); err != nil {
			return fmt.Errorf("postgres: insert batch at %d: %w", i, err)
		}
	}
	return nil
}

// buildInsert renders one multi-row INSERT with positional placeholders.
func buildInsert(batch []models.TransactionRow) (string, []any) {
	width := len(transactionColumns)
	valueStrings := make([]string, 0, len(batch))
	args := make([]any, 0, len(batch)*width)

	for idx, r := range batch {
		ph := make([]string, width)
		for c := range ph {
			ph[c] = fmt.Sprintf("$%d", idx*width+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
		args = append(args,
			r.RowID, r.OrderID, r.OrderDate, r.ShipDate, r.ShipMode, r.CustomerID,
			r.CustomerName, r.Segment, r.Country, r.City, r.State, r.PostalCode,
			r.Region, r.ProductID, r.Category, r.SubCategory, r.ProductName, r.Sales)
	}

	query := fmt.Sprintf(
		"INSERT INTO transactions (%s) VALUES %s ON CONFLICT (row_id) DO NOTHING",
		strings.Join(transactionColumns, ", "), strings.Join(valueStrings, ","))
	return query, args
}

// FetchAll returns every stored transaction in row id order.
func (ps *PostgresStore) FetchAll() ([]models.TransactionRow, error) {
	rows, err := ps.db.Query(fmt.Sprintf(
		"SELECT %s FROM transactions ORDER BY row_id", strings.Join(transactionColumns, ", ")))
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var out []models.TransactionRow
	for rows.Next() {
		var r models.TransactionRow
		if err := rows.Scan(
			&r.RowID, &r.OrderID, &r.OrderDate, &r.ShipDate, &r.ShipMode, &r.CustomerID,
			&r.CustomerName, &r.Segment, &r.Country, &r.City, &r.State, &r.PostalCode,
			&r.Region, &r.ProductID, &r.Category, &r.SubCategory, &r.ProductName, &r.Sales,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		r.OrderDate = r.OrderDate.UTC()
		r.ShipDate = r.ShipDate.UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close releases the connection pool.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}

var _ TransactionStore = (*PostgresStore)(nil)
