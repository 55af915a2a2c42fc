package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"canteen-orders/internal/domain"
	"canteen-orders/internal/service"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

const headerColumns = `id, order_number, buyer_id, total_amount, preparation_minutes,
		estimated_ready_at, COALESCE(notes, ''), status, payment_status, created_at`

// InsertOrderAtomic writes the header and every line item in one transaction:
// either all rows become visible or none do. A line-item failure after the
// header insert surfaces as PartialOrderError so the caller can warn instead
// of silently showing success.
func (r *PostgresRepository) InsertOrderAtomic(ctx context.Context, header *domain.OrderHeader, lines []domain.OrderLine) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRepositoryUnavailable, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO orders (id, order_number, buyer_id, total_amount, preparation_minutes,
			estimated_ready_at, payment_qr, notes, status, payment_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, header.ID, header.OrderNumber, header.BuyerID, header.TotalAmount, header.PreparationMinutes,
		header.EstimatedReadyAt, header.PaymentQR, nullable(header.Notes), string(header.Status),
		string(header.PaymentStatus), header.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert order header: %w", err)
	}

	for _, line := range lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, item_id, item_kind, quantity, unit_price, item_name)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, line.OrderID, line.ItemID, string(line.ItemKind), line.Quantity, line.UnitPrice, line.ItemName); err != nil {
			return &domain.PartialOrderError{OrderNumber: header.OrderNumber, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order %s: %w", header.OrderNumber, err)
	}
	return nil
}

func (r *PostgresRepository) GetOrder(ctx context.Context, orderID string) (*domain.OrderHeader, error) {
	var header domain.OrderHeader
	err := r.DB.QueryRowContext(ctx, `
		SELECT `+headerColumns+`, COALESCE(payment_qr, '')
		FROM orders WHERE id = $1
	`, orderID).Scan(&header.ID, &header.OrderNumber, &header.BuyerID, &header.TotalAmount,
		&header.PreparationMinutes, &header.EstimatedReadyAt, &header.Notes,
		&header.Status, &header.PaymentStatus, &header.CreatedAt, &header.PaymentQR)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &header, nil
}

func (r *PostgresRepository) GetOrderLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT order_id, item_id, item_kind, quantity, unit_price, item_name
		FROM order_items
		WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.OrderID, &line.ItemID, &line.ItemKind, &line.Quantity, &line.UnitPrice, &line.ItemName); err != nil {
			continue
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *PostgresRepository) ListOrdersForBuyer(ctx context.Context, buyerID string) ([]domain.OrderHeader, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+headerColumns+`
		FROM orders
		WHERE buyer_id = $1
		ORDER BY created_at DESC
	`, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var headers []domain.OrderHeader
	for rows.Next() {
		var header domain.OrderHeader
		if err := rows.Scan(&header.ID, &header.OrderNumber, &header.BuyerID, &header.TotalAmount,
			&header.PreparationMinutes, &header.EstimatedReadyAt, &header.Notes,
			&header.Status, &header.PaymentStatus, &header.CreatedAt); err != nil {
			continue
		}
		headers = append(headers, header)
	}
	return headers, rows.Err()
}

// NextOrderNumber draws from the atomic sequence so concurrent placements can
// never receive the same number.
func (r *PostgresRepository) NextOrderNumber(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRowContext(ctx, "SELECT nextval('order_number_seq')").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresRepository) SavePaymentQR(ctx context.Context, orderID string, qr []byte) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE orders SET payment_qr = $1 WHERE id = $2", qr, orderID)
	return err
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.OrderHeader, error) {
	return r.updateHeader(ctx, "UPDATE orders SET status = $1 WHERE id = $2 RETURNING "+headerColumns, string(status), orderID)
}

func (r *PostgresRepository) UpdatePayment(ctx context.Context, orderID string, status domain.PaymentStatus) (*domain.OrderHeader, error) {
	return r.updateHeader(ctx, "UPDATE orders SET payment_status = $1 WHERE id = $2 RETURNING "+headerColumns, string(status), orderID)
}

func (r *PostgresRepository) updateHeader(ctx context.Context, query string, args ...interface{}) (*domain.OrderHeader, error) {
	var header domain.OrderHeader
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&header.ID, &header.OrderNumber, &header.BuyerID, &header.TotalAmount,
		&header.PreparationMinutes, &header.EstimatedReadyAt, &header.Notes,
		&header.Status, &header.PaymentStatus, &header.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &header, nil
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			order_number TEXT NOT NULL UNIQUE,
			buyer_id TEXT NOT NULL,
			total_amount NUMERIC(10,2) NOT NULL,
			preparation_minutes INT NOT NULL,
			estimated_ready_at TIMESTAMPTZ NOT NULL,
			payment_qr BYTEA,
			notes TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			payment_status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_id UUID NOT NULL REFERENCES orders(id),
			item_id TEXT NOT NULL,
			item_kind TEXT NOT NULL,
			quantity INT NOT NULL,
			unit_price NUMERIC(10,2) NOT NULL,
			item_name TEXT NOT NULL
		)`,
		"CREATE INDEX IF NOT EXISTS idx_orders_buyer ON orders (buyer_id, created_at DESC)",
		"CREATE SEQUENCE IF NOT EXISTS order_number_seq",
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var (
	_ service.OrderRepository = (*PostgresRepository)(nil)
	_ service.SequenceSource  = (*PostgresRepository)(nil)
)
