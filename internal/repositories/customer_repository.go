package repositories

import (
	"context"
	"errors"

	"waterbill-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	query := `
		SELECT id, name, email, address, meter_number, is_deactivated, created_at
		FROM customers
		ORDER BY name ASC
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		c := &models.Customer{}
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Email,
			&c.Address,
			&c.MeterNumber,
			&c.IsDeactivated,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	return customers, rows.Err()
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int) (*models.Customer, error) {
	query := `
		SELECT id, name, email, address, meter_number, is_deactivated, created_at
		FROM customers
		WHERE id = $1
	`

	c := &models.Customer{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Address,
		&c.MeterNumber,
		&c.IsDeactivated,
		&c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (r *CustomerRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM customers WHERE NOT is_deactivated`).Scan(&count)
	return count, err
}
