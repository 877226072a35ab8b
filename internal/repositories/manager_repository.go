package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"

	"github.com/rentstead/rentals-service/internal/models"
	"github.com/rentstead/rentals-service/internal/utils"
)

type ManagerRepository interface {
	Create(ctx context.Context, m *models.Manager) error
	GetByCognitoID(ctx context.Context, cognitoID string) (*models.Manager, error)
	Update(ctx context.Context, m *models.Manager) error
}

type managerRepo struct {
	db DB
}

func NewManagerRepository(db DB) ManagerRepository {
	return &managerRepo{db: db}
}

func scanManager(row pgx.Row) (*models.Manager, error) {
	var m models.Manager
	err := row.Scan(&m.ID, &m.CognitoID, &m.Name, &m.Email, &m.PhoneNumber)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *managerRepo) Create(ctx context.Context, m *models.Manager) error {
	err := r.db.QueryRow(ctx, `
        INSERT INTO managers (cognito_id, name, email, phone_number)
        VALUES ($1,$2,$3,$4)
        RETURNING id
    `, m.CognitoID, m.Name, m.Email, m.PhoneNumber).Scan(&m.ID)
	if IsUniqueViolation(err) {
		return utils.ErrAlreadyExists
	}
	return err
}

func (r *managerRepo) GetByCognitoID(ctx context.Context, cognitoID string) (*models.Manager, error) {
	return scanManager(r.db.QueryRow(ctx, `
        SELECT id, cognito_id, name, email, phone_number FROM managers WHERE cognito_id=$1
    `, cognitoID))
}

func (r *managerRepo) Update(ctx context.Context, m *models.Manager) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE managers SET name=$1, email=$2, phone_number=$3 WHERE cognito_id=$4
    `, m.Name, m.Email, m.PhoneNumber, m.CognitoID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrManagerNotFound
	}
	return nil
}
