package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/splitkit/split_ledger_app/internal/apperrors"
	"github.com/splitkit/split_ledger_app/internal/core/domain"
	portsrepo "github.com/splitkit/split_ledger_app/internal/core/ports/repositories"
	"github.com/splitkit/split_ledger_app/internal/models"
	"github.com/splitkit/split_ledger_app/internal/utils/mapping"
)

const settlementColumns = `settlement_id, group_id, payer_id, payee_id, amount, status, note, created_at, created_by, last_updated_at, last_updated_by`

type PgxSettlementRepository struct {
	db *pgxpool.Pool
}

func newPgxSettlementRepository(db *pgxpool.Pool) portsrepo.SettlementRepositoryFacade {
	return &PgxSettlementRepository{db: db}
}

// Ensure PgxSettlementRepository implements portsrepo.SettlementRepositoryFacade
var _ portsrepo.SettlementRepositoryFacade = (*PgxSettlementRepository)(nil)

func scanSettlement(row pgx.Row) (*models.Settlement, error) {
	var m models.Settlement
	err := row.Scan(
		&m.SettlementID,
		&m.GroupID,
		&m.PayerID,
		&m.PayeeID,
		&m.Amount,
		&m.Status,
		&m.Note,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxSettlementRepository) SaveSettlement(ctx context.Context, settlement domain.Settlement) error {
	m := mapping.ToModelSettlement(settlement)
	query := `
        INSERT INTO settlements (settlement_id, group_id, payer_id, payee_id, amount, status, note, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.db.Exec(ctx, query,
		m.SettlementID,
		m.GroupID,
		m.PayerID,
		m.PayeeID,
		m.Amount,
		m.Status,
		m.Note,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save settlement: %w", err)
	}
	return nil
}

func (r *PgxSettlementRepository) FindSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE settlement_id = $1;`
	m, err := scanSettlement(r.db.QueryRow(ctx, query, settlementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settlement by ID %s: %w", settlementID, err)
	}
	s := mapping.ToDomainSettlement(*m)
	return &s, nil
}

func (r *PgxSettlementRepository) ListSettlementsByGroup(ctx context.Context, groupID string) ([]domain.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE group_id = $1 ORDER BY created_at DESC;`
	rows, err := r.db.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlements for group %s: %w", groupID, err)
	}
	defer rows.Close()

	modelSettlements := []models.Settlement{}
	for rows.Next() {
		m, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement row: %w", err)
		}
		modelSettlements = append(modelSettlements, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settlement rows: %w", err)
	}

	return mapping.ToDomainSettlementSlice(modelSettlements), nil
}

// UpdateSettlementStatus transitions a settlement's lifecycle status. The
// WHERE clause only matches PENDING rows so terminal states stay terminal
// even under concurrent updates.
func (r *PgxSettlementRepository) UpdateSettlementStatus(ctx context.Context, settlementID string, status domain.SettlementStatus, updatedByUserID string, updatedAt time.Time) error {
	query := `
        UPDATE settlements
        SET status = $2, last_updated_at = $3, last_updated_by = $4
        WHERE settlement_id = $1 AND status = $5;
    `
	tag, err := r.db.Exec(ctx, query, settlementID, string(status), updatedAt, updatedByUserID, string(domain.SettlementPending))
	if err != nil {
		return fmt.Errorf("failed to update settlement %s status: %w", settlementID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: settlement %s is not pending", apperrors.ErrValidation, settlementID)
	}
	return nil
}
