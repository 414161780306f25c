package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gitlab.com/dirk.krummacker/relationship-service/internal/errs"
	"gitlab.com/dirk.krummacker/relationship-service/internal/model"
)

const specialDateColumns = "id, account_id, contact_id, is_age_based, is_year_unknown, year, month, day, created_at"

// FindSpecialDate returns the special date with the given id within the account.
func (s *Store) FindSpecialDate(ctx context.Context, accountId, id int64) (*model.SpecialDate, error) {
	var specialDate model.SpecialDate
	err := s.selectSpecialDate.GetContext(ctx, &specialDate, id, accountId)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("special date %d: %w", id, errs.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &specialDate, nil
}

// CreateSpecialDate inserts the special date and sets its Id to the newly assigned id.
func (t *Tx) CreateSpecialDate(ctx context.Context, specialDate *model.SpecialDate) error {
	result, err := t.tx.NamedExecContext(ctx, `
		INSERT INTO special_dates (account_id, contact_id, is_age_based, is_year_unknown, year, month, day, created_at)
		VALUES (:account_id, :contact_id, :is_age_based, :is_year_unknown, :year, :month, :day, :created_at)
	`, specialDate)
	if err != nil {
		return fmt.Errorf("insert special date: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert special date: %w", err)
	}
	specialDate.Id = id
	return nil
}

// DeleteSpecialDate removes the special date with the given id within the account.
func (t *Tx) DeleteSpecialDate(ctx context.Context, accountId, id int64) error {
	if _, err := t.tx.ExecContext(ctx, `
		DELETE FROM special_dates WHERE id = ? AND account_id = ?
	`, id, accountId); err != nil {
		return fmt.Errorf("delete special date %d: %w", id, err)
	}
	return nil
}
