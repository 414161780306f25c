package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gitlab.com/dirk.krummacker/relationship-service/internal/errs"
	"gitlab.com/dirk.krummacker/relationship-service/internal/model"
)

const reminderColumns = "id, account_id, contact_id, special_date_id, title, frequency_type, frequency_number, schedule, initial_date, next_expected_date"

// FindReminder returns the reminder with the given id within the account.
func (s *Store) FindReminder(ctx context.Context, accountId, id int64) (*model.Reminder, error) {
	var reminder model.Reminder
	err := s.selectReminder.GetContext(ctx, &reminder, id, accountId)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reminder %d: %w", id, errs.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &reminder, nil
}

// CreateReminder inserts the reminder and sets its Id to the newly assigned id.
func (t *Tx) CreateReminder(ctx context.Context, reminder *model.Reminder) error {
	result, err := t.tx.NamedExecContext(ctx, `
		INSERT INTO reminders (account_id, contact_id, special_date_id, title, frequency_type, frequency_number, schedule, initial_date, next_expected_date)
		VALUES (:account_id, :contact_id, :special_date_id, :title, :frequency_type, :frequency_number, :schedule, :initial_date, :next_expected_date)
	`, reminder)
	if err != nil {
		return fmt.Errorf("insert reminder: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert reminder: %w", err)
	}
	reminder.Id = id
	return nil
}

// DeleteReminder removes the reminder with the given id within the account.
func (t *Tx) DeleteReminder(ctx context.Context, accountId, id int64) error {
	if _, err := t.tx.ExecContext(ctx, `
		DELETE FROM reminders WHERE id = ? AND account_id = ?
	`, id, accountId); err != nil {
		return fmt.Errorf("delete reminder %d: %w", id, err)
	}
	return nil
}
