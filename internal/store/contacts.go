package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gitlab.com/dirk.krummacker/relationship-service/internal/errs"
	"gitlab.com/dirk.krummacker/relationship-service/internal/model"
)

const contactColumns = "id, account_id, name, birthday_special_date_id, birthday_reminder_id"

// FindContact returns the contact with the given id within the account.
func (s *Store) FindContact(ctx context.Context, accountId, contactId int64) (*model.Contact, error) {
	var contact model.Contact
	err := s.selectContact.GetContext(ctx, &contact, contactId, accountId)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("contact %d: %w", contactId, errs.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// LockContact reads the contact and locks its row until the transaction ends, so that concurrent
// updates of the same contact are serialized.
func (t *Tx) LockContact(ctx context.Context, accountId, contactId int64) (*model.Contact, error) {
	var contact model.Contact
	err := t.tx.GetContext(ctx, &contact, `
		SELECT `+contactColumns+`
		FROM contacts WHERE id = ? AND account_id = ? FOR UPDATE
	`, contactId, accountId)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("contact %d: %w", contactId, errs.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lock contact %d: %w", contactId, err)
	}
	return &contact, nil
}

// UpdateBirthdayLinks writes the contact's special date and reminder references in one statement.
func (t *Tx) UpdateBirthdayLinks(ctx context.Context, contact *model.Contact) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE contacts
		SET birthday_special_date_id = ?, birthday_reminder_id = ?
		WHERE id = ? AND account_id = ?
	`, contact.BirthdaySpecialDateId, contact.BirthdayReminderId, contact.Id, contact.AccountId)
	if err != nil {
		return fmt.Errorf("update contact %d: %w", contact.Id, err)
	}
	return nil
}
