// Package audit builds audit log entries and hands them to an asynchronous queue. Persisting the
// entries is the job of whoever consumes the queue.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gitlab.com/dirk.krummacker/relationship-service/internal/model"
)

// ActionContactBirthdayUpdated is logged whenever the birthday information of a contact changes.
const ActionContactBirthdayUpdated = "contact_birthday_updated"

// ErrQueueFull is returned by a bounded queue that cannot take another entry.
var ErrQueueFull = errors.New("audit queue full")

// Entry is an immutable audit log record. Objects is a JSON document describing the subject.
type Entry struct {
	Action                  string    `json:"action"`
	AccountId               int64     `json:"account_id"`
	AuthorId                int64     `json:"author_id"`
	AboutContactId          int64     `json:"about_contact_id"`
	ShouldAppearOnDashboard bool      `json:"should_appear_on_dashboard"`
	Objects                 string    `json:"objects"`
	AuditedAt               time.Time `json:"audited_at"`
}

// contactObjects is encoded into Entry.Objects; the field order is part of the format.
type contactObjects struct {
	ContactName string `json:"contact_name"`
	ContactId   int64  `json:"contact_id"`
}

// ContactBirthdayUpdated describes a change of the contact's birthday information made by the
// author. The contact must be in its state after the change.
func ContactBirthdayUpdated(accountId, authorId int64, contact *model.Contact, at time.Time) Entry {
	// Encoding a struct of a string and an int cannot fail.
	objects, _ := json.Marshal(contactObjects{
		ContactName: contact.Name,
		ContactId:   contact.Id,
	})
	return Entry{
		Action:                  ActionContactBirthdayUpdated,
		AccountId:               accountId,
		AuthorId:                authorId,
		AboutContactId:          contact.Id,
		ShouldAppearOnDashboard: true,
		Objects:                 string(objects),
		AuditedAt:               at,
	}
}

// Queue accepts audit entries for out-of-band delivery.
type Queue interface {
	Enqueue(ctx context.Context, entry Entry) error
}
