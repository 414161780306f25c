// Package birthday records the birthday information of contacts: the special date describing it,
// an optional yearly reminder, and the audit entry announcing the change.
package birthday

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitlab.com/dirk.krummacker/relationship-service/internal/audit"
	"gitlab.com/dirk.krummacker/relationship-service/internal/errs"
	"gitlab.com/dirk.krummacker/relationship-service/internal/metrics"
	"gitlab.com/dirk.krummacker/relationship-service/internal/model"
	"gitlab.com/dirk.krummacker/relationship-service/internal/store"
	pkgmodel "gitlab.com/dirk.krummacker/relationship-service/pkg/model"
	"go.uber.org/zap"
)

// Store is the persistence the service needs.
type Store interface {
	OwnershipLookup
	WithinTx(ctx context.Context, fn func(*store.Tx) error) error
	FindContact(ctx context.Context, accountId, contactId int64) (*model.Contact, error)
	FindSpecialDate(ctx context.Context, accountId, id int64) (*model.SpecialDate, error)
	FindReminder(ctx context.Context, accountId, id int64) (*model.Reminder, error)
}

// AuditEmitter hands audit entries over for asynchronous delivery.
type AuditEmitter interface {
	Emit(ctx context.Context, entry audit.Entry)
}

// Service updates and reads birthday information.
type Service struct {
	store     Store
	emitter   AuditEmitter
	validator *Validator
	logger    *zap.Logger
	now       func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService constructs a Service.
func NewService(st Store, emitter AuditEmitter, opts ...Option) *Service {
	s := &Service{
		store:   st,
		emitter: emitter,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.validator = NewValidator(st, func() time.Time { return s.now() })
	return s
}

// UpdateBirthdayInformation replaces the birthday information of a contact and returns the
// updated contact. The previous special date and reminder are always deleted; a new special date
// is created unless the date is unknown, and a new reminder when requested and the birthday has a
// month and day. All changes are committed together. An audit entry is emitted afterwards.
func (s *Service) UpdateBirthdayInformation(ctx context.Context, in pkgmodel.BirthdayUpdate) (*model.Contact, error) {
	req, err := s.validator.Validate(ctx, in)
	if err != nil {
		metrics.BirthdayUpdates.WithLabelValues("none", metrics.OutcomeRejected).Inc()
		return nil, err
	}

	now := s.now()
	birthday := Resolve(req, now)

	var updated *model.Contact
	err = s.store.WithinTx(ctx, func(tx *store.Tx) error {
		contact, err := tx.LockContact(ctx, req.AccountId, req.ContactId)
		if err != nil {
			return err
		}

		// The reminder goes first, so that it never outlives its special date.
		if contact.BirthdayReminderId != nil {
			if err := tx.DeleteReminder(ctx, contact.AccountId, *contact.BirthdayReminderId); err != nil {
				return err
			}
			contact.BirthdayReminderId = nil
		}
		if contact.BirthdaySpecialDateId != nil {
			if err := tx.DeleteSpecialDate(ctx, contact.AccountId, *contact.BirthdaySpecialDateId); err != nil {
				return err
			}
			contact.BirthdaySpecialDateId = nil
		}

		specialDate := birthday.specialDate(contact.AccountId, contact.Id, now)
		if specialDate != nil {
			if err := tx.CreateSpecialDate(ctx, specialDate); err != nil {
				return err
			}
			contact.BirthdaySpecialDateId = &specialDate.Id
		}

		if req.AddReminder {
			reminder, err := newReminder(contact, specialDate, birthday, now)
			if err != nil {
				return err
			}
			if reminder != nil {
				if err := tx.CreateReminder(ctx, reminder); err != nil {
					return err
				}
				contact.BirthdayReminderId = &reminder.Id
			}
		}

		if err := tx.UpdateBirthdayLinks(ctx, contact); err != nil {
			return err
		}
		updated = contact
		return nil
	})
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			metrics.BirthdayUpdates.WithLabelValues(birthday.Mode(), metrics.OutcomeRejected).Inc()
			return nil, fmt.Errorf("%w: %w", errs.ErrOwnershipMismatch, err)
		}
		metrics.BirthdayUpdates.WithLabelValues(birthday.Mode(), metrics.OutcomeFailed).Inc()
		s.logger.Error("birthday update failed",
			zap.Int64("account_id", req.AccountId),
			zap.Int64("contact_id", req.ContactId),
			zap.String("mode", birthday.Mode()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", errs.ErrStorage, err)
	}
	metrics.BirthdayUpdates.WithLabelValues(birthday.Mode(), metrics.OutcomeApplied).Inc()

	s.emitter.Emit(ctx, audit.ContactBirthdayUpdated(req.AccountId, req.AuthorId, updated, now))
	return updated, nil
}

// BirthdayInformation returns the contact together with its birthday special date and reminder.
func (s *Service) BirthdayInformation(ctx context.Context, accountId, contactId int64) (*model.BirthdayInformation, error) {
	contact, err := s.store.FindContact(ctx, accountId, contactId)
	if err != nil {
		return nil, readError(err)
	}
	info := &model.BirthdayInformation{Contact: *contact}
	if contact.BirthdaySpecialDateId != nil {
		if info.SpecialDate, err = s.store.FindSpecialDate(ctx, accountId, *contact.BirthdaySpecialDateId); err != nil {
			return nil, readError(err)
		}
	}
	if contact.BirthdayReminderId != nil {
		if info.Reminder, err = s.store.FindReminder(ctx, accountId, *contact.BirthdayReminderId); err != nil {
			return nil, readError(err)
		}
	}
	return info, nil
}

func readError(err error) error {
	if errors.Is(err, errs.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", errs.ErrStorage, err)
}
