package birthday

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/dirk.krummacker/relationship-service/internal/errs"
	pkgmodel "gitlab.com/dirk.krummacker/relationship-service/pkg/model"
)

var now = time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

// fakeLookup knows account 3 with contact 29 and author 7, and account 4 with contact 30 and
// author 8.
type fakeLookup struct {
	err error
}

func (f fakeLookup) AccountExists(_ context.Context, accountId int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return accountId == 3 || accountId == 4, nil
}

func (f fakeLookup) ContactAccount(_ context.Context, contactId int64) (int64, error) {
	switch contactId {
	case 29:
		return 3, nil
	case 30:
		return 4, nil
	}
	return 0, fmt.Errorf("contact %d: %w", contactId, errs.ErrNotFound)
}

func (f fakeLookup) UserAccount(_ context.Context, userId int64) (int64, error) {
	switch userId {
	case 7:
		return 3, nil
	case 8:
		return 4, nil
	}
	return 0, fmt.Errorf("user %d: %w", userId, errs.ErrNotFound)
}

func newTestValidator(lookup OwnershipLookup) *Validator {
	return NewValidator(lookup, func() time.Time { return now })
}

// knownDate returns a valid request for a complete date that individual tests modify.
func knownDate() pkgmodel.BirthdayUpdate {
	return pkgmodel.BirthdayUpdate{
		AccountId:   ptr(int64(3)),
		ContactId:   ptr(int64(29)),
		AuthorId:    ptr(int64(7)),
		IsDateKnown: ptr(true),
		Day:         ptr(10),
		Month:       ptr(10),
		Year:        ptr(1980),
		IsAgeBased:  ptr(false),
		AddReminder: ptr(true),
	}
}

// TestValidateCompleteDate expects a complete date to be normalized unchanged.
func TestValidateCompleteDate(t *testing.T) {
	req, err := newTestValidator(fakeLookup{}).Validate(context.Background(), knownDate())
	require.NoError(t, err)
	assert.Equal(t, Request{
		AccountId: 3, ContactId: 29, AuthorId: 7,
		IsDateKnown: true,
		Year:        ptr(1980), Month: ptr(10), Day: ptr(10),
		AddReminder: true,
	}, req)
}

// TestValidateUnknownDateIgnoresDateFields expects all date fields, even out of range ones, to be
// dropped when the date is not known.
func TestValidateUnknownDateIgnoresDateFields(t *testing.T) {
	in := knownDate()
	in.IsDateKnown = ptr(false)
	in.Month = ptr(13)
	in.Age = ptr(-4)

	req, err := newTestValidator(fakeLookup{}).Validate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, Request{AccountId: 3, ContactId: 29, AuthorId: 7}, req)
}

// TestValidateAgeWins expects an age based request to ignore the explicit date.
func TestValidateAgeWins(t *testing.T) {
	in := knownDate()
	in.IsAgeBased = ptr(true)
	in.Age = ptr(10)

	req, err := newTestValidator(fakeLookup{}).Validate(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, req.IsAgeBased)
	assert.Equal(t, 10, *req.Age)
	assert.Nil(t, req.Year)
	assert.Nil(t, req.Month)
	assert.Nil(t, req.Day)
}

// TestValidateAgeBasedWithoutAgeFallsBackToDate expects day and month to be used when
// is_age_based is set but no age is given.
func TestValidateAgeBasedWithoutAgeFallsBackToDate(t *testing.T) {
	in := knownDate()
	in.IsAgeBased = ptr(true)

	req, err := newTestValidator(fakeLookup{}).Validate(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, req.IsAgeBased)
	assert.Nil(t, req.Age)
	assert.Equal(t, CompleteDate{Year: 1980, Month: 10, Day: 10}, Resolve(req, now))

	in.Year = nil
	req, err = newTestValidator(fakeLookup{}).Validate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, PartialDate{Month: 10, Day: 10}, Resolve(req, now))
}

// TestValidateAgeIgnoresDateRanges expects out of range date fields to be ignored when an age is
// given.
func TestValidateAgeIgnoresDateRanges(t *testing.T) {
	in := knownDate()
	in.IsAgeBased = ptr(true)
	in.Age = ptr(30)
	in.Year = ptr(0)
	in.Month = ptr(13)
	in.Day = ptr(32)

	req, err := newTestValidator(fakeLookup{}).Validate(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, req.IsAgeBased)
	assert.Nil(t, req.Year)
	assert.Nil(t, req.Month)
	assert.Nil(t, req.Day)
	assert.Equal(t, AgeBased{Year: 1996}, Resolve(req, now))
}

// TestValidatePartialLeapDay expects February 29 to be accepted when the year is unknown.
func TestValidatePartialLeapDay(t *testing.T) {
	in := knownDate()
	in.Year = nil
	in.Month = ptr(2)
	in.Day = ptr(29)

	req, err := newTestValidator(fakeLookup{}).Validate(context.Background(), in)
	require.NoError(t, err)
	assert.Nil(t, req.Year)
	assert.Equal(t, 2, *req.Month)
	assert.Equal(t, 29, *req.Day)
}

// TestValidateRejectsInvalidFields runs requests that violate the required-field rules.
func TestValidateRejectsInvalidFields(t *testing.T) {
	cases := map[string]func(in *pkgmodel.BirthdayUpdate){
		"is_date_known missing": func(in *pkgmodel.BirthdayUpdate) { in.IsDateKnown = nil },
		"account_id missing":    func(in *pkgmodel.BirthdayUpdate) { in.AccountId = nil },
		"author_id missing":     func(in *pkgmodel.BirthdayUpdate) { in.AuthorId = nil },
		"contact_id zero":       func(in *pkgmodel.BirthdayUpdate) { in.ContactId = ptr(int64(0)) },
		"month out of range":    func(in *pkgmodel.BirthdayUpdate) { in.Month = ptr(13) },
		"day out of range":      func(in *pkgmodel.BirthdayUpdate) { in.Day = ptr(0) },
		"no date and no age": func(in *pkgmodel.BirthdayUpdate) {
			in.Day, in.Month, in.Year = nil, nil, nil
		},
		"day without month":     func(in *pkgmodel.BirthdayUpdate) { in.Month = nil },
		"february 30":           func(in *pkgmodel.BirthdayUpdate) { in.Month, in.Day = ptr(2), ptr(30) },
		"february 29 in 1981":   func(in *pkgmodel.BirthdayUpdate) { in.Month, in.Day, in.Year = ptr(2), ptr(29), ptr(1981) },
		"age based without age or date": func(in *pkgmodel.BirthdayUpdate) {
			in.IsAgeBased, in.Day, in.Month, in.Year = ptr(true), nil, nil, nil
		},
		"negative age": func(in *pkgmodel.BirthdayUpdate) {
			in.IsAgeBased, in.Age = ptr(true), ptr(-1)
		},
		"age before year one": func(in *pkgmodel.BirthdayUpdate) {
			in.IsAgeBased, in.Age = ptr(true), ptr(2026)
		},
	}
	for name, modify := range cases {
		t.Run(name, func(t *testing.T) {
			in := knownDate()
			modify(&in)
			_, err := newTestValidator(fakeLookup{}).Validate(context.Background(), in)
			assert.ErrorIs(t, err, errs.ErrValidation)
			assert.NotErrorIs(t, err, errs.ErrOwnershipMismatch)
		})
	}
}

// TestValidateRejectsForeignEntities runs requests whose account, contact and author are not
// linked.
func TestValidateRejectsForeignEntities(t *testing.T) {
	cases := map[string]func(in *pkgmodel.BirthdayUpdate){
		"unknown account":           func(in *pkgmodel.BirthdayUpdate) { in.AccountId = ptr(int64(11111111)) },
		"contact of another account": func(in *pkgmodel.BirthdayUpdate) { in.ContactId = ptr(int64(30)) },
		"author of another account":  func(in *pkgmodel.BirthdayUpdate) { in.AuthorId = ptr(int64(8)) },
		"unknown contact":            func(in *pkgmodel.BirthdayUpdate) { in.ContactId = ptr(int64(31)) },
		"unknown author":             func(in *pkgmodel.BirthdayUpdate) { in.AuthorId = ptr(int64(9)) },
		"account of contact and author differs from request": func(in *pkgmodel.BirthdayUpdate) {
			in.AccountId = ptr(int64(4))
		},
	}
	for name, modify := range cases {
		t.Run(name, func(t *testing.T) {
			in := knownDate()
			modify(&in)
			_, err := newTestValidator(fakeLookup{}).Validate(context.Background(), in)
			assert.ErrorIs(t, err, errs.ErrOwnershipMismatch)
			assert.ErrorIs(t, err, errs.ErrInvalidRequest)
		})
	}
}

// TestValidateLookupFailure expects a failing lookup to be reported as a storage error.
func TestValidateLookupFailure(t *testing.T) {
	_, err := newTestValidator(fakeLookup{err: errors.New("connection refused")}).
		Validate(context.Background(), knownDate())
	assert.ErrorIs(t, err, errs.ErrStorage)
	assert.NotErrorIs(t, err, errs.ErrInvalidRequest)
}
