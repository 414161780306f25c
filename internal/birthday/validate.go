package birthday

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gitlab.com/dirk.krummacker/relationship-service/internal/errs"
	pkgmodel "gitlab.com/dirk.krummacker/relationship-service/pkg/model"
)

// leapYear is used to check month and day when the year is unknown, so that February 29 is valid.
const leapYear = 2000

// OwnershipLookup resolves the account of users and contacts.
type OwnershipLookup interface {
	AccountExists(ctx context.Context, accountId int64) (bool, error)
	ContactAccount(ctx context.Context, contactId int64) (int64, error)
	UserAccount(ctx context.Context, userId int64) (int64, error)
}

// Request is a validated and normalized birthday update. When IsDateKnown is false all other date
// fields are zero. When IsAgeBased is true Age is set; otherwise Month and Day are, and Year may be.
type Request struct {
	AccountId   int64
	ContactId   int64
	AuthorId    int64
	IsDateKnown bool
	IsAgeBased  bool
	Age         *int
	Year        *int
	Month       *int
	Day         *int
	AddReminder bool
}

// Validator checks birthday updates against the required-field rules and the ownership of account,
// contact and author. It never mutates anything.
type Validator struct {
	lookup   OwnershipLookup
	validate *validator.Validate
	now      func() time.Time
}

// NewValidator creates a validator. now supplies the current year for age based dates.
func NewValidator(lookup OwnershipLookup, now func() time.Time) *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{lookup: lookup, validate: validate, now: now}
}

// Validate returns the normalized request, or an error wrapping errs.ErrValidation,
// errs.ErrOwnershipMismatch or errs.ErrStorage.
func (v *Validator) Validate(ctx context.Context, in pkgmodel.BirthdayUpdate) (Request, error) {
	// The date fields do not matter when the date is unknown, not even their ranges.
	if in.IsDateKnown != nil && !*in.IsDateKnown {
		in = pkgmodel.BirthdayUpdate{
			AccountId:   in.AccountId,
			ContactId:   in.ContactId,
			AuthorId:    in.AuthorId,
			IsDateKnown: in.IsDateKnown,
		}
	}
	// An age replaces the explicit date, so the explicit date is not checked either.
	if ageBased(in) {
		in.Day, in.Month, in.Year = nil, nil, nil
	}
	if err := v.validate.StructCtx(ctx, in); err != nil {
		return Request{}, fieldErrors(err)
	}

	req := Request{
		AccountId:   *in.AccountId,
		ContactId:   *in.ContactId,
		AuthorId:    *in.AuthorId,
		IsDateKnown: *in.IsDateKnown,
	}
	if req.IsDateKnown {
		if err := v.normalizeDate(in, &req); err != nil {
			return Request{}, err
		}
	}
	if err := v.checkOwnership(ctx, req); err != nil {
		return Request{}, err
	}
	return req, nil
}

// ageBased reports whether the request carries an age that takes precedence over the date.
func ageBased(in pkgmodel.BirthdayUpdate) bool {
	return in.IsDateKnown != nil && *in.IsDateKnown && in.IsAgeBased != nil && *in.IsAgeBased && in.Age != nil
}

// normalizeDate applies the mode rules of a known date. An age takes precedence over day, month
// and year. Without an age the request falls back to day and month, even if is_age_based is set.
func (v *Validator) normalizeDate(in pkgmodel.BirthdayUpdate, req *Request) error {
	req.AddReminder = in.AddReminder != nil && *in.AddReminder
	if ageBased(in) {
		if v.now().Year()-*in.Age < 1 {
			return fmt.Errorf("%w: age %d is out of range", errs.ErrValidation, *in.Age)
		}
		req.IsAgeBased = true
		req.Age = in.Age
		return nil
	}
	if in.Day == nil || in.Month == nil {
		return fmt.Errorf("%w: either age or day and month are required when is_date_known is true", errs.ErrValidation)
	}
	year := leapYear
	if in.Year != nil {
		year = *in.Year
	}
	date := time.Date(year, time.Month(*in.Month), *in.Day, 0, 0, 0, 0, time.UTC)
	if date.Day() != *in.Day {
		return fmt.Errorf("%w: %d-%02d-%02d is not a calendar date", errs.ErrValidation, year, *in.Month, *in.Day)
	}
	req.Year = in.Year
	req.Month = in.Month
	req.Day = in.Day
	return nil
}

// checkOwnership verifies that the account exists and that contact and author belong to it.
func (v *Validator) checkOwnership(ctx context.Context, req Request) error {
	exists, err := v.lookup.AccountExists(ctx, req.AccountId)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrStorage, err)
	}
	if !exists {
		return fmt.Errorf("%w: account %d does not exist", errs.ErrOwnershipMismatch, req.AccountId)
	}

	contactAccount, err := v.lookup.ContactAccount(ctx, req.ContactId)
	if err != nil {
		return lookupError(err)
	}
	if contactAccount != req.AccountId {
		return fmt.Errorf("%w: contact %d does not belong to account %d", errs.ErrOwnershipMismatch, req.ContactId, req.AccountId)
	}

	authorAccount, err := v.lookup.UserAccount(ctx, req.AuthorId)
	if err != nil {
		return lookupError(err)
	}
	if authorAccount != req.AccountId {
		return fmt.Errorf("%w: author %d does not belong to account %d", errs.ErrOwnershipMismatch, req.AuthorId, req.AccountId)
	}
	return nil
}

func lookupError(err error) error {
	if errors.Is(err, errs.ErrNotFound) {
		return fmt.Errorf("%w: %w", errs.ErrOwnershipMismatch, err)
	}
	return fmt.Errorf("%w: %w", errs.ErrStorage, err)
}

// fieldErrors turns the errors of the struct validator into a single validation error.
func fieldErrors(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", errs.ErrValidation, err)
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			messages = append(messages, fmt.Sprintf("%s failed on %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			messages = append(messages, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", errs.ErrValidation, strings.Join(messages, "; "))
}
