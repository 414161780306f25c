package birthday

import (
	"time"

	"gitlab.com/dirk.krummacker/relationship-service/internal/model"
)

// Birthday is what is known about a contact's birthday. It is exactly one of Unknown, AgeBased,
// PartialDate and CompleteDate.
type Birthday interface {
	// Mode names the variant.
	Mode() string

	// specialDate returns the row representing the birthday, or nil for Unknown.
	specialDate(accountId, contactId int64, createdAt time.Time) *model.SpecialDate

	// recurrence returns the month and day the birthday recurs on, if they are known.
	recurrence() (month, day int, ok bool)
}

// Unknown means nothing is known about the birthday.
type Unknown struct{}

// AgeBased is a birthday known only through the contact's age.
type AgeBased struct {
	Year int
}

// PartialDate is a birthday whose month and day are known but not its year.
type PartialDate struct {
	Month int
	Day   int
}

// CompleteDate is a birthday with a known year, month and day.
type CompleteDate struct {
	Year  int
	Month int
	Day   int
}

// Resolve maps a validated request to its birthday. An age wins over an explicit date.
func Resolve(req Request, now time.Time) Birthday {
	switch {
	case !req.IsDateKnown:
		return Unknown{}
	case req.IsAgeBased:
		return AgeBased{Year: now.Year() - *req.Age}
	case req.Year == nil:
		return PartialDate{Month: *req.Month, Day: *req.Day}
	default:
		return CompleteDate{Year: *req.Year, Month: *req.Month, Day: *req.Day}
	}
}

func (Unknown) Mode() string      { return "unknown" }
func (AgeBased) Mode() string     { return "age_based" }
func (PartialDate) Mode() string  { return "partial_date" }
func (CompleteDate) Mode() string { return "complete_date" }

func (Unknown) specialDate(int64, int64, time.Time) *model.SpecialDate {
	return nil
}

func (b AgeBased) specialDate(accountId, contactId int64, createdAt time.Time) *model.SpecialDate {
	year := b.Year
	return &model.SpecialDate{
		AccountId:     accountId,
		ContactId:     contactId,
		IsAgeBased:    true,
		IsYearUnknown: true,
		Year:          &year,
		CreatedAt:     createdAt,
	}
}

func (b PartialDate) specialDate(accountId, contactId int64, createdAt time.Time) *model.SpecialDate {
	month, day := b.Month, b.Day
	return &model.SpecialDate{
		AccountId:     accountId,
		ContactId:     contactId,
		IsYearUnknown: true,
		Month:         &month,
		Day:           &day,
		CreatedAt:     createdAt,
	}
}

func (b CompleteDate) specialDate(accountId, contactId int64, createdAt time.Time) *model.SpecialDate {
	year, month, day := b.Year, b.Month, b.Day
	return &model.SpecialDate{
		AccountId: accountId,
		ContactId: contactId,
		Year:      &year,
		Month:     &month,
		Day:       &day,
		CreatedAt: createdAt,
	}
}

func (Unknown) recurrence() (int, int, bool)        { return 0, 0, false }
func (AgeBased) recurrence() (int, int, bool)       { return 0, 0, false }
func (b PartialDate) recurrence() (int, int, bool)  { return b.Month, b.Day, true }
func (b CompleteDate) recurrence() (int, int, bool) { return b.Month, b.Day, true }
