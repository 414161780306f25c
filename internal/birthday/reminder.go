package birthday

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"gitlab.com/dirk.krummacker/relationship-service/internal/model"
)

// Birthday reminders repeat every year.
const (
	frequencyType   = "year"
	frequencyNumber = 1
)

// annualSchedule returns the cron expression firing at midnight on the given month and day.
func annualSchedule(month, day int) string {
	return fmt.Sprintf("0 0 %d %d *", day, month)
}

// newReminder builds the yearly reminder for the contact's birthday. It returns nil when the
// birthday has no month and day to recur on.
func newReminder(contact *model.Contact, specialDate *model.SpecialDate, b Birthday, now time.Time) (*model.Reminder, error) {
	month, day, ok := b.recurrence()
	if !ok || specialDate == nil {
		return nil, nil
	}
	expr := annualSchedule(month, day)
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("parse reminder schedule %q: %w", expr, err)
	}
	next := schedule.Next(now.UTC())
	if next.IsZero() {
		return nil, fmt.Errorf("reminder schedule %q never fires", expr)
	}
	initial := next
	if complete, ok := b.(CompleteDate); ok {
		initial = time.Date(complete.Year, time.Month(complete.Month), complete.Day, 0, 0, 0, 0, time.UTC)
	}
	return &model.Reminder{
		AccountId:        contact.AccountId,
		ContactId:        contact.Id,
		SpecialDateId:    specialDate.Id,
		Title:            fmt.Sprintf("Wish happy birthday to %s", contact.Name),
		FrequencyType:    frequencyType,
		FrequencyNumber:  frequencyNumber,
		Schedule:         expr,
		InitialDate:      initial,
		NextExpectedDate: next,
	}, nil
}
