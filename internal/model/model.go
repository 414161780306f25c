package model

import "time"

// Contact is the data structure for a person that we know. Only the fields relevant to the
// birthday information are mapped.
type Contact struct {
	Id                    int64  `json:"id"                       db:"id"`
	AccountId             int64  `json:"account_id"               db:"account_id"`
	Name                  string `json:"name"                     db:"name"`
	BirthdaySpecialDateId *int64 `json:"birthday_special_date_id" db:"birthday_special_date_id"`
	BirthdayReminderId    *int64 `json:"birthday_reminder_id"     db:"birthday_reminder_id"`
}

// SpecialDate is a calendar occurrence attached to a contact. Which of Year, Month and Day are set
// depends on how much of the date is known.
type SpecialDate struct {
	Id            int64     `json:"id"              db:"id"`
	AccountId     int64     `json:"account_id"      db:"account_id"`
	ContactId     int64     `json:"contact_id"      db:"contact_id"`
	IsAgeBased    bool      `json:"is_age_based"    db:"is_age_based"`
	IsYearUnknown bool      `json:"is_year_unknown" db:"is_year_unknown"`
	Year          *int      `json:"year,omitempty"  db:"year"`
	Month         *int      `json:"month,omitempty" db:"month"`
	Day           *int      `json:"day,omitempty"   db:"day"`
	CreatedAt     time.Time `json:"created_at"      db:"created_at"`
}

// Reminder is a recurring reminder for a special date.
type Reminder struct {
	Id               int64     `json:"id"                 db:"id"`
	AccountId        int64     `json:"account_id"         db:"account_id"`
	ContactId        int64     `json:"contact_id"         db:"contact_id"`
	SpecialDateId    int64     `json:"special_date_id"    db:"special_date_id"`
	Title            string    `json:"title"              db:"title"`
	FrequencyType    string    `json:"frequency_type"     db:"frequency_type"`
	FrequencyNumber  int       `json:"frequency_number"   db:"frequency_number"`
	Schedule         string    `json:"schedule"           db:"schedule"`
	InitialDate      time.Time `json:"initial_date"       db:"initial_date"`
	NextExpectedDate time.Time `json:"next_expected_date" db:"next_expected_date"`
}

// BirthdayInformation bundles a contact with its birthday special date and reminder, if any.
type BirthdayInformation struct {
	Contact     Contact      `json:"contact"`
	SpecialDate *SpecialDate `json:"special_date,omitempty"`
	Reminder    *Reminder    `json:"reminder,omitempty"`
}
