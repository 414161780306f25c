package model

// BirthdayUpdate is the request for changing the birthday information of a contact.
// Only IsDateKnown is mandatory; which of the other fields matter depends on its value.
type BirthdayUpdate struct {
	AccountId   *int64 `json:"account_id,omitempty"   validate:"required,gt=0"`
	ContactId   *int64 `json:"contact_id,omitempty"   validate:"required,gt=0"`
	AuthorId    *int64 `json:"author_id,omitempty"    validate:"required,gt=0"`
	IsDateKnown *bool  `json:"is_date_known"          validate:"required"`
	Day         *int   `json:"day,omitempty"          validate:"omitempty,min=1,max=31"`
	Month       *int   `json:"month,omitempty"        validate:"omitempty,min=1,max=12"`
	Year        *int   `json:"year,omitempty"         validate:"omitempty,min=1,max=9999"`
	IsAgeBased  *bool  `json:"is_age_based,omitempty"`
	Age         *int   `json:"age,omitempty"          validate:"omitempty,min=0"`
	AddReminder *bool  `json:"add_reminder,omitempty"`
}
