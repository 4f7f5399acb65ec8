package models

import "time"

// BookingNotification is the payload handed to the notification worker once a
// booking request has been accepted.
type BookingNotification struct {
	Name             string       `json:"name" validate:"required,min=3"`
	ContactMethod    string       `json:"contactMethod" validate:"required,oneof=Email Text Phone"`
	ContactDetail    string       `json:"contactDetail" validate:"required,min=1"`
	Address          string       `json:"address"`
	Service          string       `json:"service"`
	PreferredTime    string       `json:"preferredTime"`
	Notes            string       `json:"notes"`
	OtherPreferences string       `json:"otherPreferences"`
	Sensory          SensoryPrefs `json:"sensory"`
	ReceivedAt       time.Time    `json:"receivedAt"`
}

// NewBookingNotification copies a submitted form into a notification payload.
func NewBookingNotification(data FormData, receivedAt time.Time) BookingNotification {
	return BookingNotification{
		Name:             data.Name,
		ContactMethod:    string(data.ContactMethod),
		ContactDetail:    data.ContactDetail,
		Address:          data.Address,
		Service:          data.Service,
		PreferredTime:    data.PreferredTime,
		Notes:            data.Notes,
		OtherPreferences: data.OtherPreferences,
		Sensory:          data.Sensory,
		ReceivedAt:       receivedAt,
	}
}
