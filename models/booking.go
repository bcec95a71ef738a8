package models

import "time"

// Booking is a confirmed reservation of a slot, written to the partner's
// calendar exactly once and persisted for records.
type Booking struct {
	ID              string    `bson:"id" json:"id"`
	PartnerID       string    `bson:"partnerId" json:"partnerId"`
	ServiceID       string    `bson:"serviceId" json:"serviceId"`
	ServiceName     string    `bson:"serviceName" json:"serviceName"`
	Price           float64   `bson:"price" json:"price"`
	SlotStart       time.Time `bson:"slotStart" json:"slotStart"`
	SlotEnd         time.Time `bson:"slotEnd" json:"slotEnd"`
	LearnerEmail    string    `bson:"learnerEmail" json:"learnerEmail"`
	MeetLocation    string    `bson:"meetLocation" json:"meetLocation"`
	ProviderEventID string    `bson:"providerEventId" json:"providerEventId,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}

// BookingRequest is the payload collected by the booking form.
type BookingRequest struct {
	PartnerID     string `json:"partnerId" binding:"required"`
	ServiceID     string `json:"serviceId" binding:"required"`
	Slot          string `json:"slot" binding:"required"` // RFC3339 slot start
	LearnerEmail  string `json:"learnerEmail" binding:"required,email"`
	MeetLocation  string `json:"meetLocation" binding:"required"`
	LearnerPermit bool   `json:"learnerPermit"`
}
