package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"unique;not null"          json:"username"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null"                 json:"role"`
	Enabled      bool      `gorm:"not null;default:true"    json:"enabled"`
	CreatedAt    time.Time `json:"created_at"`
}

type Flight struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"                        json:"id"`
	CarrierCode  string    `gorm:"not null;size:2;uniqueIndex:idx_flight_identity" json:"carrier_code"`
	FlightNumber string    `gorm:"not null;size:4;uniqueIndex:idx_flight_identity" json:"flight_number"`
	FlightDate   string    `gorm:"not null;uniqueIndex:idx_flight_identity"        json:"flight_date"`
	Origin       string    `gorm:"not null;size:3"                                 json:"origin"`
	Destination  string    `gorm:"not null;size:3"                                 json:"destination"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
