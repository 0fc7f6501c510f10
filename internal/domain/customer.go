package domain

import "time"

// Customer is identified by email; name and phone follow the latest booking
type Customer struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
