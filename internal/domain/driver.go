package domain

import "time"

type DriverStatus string

const (
	DriverStatusActive        DriverStatus = "ACTIVE"
	DriverStatusOnJob         DriverStatus = "CURRENTLY_ON_JOB"
	DriverStatusAssignedToJob DriverStatus = "ASSIGNED_TO_JOB"
	DriverStatusInactive      DriverStatus = "INACTIVE"
)

type Driver struct {
	ID        int64        `json:"id"`
	FullName  string       `json:"full_name"`
	Phone     string       `json:"phone"`
	Status    DriverStatus `json:"status"`
	CreatedOn time.Time    `json:"created_on"`
	UpdatedOn time.Time    `json:"updated_on"`
}
