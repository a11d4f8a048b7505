package model

import "time"

// Attendance is a single check-in/check-out session for one child.
// CheckOutTime stays nil while the child is still present.
type Attendance struct {
	ID           int64      `json:"id"`
	CheckInTime  time.Time  `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
	Child        *Child     `json:"child"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
