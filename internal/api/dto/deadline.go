package dto

import "time"

type DeadlineResponse struct {
	Now              time.Time `json:"now"`
	Deadline         time.Time `json:"deadline"`
	Label            string    `json:"label"`
	Countdown        string    `json:"countdown"`
	SecondsRemaining int64     `json:"seconds_remaining"`
}
