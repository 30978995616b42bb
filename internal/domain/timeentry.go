package domain

import "time"

type TimeEntry struct {
	ID        string
	TaskID    string
	Date      time.Time
	Minutes   int
	Note      string
	Billable  bool
	CreatedAt time.Time
}
