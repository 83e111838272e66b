package timetable

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Timetable is an author's weekly schedule. There is at most one per author.
type Timetable struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Author    string             `json:"author" bson:"author"`
	Schedule  []DaySchedule      `json:"schedule" bson:"schedule"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type DaySchedule struct {
	Day   string     `json:"day" bson:"day" binding:"notblank"`
	Slots []TimeSlot `json:"slots" bson:"slots"`
}

type TimeSlot struct {
	StartTime string `json:"startTime" bson:"startTime"`
	EndTime   string `json:"endTime" bson:"endTime"`
	Subject   string `json:"subject" bson:"subject"`
	Location  string `json:"location,omitempty" bson:"location,omitempty"`
	Notes     string `json:"notes,omitempty" bson:"notes,omitempty"`
}

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DefaultSchedule is the week a new timetable starts with: Monday to Sunday,
// no slots.
func DefaultSchedule() []DaySchedule {
	out := make([]DaySchedule, 0, len(weekdays))
	for _, d := range weekdays {
		out = append(out, DaySchedule{Day: d, Slots: []TimeSlot{}})
	}
	return out
}
