package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

type Note struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NoteInput struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

// NoteUpdate is a partial update. Empty strings are ignored by the server;
// nil Tags leaves the tags alone while an empty slice clears them.
type NoteUpdate struct {
	Title   string   `json:"title,omitempty"`
	Content string   `json:"content,omitempty"`
	Tags    []string `json:"tags"`
}

type Answer struct {
	ID        string    `json:"_id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

type Doubt struct {
	ID          string    `json:"_id"`
	Question    string    `json:"question"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	Tags        []string  `json:"tags"`
	IsResolved  bool      `json:"isResolved"`
	Answers     []Answer  `json:"answers"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type DoubtInput struct {
	Question    string   `json:"question"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type TimeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Subject   string `json:"subject"`
	Location  string `json:"location,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type DaySchedule struct {
	Day   string     `json:"day"`
	Slots []TimeSlot `json:"slots"`
}

type Timetable struct {
	ID        string        `json:"_id"`
	Author    string        `json:"author"`
	Schedule  []DaySchedule `json:"schedule"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Envelope is the part of every response shared by all endpoints.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (c *Client) Health(ctx context.Context) (*Envelope, error) {
	var out Envelope
	if err := c.Do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	var out struct {
		Notes []Note `json:"notes"`
	}
	if err := c.Do(ctx, http.MethodGet, "/notes", nil, &out); err != nil {
		return nil, err
	}
	return out.Notes, nil
}

func (c *Client) CreateNote(ctx context.Context, in NoteInput) (*Note, error) {
	return c.note(ctx, http.MethodPost, "/notes", in)
}

func (c *Client) UpdateNote(ctx context.Context, id string, in NoteUpdate) (*Note, error) {
	return c.note(ctx, http.MethodPut, "/notes/"+url.PathEscape(id), in)
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, nil)
}

func (c *Client) note(ctx context.Context, method, path string, in interface{}) (*Note, error) {
	var out struct {
		Note *Note `json:"note"`
	}
	if err := c.Do(ctx, method, path, in, &out); err != nil {
		return nil, err
	}
	return out.Note, nil
}

func (c *Client) ListDoubts(ctx context.Context) ([]Doubt, error) {
	var out struct {
		Doubts []Doubt `json:"doubts"`
	}
	if err := c.Do(ctx, http.MethodGet, "/doubts", nil, &out); err != nil {
		return nil, err
	}
	return out.Doubts, nil
}

func (c *Client) CreateDoubt(ctx context.Context, in DoubtInput) (*Doubt, error) {
	return c.doubt(ctx, http.MethodPost, "/doubts", in)
}

func (c *Client) AddAnswer(ctx context.Context, doubtID, text string) (*Doubt, error) {
	return c.doubt(ctx, http.MethodPost, "/doubts/"+url.PathEscape(doubtID)+"/answers", map[string]string{"text": text})
}

// ResolveDoubt sets the resolved flag. Only the doubt's author may call it.
func (c *Client) ResolveDoubt(ctx context.Context, doubtID string, resolved bool) (*Doubt, error) {
	return c.doubt(ctx, http.MethodPut, "/doubts/"+url.PathEscape(doubtID)+"/resolve", map[string]bool{"isResolved": resolved})
}

func (c *Client) doubt(ctx context.Context, method, path string, in interface{}) (*Doubt, error) {
	var out struct {
		Doubt *Doubt `json:"doubt"`
	}
	if err := c.Do(ctx, method, path, in, &out); err != nil {
		return nil, err
	}
	return out.Doubt, nil
}

func (c *Client) GetTimetable(ctx context.Context) (*Timetable, error) {
	return c.timetable(ctx, http.MethodGet, nil)
}

func (c *Client) SaveTimetable(ctx context.Context, schedule []DaySchedule) (*Timetable, error) {
	if schedule == nil {
		schedule = []DaySchedule{}
	}
	return c.timetable(ctx, http.MethodPost, map[string][]DaySchedule{"schedule": schedule})
}

func (c *Client) timetable(ctx context.Context, method string, in interface{}) (*Timetable, error) {
	var out struct {
		Timetable *Timetable `json:"timetable"`
	}
	if err := c.Do(ctx, method, "/timetable", in, &out); err != nil {
		return nil, err
	}
	return out.Timetable, nil
}
