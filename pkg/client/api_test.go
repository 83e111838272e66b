package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/studyhub/studyhub/backend/go-services/internal/config"
	"github.com/studyhub/studyhub/backend/go-services/internal/identity"
	"github.com/studyhub/studyhub/backend/go-services/internal/server"
	"github.com/stretchr/testify/require"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{CORS: config.CORSConfig{AllowedOrigins: config.DefaultAllowedOrigins}}
	srv := httptest.NewServer(server.NewRouter(server.MemoryDeps(cfg, identity.Placeholder())))
	t.Cleanup(srv.Close)
	return srv
}

func TestAPI_EndToEnd(t *testing.T) {
	srv := newAPIServer(t)
	c := New(srv.URL+"/api", WithTokenSource(StaticToken("dev-token")))
	ctx := context.Background()

	env, err := c.Health(ctx)
	require.NoError(t, err)
	require.Equal(t, "Server is running", env.Message)

	n, err := c.CreateNote(ctx, NoteInput{Title: "T", Content: "C"})
	require.NoError(t, err)
	require.Equal(t, "T", n.Title)
	require.Equal(t, []string{}, n.Tags)
	require.Equal(t, identity.PlaceholderActorID, n.Author)

	n, err = c.UpdateNote(ctx, n.ID, NoteUpdate{Title: ""})
	require.NoError(t, err)
	require.Equal(t, "T", n.Title)

	notes, err := c.ListNotes(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)

	require.NoError(t, c.DeleteNote(ctx, n.ID))
	err = c.DeleteNote(ctx, n.ID)
	require.True(t, IsStatus(err, http.StatusNotFound))

	_, err = c.CreateNote(ctx, NoteInput{Title: "big", Content: strings.Repeat("x", 100001)})
	require.True(t, IsStatus(err, http.StatusRequestEntityTooLarge))

	d, err := c.CreateDoubt(ctx, DoubtInput{Question: "Why?"})
	require.NoError(t, err)
	_, err = c.AddAnswer(ctx, d.ID, "first")
	require.NoError(t, err)
	d, err = c.AddAnswer(ctx, d.ID, "second")
	require.NoError(t, err)
	require.Equal(t, "first", d.Answers[0].Text)
	require.Equal(t, "second", d.Answers[1].Text)

	d, err = c.ResolveDoubt(ctx, d.ID, true)
	require.NoError(t, err)
	require.True(t, d.IsResolved)

	doubts, err := c.ListDoubts(ctx)
	require.NoError(t, err)
	require.Len(t, doubts, 1)

	tt, err := c.GetTimetable(ctx)
	require.NoError(t, err)
	require.Len(t, tt.Schedule, 7)

	tt, err = c.SaveTimetable(ctx, []DaySchedule{{Day: "Monday", Slots: []TimeSlot{{StartTime: "08:00", EndTime: "09:00", Subject: "Chemistry"}}}})
	require.NoError(t, err)
	require.Len(t, tt.Schedule, 1)
	require.Equal(t, "Chemistry", tt.Schedule[0].Slots[0].Subject)
}
