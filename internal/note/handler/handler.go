package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyhub/studyhub/backend/go-services/internal/note"
	"github.com/studyhub/studyhub/backend/go-services/internal/note/service"
	"github.com/studyhub/studyhub/backend/go-services/pkg/response"
	"github.com/studyhub/studyhub/backend/go-services/pkg/validation"
)

// Service is the subset of the note service the routes depend on.
type Service interface {
	List(ctx context.Context) ([]*note.Note, error)
	Create(ctx context.Context, in service.CreateInput) (*note.Note, error)
	Update(ctx context.Context, id string, p note.Patch) (*note.Note, error)
	Delete(ctx context.Context, id string) error
}

type createRequest struct {
	Title   string   `json:"title" binding:"notblank"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags"`
}

type updateRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

var messages = validation.Messages{
	"title":            "Title is required",
	"title.type":       "Title must be a string",
	"content.required": "Content is required",
	"content.type":     "Content must be a string",
	"tags.type":        "Tags must be an array of strings",
}

var errMessages = response.Messages{NotFound: "Note not found"}

func RegisterNoteRoutes(r gin.IRouter, svc Service) {
	r.GET("/api/notes", func(c *gin.Context) {
		notes, err := svc.List(c.Request.Context())
		if err != nil {
			response.FromError(c, "get notes", err, errMessages)
			return
		}
		response.Success(c, http.StatusOK, "", gin.H{"notes": notes})
	})

	r.POST("/api/notes", func(c *gin.Context) {
		var req createRequest
		if errs := validation.BindJSON(c, &req, messages); errs != nil {
			response.Invalid(c, "", errs)
			return
		}
		n, err := svc.Create(c.Request.Context(), service.CreateInput{Title: req.Title, Content: req.Content, Tags: req.Tags})
		if err != nil {
			response.FromError(c, "create note", err, errMessages)
			return
		}
		response.Success(c, http.StatusCreated, "Note created successfully", gin.H{"note": n})
	})

	r.PUT("/api/notes/:id", func(c *gin.Context) {
		var req updateRequest
		if errs := validation.BindJSON(c, &req, messages); errs != nil {
			response.Invalid(c, "", errs)
			return
		}
		n, err := svc.Update(c.Request.Context(), c.Param("id"), note.Patch{Title: req.Title, Content: req.Content, Tags: req.Tags})
		if err != nil {
			response.FromError(c, "update note", err, errMessages)
			return
		}
		response.Success(c, http.StatusOK, "Note updated successfully", gin.H{"note": n})
	})

	r.DELETE("/api/notes/:id", func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			response.FromError(c, "delete note", err, errMessages)
			return
		}
		response.Success(c, http.StatusOK, "Note deleted successfully", nil)
	})
}
