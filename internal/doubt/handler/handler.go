package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyhub/studyhub/backend/go-services/internal/doubt"
	"github.com/studyhub/studyhub/backend/go-services/internal/doubt/service"
	"github.com/studyhub/studyhub/backend/go-services/pkg/response"
	"github.com/studyhub/studyhub/backend/go-services/pkg/validation"
)

type Service interface {
	List(ctx context.Context) ([]*doubt.Doubt, error)
	Create(ctx context.Context, in service.CreateInput) (*doubt.Doubt, error)
	AddAnswer(ctx context.Context, id, text string) (*doubt.Doubt, error)
	Resolve(ctx context.Context, id string, resolved *bool) (*doubt.Doubt, error)
}

type createRequest struct {
	Question    string   `json:"question" binding:"notblank"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type answerRequest struct {
	Text string `json:"text" binding:"notblank"`
}

type resolveRequest struct {
	IsResolved *bool `json:"isResolved" binding:"required"`
}

const msgResolvedNotBool = "isResolved must be a boolean"

var messages = validation.Messages{
	"question":         "Question is required",
	"question.type":    "Question must be a string",
	"description.type": "Description must be a string",
	"tags.type":        "Tags must be an array of strings",
	"text":             "Answer text is required",
	"text.type":        "Answer text must be a string",
}

var errMessages = response.Messages{
	NotFound:  "Doubt not found",
	Forbidden: "Not authorized to resolve this doubt",
}

func RegisterDoubtRoutes(r gin.IRouter, svc Service) {
	r.GET("/api/doubts", func(c *gin.Context) {
		doubts, err := svc.List(c.Request.Context())
		if err != nil {
			response.FromError(c, "get doubts", err, errMessages)
			return
		}
		response.Success(c, http.StatusOK, "", gin.H{"doubts": doubts})
	})

	r.POST("/api/doubts", func(c *gin.Context) {
		var req createRequest
		if errs := validation.BindJSON(c, &req, messages); errs != nil {
			response.Invalid(c, "", errs)
			return
		}
		d, err := svc.Create(c.Request.Context(), service.CreateInput{Question: req.Question, Description: req.Description, Tags: req.Tags})
		if err != nil {
			response.FromError(c, "create doubt", err, errMessages)
			return
		}
		response.Success(c, http.StatusCreated, "Doubt posted successfully", gin.H{"doubt": d})
	})

	r.POST("/api/doubts/:id/answers", func(c *gin.Context) {
		var req answerRequest
		if errs := validation.BindJSON(c, &req, messages); errs != nil {
			response.Invalid(c, "", errs)
			return
		}
		d, err := svc.AddAnswer(c.Request.Context(), c.Param("id"), req.Text)
		if err != nil {
			response.FromError(c, "add answer", err, errMessages)
			return
		}
		response.Success(c, http.StatusOK, "Answer added successfully", gin.H{"doubt": d})
	})

	r.PUT("/api/doubts/:id/resolve", func(c *gin.Context) {
		// the body is only judged after the ownership check, so a bad body
		// just leaves IsResolved nil here
		var req resolveRequest
		_ = validation.BindJSON(c, &req, messages)

		d, err := svc.Resolve(c.Request.Context(), c.Param("id"), req.IsResolved)
		if errors.Is(err, service.ErrResolvedNotBool) {
			response.Fail(c, http.StatusBadRequest, msgResolvedNotBool)
			return
		}
		if err != nil {
			response.FromError(c, "resolve doubt", err, errMessages)
			return
		}
		msg := "Doubt unresolved"
		if d.IsResolved {
			msg = "Doubt resolved"
		}
		response.Success(c, http.StatusOK, msg, gin.H{"doubt": d})
	})
}
