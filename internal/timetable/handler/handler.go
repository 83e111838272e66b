package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyhub/studyhub/backend/go-services/internal/timetable"
	"github.com/studyhub/studyhub/backend/go-services/pkg/response"
	"github.com/studyhub/studyhub/backend/go-services/pkg/validation"
)

type Service interface {
	Get(ctx context.Context) (*timetable.Timetable, error)
	Save(ctx context.Context, schedule []timetable.DaySchedule) (*timetable.Timetable, error)
}

type saveRequest struct {
	Schedule []timetable.DaySchedule `json:"schedule" binding:"required,dive"`
}

var messages = validation.Messages{
	"schedule":              "Schedule must be an array",
	"schedule.day.notblank": "Each day needs a name",
	"schedule.slots.type":   "Slots must be an array",
	"schedule.type":         "Schedule must be an array",
}

var errMessages = response.Messages{NotFound: "Timetable not found"}

func RegisterTimetableRoutes(r gin.IRouter, svc Service) {
	r.GET("/api/timetable", func(c *gin.Context) {
		tt, err := svc.Get(c.Request.Context())
		if err != nil {
			response.FromError(c, "get timetable", err, errMessages)
			return
		}
		response.Success(c, http.StatusOK, "", gin.H{"timetable": tt})
	})

	r.POST("/api/timetable", func(c *gin.Context) {
		var req saveRequest
		if errs := validation.BindJSON(c, &req, messages); errs != nil {
			response.Invalid(c, "", errs)
			return
		}
		tt, err := svc.Save(c.Request.Context(), req.Schedule)
		if err != nil {
			response.FromError(c, "save timetable", err, errMessages)
			return
		}
		response.Success(c, http.StatusOK, "Timetable saved successfully", gin.H{"timetable": tt})
	})
}
