package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vanbenpham/forunime-backend/live"
	"github.com/vanbenpham/forunime-backend/logger"
	"github.com/vanbenpham/forunime-backend/messaging"
	"github.com/vanbenpham/forunime-backend/models"

	"github.com/gin-gonic/gin"
)

var (
	LiveUsers = live.NewRegistry()
	Messages  = messaging.NewRouter(LiveUsers)
)

type Response struct {
	Error string `json:"error"`
}

func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrInvalidTarget),
		errors.Is(err, models.ErrCircularReference):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, Response{Error: err.Error()})
}

func paramID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, Response{Error: "invalid id"})
		return 0, false
	}
	return id, true
}
