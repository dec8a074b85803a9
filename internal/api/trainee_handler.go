package api

import (
	"errors"
	"net/http"

	"attendease/gym-app/internal/guard"
	"attendease/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

// TraineeHandler holds dependencies for trainee-facing routes.
type TraineeHandler struct {
	traineeService service.TraineeService
}

// NewTraineeHandler creates a new TraineeHandler.
func NewTraineeHandler(traineeService service.TraineeService) *TraineeHandler {
	return &TraineeHandler{traineeService: traineeService}
}

// OpenSessions handles GET /trainee/sessions
func (h *TraineeHandler) OpenSessions(c *gin.Context) {
	traineeID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	sessions, err := h.traineeService.OpenSessions(c.Request.Context(), traineeID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve sessions")
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// BookClass handles POST /trainee/sessions/:sessionId/book
func (h *TraineeHandler) BookClass(c *gin.Context) {
	traineeID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	classID := c.Param("sessionId")

	user, err := h.traineeService.BookClass(c.Request.Context(), traineeID, classID)
	if err != nil {
		if errors.Is(err, guard.ErrInsufficientCredits) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else if errors.Is(err, service.ErrClassNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrTraineeNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to book class")
		}
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// CancelBooking handles POST /trainee/sessions/:sessionId/cancel
func (h *TraineeHandler) CancelBooking(c *gin.Context) {
	traineeID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	classID := c.Param("sessionId")

	user, err := h.traineeService.CancelBooking(c.Request.Context(), traineeID, classID)
	if err != nil {
		if errors.Is(err, guard.ErrCancellationLocked) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else if errors.Is(err, service.ErrClassNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrTraineeNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to cancel booking")
		}
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// Packages handles GET /trainee/packages
func (h *TraineeHandler) Packages(c *gin.Context) {
	packages, err := h.traineeService.Packages(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve packages")
		return
	}
	c.JSON(http.StatusOK, packages)
}

// PurchasePackage handles POST /trainee/packages/:packageId/purchase
func (h *TraineeHandler) PurchasePackage(c *gin.Context) {
	traineeID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	packageID := c.Param("packageId")

	user, err := h.traineeService.PurchasePackage(c.Request.Context(), traineeID, packageID)
	if err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrTraineeNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to purchase package")
		}
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// ActivityHistory handles GET /trainee/activity
func (h *TraineeHandler) ActivityHistory(c *gin.Context) {
	traineeID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	logs, err := h.traineeService.ActivityHistory(c.Request.Context(), traineeID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve activity history")
		return
	}
	c.JSON(http.StatusOK, logs)
}
