package api

import (
	"errors"
	"fmt"
	"net/http"

	"attendease/gym-app/internal/guard"
	"attendease/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

// StaffHandler holds dependencies for routes shared by admins and trainers.
type StaffHandler struct {
	staffService service.StaffService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(staffService service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// --- Request Structs ---

// ClassRequest deliberately carries no binding tags on the form fields;
// missing/duplicate checks belong to the session guard so the client sees
// them in the guard's order.
type ClassRequest struct {
	Name      string `json:"name"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Location  string `json:"location"`
	TrainerID string `json:"trainerId"`
}

// --- Handler Methods ---

// ListClasses handles GET /staff/classes
func (h *StaffHandler) ListClasses(c *gin.Context) {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	classes, err := h.staffService.ClassesFor(c.Request.Context(), actorID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrNotStaff) {
			abortWithError(c, http.StatusForbidden, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve classes")
		}
		return
	}
	c.JSON(http.StatusOK, classes)
}

// CreateClass handles POST /staff/classes
func (h *StaffHandler) CreateClass(c *gin.Context) {
	h.saveClass(c, "")
}

// UpdateClass handles PUT /staff/classes/:classId
func (h *StaffHandler) UpdateClass(c *gin.Context) {
	h.saveClass(c, c.Param("classId"))
}

func (h *StaffHandler) saveClass(c *gin.Context, classID string) {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}

	var req ClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	form := service.ClassForm{
		Name:      req.Name,
		Date:      req.Date,
		Time:      req.Time,
		Location:  req.Location,
		TrainerID: req.TrainerID,
	}

	session, err := h.staffService.SaveClass(c.Request.Context(), actorID, classID, form)
	if err != nil {
		if errors.Is(err, guard.ErrDuplicateSession) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else if errors.Is(err, guard.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else if errors.Is(err, service.ErrClassAccessDenied) || errors.Is(err, service.ErrNotStaff) {
			abortWithError(c, http.StatusForbidden, err.Error())
		} else if errors.Is(err, service.ErrClassNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save class")
		}
		return
	}

	status := http.StatusOK
	if classID == "" {
		status = http.StatusCreated
	}
	c.JSON(status, session)
}

// DeleteClass handles DELETE /staff/classes/:classId
func (h *StaffHandler) DeleteClass(c *gin.Context) {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	classID := c.Param("classId")

	err := h.staffService.DeleteClass(c.Request.Context(), actorID, classID)
	if err != nil {
		if errors.Is(err, service.ErrClassAccessDenied) || errors.Is(err, service.ErrNotStaff) {
			abortWithError(c, http.StatusForbidden, err.Error())
		} else if errors.Is(err, service.ErrClassNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete class")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Class deleted successfully"})
}

// Roster handles GET /staff/classes/:classId/roster
func (h *StaffHandler) Roster(c *gin.Context) {
	classID := c.Param("classId")

	roster, err := h.staffService.Roster(c.Request.Context(), classID)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve roster")
		}
		return
	}
	c.JSON(http.StatusOK, roster)
}

// ToggleAttendance handles POST /staff/classes/:classId/roster/:traineeId/toggle
func (h *StaffHandler) ToggleAttendance(c *gin.Context) {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return
	}
	classID := c.Param("classId")
	traineeID := c.Param("traineeId")

	present, trainee, err := h.staffService.ToggleAttendance(c.Request.Context(), actorID, classID, traineeID)
	if err != nil {
		if errors.Is(err, guard.ErrInsufficientCredits) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else if errors.Is(err, service.ErrNotStaff) {
			abortWithError(c, http.StatusForbidden, err.Error())
		} else if errors.Is(err, service.ErrClassNotFound) || errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrTraineeNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrNotTrainee) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to toggle attendance")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"present": present,
		"trainee": MapUserToResponse(trainee),
	})
}
