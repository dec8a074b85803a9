package api

import (
	"errors"
	"fmt"
	"net/http"

	"attendease/gym-app/internal/domain"
	"attendease/gym-app/internal/guard"
	"attendease/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler holds dependencies for admin-only routes.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// --- Request Structs ---

// UserRequest has no binding tags on the guarded fields; the missing-field
// check is done by the service so the error shape stays uniform.
type UserRequest struct {
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phoneNumber"`
	Password    string      `json:"password"`
	Role        domain.Role `json:"role"`
	Credits     int         `json:"credits"`
}

type PackageRequest struct {
	Name    string  `json:"name"`
	Credits int     `json:"credits"`
	Price   float64 `json:"price"`
}

// --- Handler Methods ---

// Stats handles GET /admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ActivityFeed handles GET /admin/activity
func (h *AdminHandler) ActivityFeed(c *gin.Context) {
	feed, err := h.adminService.ActivityFeed(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve activity feed")
		return
	}
	c.JSON(http.StatusOK, feed)
}

// ListUsers handles GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, MapUserToResponse(&users[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// CreateUser handles POST /admin/users
func (h *AdminHandler) CreateUser(c *gin.Context) {
	h.saveUser(c, "")
}

// UpdateUser handles PUT /admin/users/:userId
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	h.saveUser(c, c.Param("userId"))
}

func (h *AdminHandler) saveUser(c *gin.Context, userID string) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	form := service.UserForm{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		Role:        req.Role,
		Credits:     req.Credits,
	}

	user, err := h.adminService.SaveUser(c.Request.Context(), userID, form)
	if err != nil {
		if errors.Is(err, guard.ErrIdentityChangePending) {
			// The caller must resubmit the same email to confirm the change.
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error":           err.Error(),
				"confirmRequired": true,
			})
		} else if errors.Is(err, service.ErrUserFieldsMissing) || errors.Is(err, service.ErrInvalidRole) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save user")
		}
		return
	}

	status := http.StatusOK
	if userID == "" {
		status = http.StatusCreated
	}
	c.JSON(status, MapUserToResponse(user))
}

// DeleteUser handles DELETE /admin/users/:userId
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID := c.Param("userId")

	err := h.adminService.DeleteUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete user")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// GeneratePassword handles POST /admin/users/password
func (h *AdminHandler) GeneratePassword(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"password": h.adminService.GeneratePassword()})
}

// ListPackages handles GET /admin/packages
func (h *AdminHandler) ListPackages(c *gin.Context) {
	packages, err := h.adminService.ListPackages(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve packages")
		return
	}
	c.JSON(http.StatusOK, packages)
}

// CreatePackage handles POST /admin/packages
func (h *AdminHandler) CreatePackage(c *gin.Context) {
	h.savePackage(c, "")
}

// UpdatePackage handles PUT /admin/packages/:packageId
func (h *AdminHandler) UpdatePackage(c *gin.Context) {
	h.savePackage(c, c.Param("packageId"))
}

func (h *AdminHandler) savePackage(c *gin.Context, packageID string) {
	var req PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	pkg, err := h.adminService.SavePackage(c.Request.Context(), packageID, service.PackageForm{
		Name:    req.Name,
		Credits: req.Credits,
		Price:   req.Price,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidPackage) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else if errors.Is(err, service.ErrPackageNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save package")
		}
		return
	}

	status := http.StatusOK
	if packageID == "" {
		status = http.StatusCreated
	}
	c.JSON(status, pkg)
}

// DeletePackage handles DELETE /admin/packages/:packageId
func (h *AdminHandler) DeletePackage(c *gin.Context) {
	packageID := c.Param("packageId")

	err := h.adminService.DeletePackage(c.Request.Context(), packageID)
	if err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete package")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Package deleted successfully"})
}
