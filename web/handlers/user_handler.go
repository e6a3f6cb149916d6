package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/myairobotics/myaisells-admin/internal/ccc/db"
	"github.com/myairobotics/myaisells-admin/internal/ccc/logging"
	"github.com/myairobotics/myaisells-admin/internal/users"
)

const defaultUserPageSize = 20

type UserHandler struct {
	logger      logging.Logger
	userService users.UserService
}

func NewUserHandler(logger logging.Logger, userService users.UserService) *UserHandler {
	return &UserHandler{
		logger:      logger,
		userService: userService,
	}
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultUserPageSize)))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultUserPageSize
	}

	query := users.UserQuery{
		Search:   c.Query("search"),
		SortBy:   c.DefaultQuery("sortBy", users.SortByCreatedAt),
		SortDir:  c.DefaultQuery("sortDir", "desc"),
		Page:     page,
		PageSize: pageSize,
	}

	result, err := h.userService.ListUsers(c.Request.Context(), query)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load users")
		return
	}

	data := make([]gin.H, 0, len(result.Users))
	for _, user := range result.Users {
		data = append(data, gin.H{
			"id":         strconv.FormatInt(user.ID, 10),
			"email":      user.Email,
			"username":   user.Username,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"is_active":  user.IsActive,
			"created_at": db.TimeToString(user.CreatedAt),
		})
	}

	totalPages := (result.Total + pageSize - 1) / pageSize

	respondData(c, gin.H{
		"data": data,
		"meta": gin.H{
			"page":        page,
			"pageSize":    pageSize,
			"total":       result.Total,
			"totalPages":  totalPages,
			"sortBy":      query.SortBy,
			"sortDir":     query.SortDir,
			"hasNextPage": page < totalPages,
			"hasPrevPage": page > 1,
		},
	})
}

// UpdateUserStatus handles POST /api/user-status-update
func (h *UserHandler) UpdateUserStatus(c *gin.Context) {
	var request struct {
		UserID int64 `json:"userId"`
		Status bool  `json:"status"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.userService.UpdateUserStatus(c.Request.Context(), request.UserID, request.Status); err != nil {
		if users.IsUserNotFoundError(err) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to update user status")
		return
	}

	respondData(c, gin.H{
		"message": "User status updated",
	})
}
