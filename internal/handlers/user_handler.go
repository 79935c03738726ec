package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"authgate/internal/services"
)

type UserHandler struct {
	accounts services.AccountService
}

func NewUserHandler(accounts services.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

// @Summary      Данные пользователя
// @Tags         User
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/user/data [get]
func (h *UserHandler) GetUserData(c *gin.Context) {
	userID, found := getUserIDFromCtx(c)
	if !found {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Not Authorized Login Again"})
		return
	}

	data, res := h.accounts.GetUserData(userID)
	if !res.Success {
		c.JSON(http.StatusOK, res)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "userData": data})
}
