package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"authgate/internal/config"
	"authgate/internal/middleware"
	"authgate/internal/models"
	"authgate/internal/services"
)

type AuthHandler struct {
	accounts services.AccountService
	cfg      *config.Config
}

func NewAuthHandler(accounts services.AccountService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{accounts: accounts, cfg: cfg}
}

// setSessionCookie — http-only cookie на 7 дней; в проде secure +
// SameSite=None (кросс-доменный фронт), иначе Strict без secure.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	maxAge := int(time.Duration(h.cfg.Auth.SessionTTL).Seconds())
	if h.cfg.IsProduction() {
		c.SetSameSite(http.SameSiteNoneMode)
		c.SetCookie(middleware.CookieName, token, maxAge, "/", "", true, true)
		return
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.CookieName, token, maxAge, "/", "", false, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	if h.cfg.IsProduction() {
		c.SetSameSite(http.SameSiteNoneMode)
		c.SetCookie(middleware.CookieName, "", -1, "/", "", true, true)
		return
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.CookieName, "", -1, "/", "", false, true)
}

// @Summary      Регистрация
// @Description  Создаёт пользователя, ставит сессионную cookie и шлёт welcome-письмо
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.RegisterRequest  true  "Данные регистрации"
// @Success      200   {object}  services.Result
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	token, res := h.accounts.Register(req.Name, req.Email, req.Password)
	// cookie ставим всегда, когда токен выпущен: пользователь уже создан,
	// даже если письмо не ушло и res.Success=false
	if token != "" {
		h.setSessionCookie(c, token)
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Вход
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.LoginRequest  true  "Данные для входа"
// @Success      200   {object}  services.Result
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	token, res := h.accounts.Login(req.Email, req.Password)
	if token != "" {
		h.setSessionCookie(c, token)
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Выход
// @Description  Сервер сессий не хранит: logout только велит клиенту забыть cookie
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  services.Result
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged Out"})
}

// @Summary      Проверка сессии
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  services.Result
// @Router       /api/auth/is-auth [get]
func (h *AuthHandler) IsAuthenticated(c *gin.Context) {
	// сюда попадают только через SessionAuth, проверять нечего
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary      Отправить OTP верификации почты
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  services.Result
// @Router       /api/auth/send-verify-otp [post]
func (h *AuthHandler) SendVerifyOTP(c *gin.Context) {
	userID, found := getUserIDFromCtx(c)
	if !found {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Not Authorized Login Again"})
		return
	}
	c.JSON(http.StatusOK, h.accounts.SendVerifyOTP(userID))
}

// @Summary      Подтвердить почту по OTP
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.VerifyEmailRequest  true  "OTP"
// @Success      200   {object}  services.Result
// @Router       /api/auth/verify-account [post]
func (h *AuthHandler) VerifyAccount(c *gin.Context) {
	var req models.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}
	userID, _ := getUserIDFromCtx(c)
	c.JSON(http.StatusOK, h.accounts.VerifyEmail(userID, req.OTP))
}

// @Summary      Отправить OTP сброса пароля
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.SendResetOTPRequest  true  "Email"
// @Success      200   {object}  services.Result
// @Router       /api/auth/send-reset-otp [post]
func (h *AuthHandler) SendResetOTP(c *gin.Context) {
	var req models.SendResetOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.accounts.SendResetOTP(req.Email))
}

// @Summary      Сброс пароля по OTP
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.ResetPasswordRequest  true  "Email, OTP и новый пароль"
// @Success      200   {object}  services.Result
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.accounts.ResetPassword(req.Email, req.OTP, req.NewPassword))
}
