package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sentipost/models"
	"sentipost/services"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	State     string `json:"state"`
	Country   string `json:"country"`
}

func (a *API) login(c *gin.Context, surface services.Surface) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	token, user, err := a.Auth.Login(req.Username, req.Password, surface)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, services.ErrUserDisabled) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

func (a *API) register(c *gin.Context, surface services.Surface, clock func() string) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user := models.User{
		Username:       req.Username,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		City:           req.City,
		State:          req.State,
		Country:        req.Country,
		RegisteredDate: clock(),
	}

	created, err := a.Auth.Register(user, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// AdminLogin - вход в админскую консоль
func (a *API) AdminLogin(c *gin.Context) {
	a.login(c, services.SurfaceAdmin)
}

// AdminRegister - регистрация из админской консоли
func (a *API) AdminRegister(c *gin.Context) {
	a.register(c, services.SurfaceAdmin, a.today)
}

// AdminLogout гасит админскую сессию
func (a *API) AdminLogout(c *gin.Context) {
	token := c.GetString("token")
	a.Auth.Logout(token)
	a.dropWindow(token)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// UserLogin - вход на читательской поверхности
func (a *API) UserLogin(c *gin.Context) {
	a.login(c, services.SurfaceReader)
}

// UserRegister - регистрация читателя
func (a *API) UserRegister(c *gin.Context) {
	a.register(c, services.SurfaceReader, a.today)
}

// UserLogout гасит читательскую сессию
func (a *API) UserLogout(c *gin.Context) {
	token := c.GetString("token")
	a.Auth.Logout(token)
	a.dropWindow(token)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}
