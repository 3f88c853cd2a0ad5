package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/walner-prog/mitienda-backend/pkg/apperr"
	"github.com/walner-prog/mitienda-backend/pkg/database"
	"github.com/walner-prog/mitienda-backend/pkg/middleware"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"nombre"`
	Role     string `json:"rol"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a user with a bcrypt-hashed password
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New(apperr.Validation, apperr.CodeInvalidInput, "Faltan datos obligatorios"))
		return
	}

	var count int64
	if err := h.db.Model(&database.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		apperr.Respond(c, err)
		return
	}
	if count > 0 {
		apperr.Respond(c, apperr.New(apperr.Validation, apperr.CodeDuplicate, "Email ya registrado"))
		return
	}
	if err := h.db.Model(&database.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		apperr.Respond(c, err)
		return
	}
	if count > 0 {
		apperr.Respond(c, apperr.New(apperr.Validation, apperr.CodeDuplicate, "Username ya registrado"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	role := req.Role
	if role != database.RoleAdmin {
		role = database.RoleUser
	}

	user := database.User{
		Email:        req.Email,
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := h.db.Create(&user).Error; err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "usuario": user})
}

// Login checks the password and issues a signed token
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New(apperr.Validation, apperr.CodeInvalidInput, "Faltan username o password"))
		return
	}

	var user database.User
	if err := h.db.First(&user, "username = ?", req.Username).Error; err != nil {
		apperr.Respond(c, apperr.New(apperr.NotFound, apperr.CodeNotFound, "Usuario no encontrado"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Contraseña incorrecta"})
		return
	}

	claims := jwt.MapClaims{
		"id":       user.ID.String(),
		"username": user.Username,
		"rol":      user.Role,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.Secret())
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "usuario": user, "token": token})
}

// Me returns the authenticated user's profile
func (h *Handler) Me(c *gin.Context) {
	var user database.User
	if err := h.db.First(&user, "id = ?", c.GetString("user_id")).Error; err != nil {
		apperr.Respond(c, apperr.New(apperr.NotFound, apperr.CodeNotFound, "Usuario no encontrado"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "usuario": user})
}

type UpdateProfileRequest struct {
	Name     *string `json:"nombre"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UpdateMe updates the authenticated user's name, email or password
func (h *Handler) UpdateMe(c *gin.Context) {
	var user database.User
	if err := h.db.First(&user, "id = ?", c.GetString("user_id")).Error; err != nil {
		apperr.Respond(c, apperr.New(apperr.NotFound, apperr.CodeNotFound, "Usuario no encontrado"))
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.New(apperr.Validation, apperr.CodeInvalidInput, err.Error()))
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		user.PasswordHash = string(hash)
	}

	if err := h.db.Save(&user).Error; err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "usuario": user})
}

// ListUsers returns all users (admin only)
func (h *Handler) ListUsers(c *gin.Context) {
	var users []database.User
	if err := h.db.Order("created_at ASC").Find(&users).Error; err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "usuarios": users})
}

// DeleteUser soft-deletes a user (admin only)
func (h *Handler) DeleteUser(c *gin.Context) {
	var user database.User
	if err := h.db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		apperr.Respond(c, apperr.New(apperr.NotFound, apperr.CodeNotFound, "Usuario no encontrado"))
		return
	}

	if err := h.db.Delete(&user).Error; err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Usuario eliminado correctamente"})
}
