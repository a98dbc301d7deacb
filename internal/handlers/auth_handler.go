package handlers

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/office-master/internal/config"
	"github.com/BruksfildServices01/office-master/internal/httperr"
	"github.com/BruksfildServices01/office-master/internal/models"
	"github.com/BruksfildServices01/office-master/internal/timezone"
	"github.com/BruksfildServices01/office-master/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	WorkshopName     string `json:"workshop_name" binding:"required"`
	WorkshopPhone    string `json:"workshop_phone"`
	WorkshopAddress  string `json:"workshop_address"`
	WorkshopTimezone string `json:"workshop_timezone"`

	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
	Phone     string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := validators.NormalizeEmail(req.Email)

	if !validators.IsEmailFormatValid(email) {
		httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
		return
	}
	if h.config.ValidateEmailDNS && !validators.IsEmailDomainValid(c.Request.Context(), net.DefaultResolver, email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	tz := req.WorkshopTimezone
	if tz == "" {
		tz = h.config.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao registrar.")
		return
	}
	if count > 0 {
		httperr.Conflict(c, "email_already_exists", "E-mail já cadastrado.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar senha.")
		return
	}

	shop := models.Workshop{
		Name:     strings.TrimSpace(req.WorkshopName),
		Phone:    validators.NormalizePhone(req.WorkshopPhone),
		Address:  req.WorkshopAddress,
		Timezone: tz,
	}

	user := models.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        validators.NormalizePhone(req.Phone),
		Role:         "owner",
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&shop).Error; err != nil {
			return err
		}
		user.WorkshopID = shop.ID
		return tx.Omit("Workshop").Create(&user).Error
	})
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_already_exists", "E-mail já cadastrado.")
			return
		}
		httperr.Internal(c, "failed_to_register", "Erro ao criar conta.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":     userPayload(&user),
		"workshop": shop,
		"token":    token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := validators.NormalizeEmail(req.Email)

	var user models.User
	if err := h.db.Preload("Workshop").
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro ao autenticar.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	loginAt := time.Now()
	if err := h.db.Model(&user).UpdateColumn("last_login_at", loginAt).Error; err != nil {
		httperr.Internal(c, "internal_error", "Erro ao autenticar.")
		return
	}
	user.LastLoginAt = &loginAt

	c.JSON(http.StatusOK, gin.H{
		"user":     userPayload(&user),
		"workshop": user.Workshop,
		"token":    token,
	})
}

func userPayload(user *models.User) gin.H {
	return gin.H{
		"id":            user.ID,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"name":          user.FullName(),
		"email":         user.Email,
		"phone":         user.Phone,
		"role":          user.Role,
		"workshop_id":   user.WorkshopID,
		"last_login_at": user.LastLoginAt,
	}
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":        user.ID,
		"workshopId": user.WorkshopID,
		"role":       user.Role,
		"exp":        time.Now().Add(24 * time.Hour).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
