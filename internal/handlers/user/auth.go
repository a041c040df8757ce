package user

import (
	"log"
	"net/http"
	"time"

	"wellnexus_back_end/internal/database"
	"wellnexus_back_end/internal/models"
	"wellnexus_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ================== LOCAL AUTH ==================

// Register creates a patient, practitioner or admin account. Practitioners
// additionally get an unverified profile awaiting admin review.
func Register(c *gin.Context) {
	var input struct {
		Name            string  `json:"name"`
		Email           string  `json:"email" binding:"required,email"`
		Password        string  `json:"password" binding:"required,min=6"`
		Role            string  `json:"role"`
		Specialization  string  `json:"specialization"`
		Bio             string  `json:"bio"`
		ConsultationFee float64 `json:"consultation_fee"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	// Email already taken?
	var existingID string
	if err := session.Query(`SELECT user_id FROM users WHERE email = ? ALLOW FILTERING`,
		input.Email).Scan(&existingID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account creation failed"})
		return
	}

	role := input.Role
	switch role {
	case "practitioner", "admin":
	default:
		role = "patient"
	}

	user := models.User{
		ID:       uuid.NewString(),
		Name:     input.Name,
		Email:    input.Email,
		Password: hashedPassword,
		Role:     role,
		Provider: "local",
	}

	if err := session.Query(`INSERT INTO users (user_id, name, email, password, role, provider, created_at)
	                         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.Password, user.Role, user.Provider, time.Now(),
	).Exec(); err != nil {
		log.Println("❌ User insert failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account creation failed"})
		return
	}

	// Practitioners start unverified and invisible to patients.
	if role == "practitioner" {
		if err := session.Query(`INSERT INTO practitioner_profiles (
				practitioner_id, user_id, name, specialization, bio,
				consultation_fee, start_hour, end_hour, verified, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, false, ?)`,
			gocql.TimeUUID(), user.ID, user.Name, input.Specialization, input.Bio,
			input.ConsultationFee, 9, 18, time.Now(),
		).Exec(); err != nil {
			log.Println("⚠️ Practitioner profile insert failed:", err)
		}
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}

	log.Printf("✅ Account created: %s (%s)", user.Email, user.Role)
	c.JSON(http.StatusCreated, gin.H{
		"token":  token,
		"userId": user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"role":   user.Role,
	})
}

// Login authenticates a local account and returns a JWT.
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials payload"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	var user models.User
	if err := session.Query(`SELECT user_id, name, email, password, role FROM users
	                         WHERE email = ? AND provider = 'local' ALLOW FILTERING`,
		input.Email).Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}

	log.Printf("✅ Login: %s", user.Email)
	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userId": user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"role":   user.Role,
	})
}

// Me returns the authenticated user's identity claims.
func Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"userId": c.GetString("user_id"),
		"email":  c.GetString("email"),
		"role":   c.GetString("role"),
	})
}
