package user

import (
	"context"
	"log"
	"net/http"

	"wellnexus_back_end/internal/database"
	"wellnexus_back_end/internal/models"
	"wellnexus_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/markbates/goth/gothic"
)

type ctxKey string

const ProviderKey ctxKey = "provider"

func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No provider specified"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No provider specified"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	// Reuse the account if this email signed in before, any provider.
	var userID, role string
	err = session.Query(`SELECT user_id, role FROM users WHERE email = ? ALLOW FILTERING`,
		gothUser.Email).Scan(&userID, &role)
	if err != nil {
		userID = uuid.NewString()
		role = "patient"
		name := gothUser.Name
		if name == "" {
			name = gothUser.NickName
		}
		if err := session.Query(`INSERT INTO users (user_id, name, email, password, role, provider)
		                         VALUES (?, ?, ?, '', ?, ?)`,
			userID, name, gothUser.Email, role, provider).Exec(); err != nil {
			log.Println("❌ OAuth user insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Account creation failed"})
			return
		}
		log.Printf("✅ New %s account for %s", provider, gothUser.Email)
	}

	token, err := utils.GenerateJWT(models.User{ID: userID, Email: gothUser.Email, Role: role})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider": gothUser.Provider,
		"email":    gothUser.Email,
		"user_id":  userID,
		"token":    token,
	})
}
