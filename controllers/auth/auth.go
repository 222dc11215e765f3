package authControllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Pravinale/pantonefrontend/models"
	"github.com/Pravinale/pantonefrontend/store"
)

// LoginBackend is the slice of the shop API the login proxy needs.
type LoginBackend interface {
	Login(ctx context.Context, username, password string) (models.LoginResult, error)
}

type loginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /session/login
//
// Credentials go straight through to the shop API; on success the identity
// is persisted in the auth session and a locally signed token is issued for
// the checkout routes.
func Login(api LoginBackend, session *store.AuthSession, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input loginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		result, err := api.Login(c.Request.Context(), input.Username, input.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Login failed. Please try again."})
			return
		}

		session.SignIn(result.UserID, result.User.Role)

		claims := jwt.MapClaims{
			"user_id": result.UserID,
			"role":    string(result.User.Role),
			"exp":     time.Now().Add(72 * time.Hour).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":  token,
			"userId": result.UserID,
			"user":   result.User,
		})
	}
}

// POST /session/logout
func Logout(session *store.AuthSession) gin.HandlerFunc {
	return func(c *gin.Context) {
		session.SignOut()
		c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
	}
}

// GET /session
func Session(session *store.AuthSession) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"authenticated": session.SignedIn(),
			"userId":        session.UserID(),
			"userRole":      session.Role(),
		})
	}
}
