package middlewares

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/1MindLabs/mivro-server/config"
	"github.com/1MindLabs/mivro-server/models"
	"github.com/1MindLabs/mivro-server/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware accepts either a Bearer token (website) or the
// Mivro-Email/Mivro-Password header pair (extension). Either way the
// resolved email lands in the context under "email".
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetHeader("Mivro-Email")

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			if email == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Email is required."})
				return
			}
			if !validToken(strings.TrimPrefix(authHeader, "Bearer "), email) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token."})
				return
			}
			c.Set("email", email)
			c.Next()
			return
		}

		password := c.GetHeader("Mivro-Password")
		if email == "" || password == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Email and password are required."})
			return
		}

		var user models.User
		if err := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found."})
			return
		}
		if !utils.CheckPasswordHash(password, user.Password) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Incorrect password."})
			return
		}

		c.Set("email", email)
		c.Next()
	}
}

func validToken(tokenString, email string) bool {
	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		return false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	claimed, _ := claims["email"].(string)
	return claimed == email
}
