package auth

import (
	"database/sql"
	"os"
	"time"

	"spotdrop/db"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type UserData struct {
	ID       int
	Username string
	Email    string
	Password string
}

func generateJWT(userID int, userEmail string, expirationTime time.Duration) (string, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	claims := jwt.MapClaims{
		"userID":    userID,
		"userEmail": userEmail,
		"exp":       time.Now().Add(expirationTime).Unix(), // Token expiration
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

func hashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

// HandleLogin verifies credentials and returns the user id the mobile contract
// expects, plus a token for clients that want it.
func HandleLogin(c *gin.Context) {
	var json struct {
		Email    string `json:"Email"`
		Password string `json:"Password"`
	}

	if err := c.BindJSON(&json); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request data"})
		return
	}

	var userData UserData
	query := `SELECT id, username, email, password FROM users WHERE email = ?`
	err := db.DB.QueryRow(query, json.Email).Scan(&userData.ID, &userData.Username, &userData.Email, &userData.Password)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(400, gin.H{"error": "User not found by email"})
		} else {
			c.JSON(500, gin.H{"error": "Error extracting data"})
		}
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(userData.Password), []byte(json.Password))
	if err != nil {
		c.JSON(400, gin.H{"error": "Incorrect password"})
		return
	}

	token, err := generateJWT(userData.ID, userData.Email, time.Hour*672) // 28 days
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to generate JWT token"})
		return
	}

	log.Info().Int("userID", userData.ID).Msg("user logged in")

	c.JSON(200, gin.H{
		"userId":   userData.ID,
		"username": userData.Username,
		"token":    token,
	})
}

func HandleRegister(c *gin.Context) {
	var json struct {
		Username string `json:"Username"`
		Email    string `json:"Email"`
		Password string `json:"Password"`
	}

	if err := c.BindJSON(&json); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request data"})
		return
	}

	if json.Email == "" || json.Password == "" {
		c.JSON(400, gin.H{"error": "Email and password are required"})
		return
	}

	hashedPassword, err := hashPassword(json.Password)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to hash password"})
		return
	}

	query := `INSERT INTO users (username, email, password) VALUES (?, ?, ?)`
	res, err := db.DB.Exec(query, json.Username, json.Email, hashedPassword)
	if err != nil {
		if err.Error() == "UNIQUE constraint failed: users.email" {
			c.JSON(400, gin.H{"error": "Email is already taken"})
			return
		}

		c.JSON(500, gin.H{"error": "Database error inserting data"})
		return
	}

	userID, _ := res.LastInsertId()
	c.JSON(201, gin.H{"userId": userID, "message": "Successfully registered"})
}
