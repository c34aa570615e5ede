package spots

import (
	"database/sql"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"spotdrop/db"
	"spotdrop/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func scanSpot(rows *sql.Rows) (types.Spot, error) {
	var spot types.Spot
	var photo sql.NullString
	err := rows.Scan(&spot.MaterialID, &spot.Title, &spot.Description, &spot.Latitude,
		&spot.Longitude, &spot.Status, &spot.Category, &photo, &spot.ExpiryDate,
		&spot.CreatedAt, &spot.UserID)
	if err != nil {
		return spot, err
	}
	if photo.Valid {
		spot.Photo = &photo.String
	}
	return spot, nil
}

const selectSpotColumns = `SELECT id, title, description, latitude, longitude, status,
	category, photo, expiry_date, created_at, user_id FROM spots`

func querySpots(query string, args ...any) ([]types.Spot, error) {
	rows, err := db.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	spots := []types.Spot{}
	for rows.Next() {
		spot, err := scanSpot(rows)
		if err != nil {
			log.Error().Err(err).Msg("error scanning spot")
			continue
		}
		spots = append(spots, spot)
	}
	return spots, rows.Err()
}

func HandleGetSpots(c *gin.Context) {
	spots, err := querySpots(selectSpotColumns + ` ORDER BY id`)
	if err != nil {
		c.JSON(500, gin.H{"error": "Database error extracting spots"})
		return
	}
	c.JSON(200, spots)
}

func HandleGetSpotsByUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid user id"})
		return
	}

	spots, err := querySpots(selectSpotColumns+` WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		c.JSON(500, gin.H{"error": "Database error extracting spots"})
		return
	}
	c.JSON(200, spots)
}

// HandleCreateSpot accepts the multipart form the mobile client submits. The
// photo part is optional; when present it is stored under the upload dir with
// a generated name.
func HandleCreateSpot(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		c.JSON(400, gin.H{"error": "Title is required"})
		return
	}
	userID, err := strconv.Atoi(c.PostForm("userId"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid user id"})
		return
	}

	latitude, _ := strconv.ParseFloat(c.PostForm("latitude"), 64)
	longitude, _ := strconv.ParseFloat(c.PostForm("longitude"), 64)

	status := c.PostForm("status")
	if status == "" {
		status = "available"
	}

	var photoName *string
	file, err := c.FormFile("photo")
	if err == nil {
		name := uuid.New().String() + filepath.Ext(file.Filename)
		uploadDir := os.Getenv("UPLOAD_DIR")
		if uploadDir == "" {
			uploadDir = "uploads"
		}
		if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, name)); err != nil {
			c.JSON(500, gin.H{"error": "Failed to store photo"})
			return
		}
		photoName = &name
	}

	query := `INSERT INTO spots (title, description, latitude, longitude, status,
		category, photo, expiry_date, created_at, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := db.DB.Exec(query, title, c.PostForm("description"), latitude, longitude,
		status, c.PostForm("category"), photoName, c.PostForm("expiryDate"),
		time.Now().UTC().Format(time.RFC3339), userID)
	if err != nil {
		c.JSON(500, gin.H{"error": "Database error inserting spot"})
		return
	}

	spotID, _ := res.LastInsertId()
	log.Info().Int64("spotID", spotID).Int("userID", userID).Msg("spot created")
	c.JSON(201, gin.H{"MaterialID": spotID, "message": "Spot created"})
}

func HandleDeleteSpot(c *gin.Context) {
	spotID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid spot id"})
		return
	}

	res, err := db.DB.Exec(`DELETE FROM spots WHERE id = ?`, spotID)
	if err != nil {
		c.JSON(500, gin.H{"error": "Database error deleting spot"})
		return
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		c.JSON(404, gin.H{"error": "Spot not found"})
		return
	}
	c.JSON(200, gin.H{"message": "Spot deleted"})
}

func HandleMarkPickedUp(c *gin.Context) {
	var json struct {
		MaterialID int `json:"materialId"`
	}
	if err := c.BindJSON(&json); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request data"})
		return
	}

	res, err := db.DB.Exec(`UPDATE spots SET status = 'picked_up' WHERE id = ?`, json.MaterialID)
	if err != nil {
		c.JSON(500, gin.H{"error": "Database error updating spot"})
		return
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		c.JSON(404, gin.H{"error": "Spot not found"})
		return
	}
	c.JSON(200, gin.H{"message": "Spot marked as picked up"})
}

func HandleGetCategories(c *gin.Context) {
	rows, err := db.DB.Query(`SELECT name FROM categories ORDER BY name`)
	if err != nil {
		c.JSON(500, gin.H{"error": "Database error extracting categories"})
		return
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			continue
		}
		categories = append(categories, name)
	}
	c.JSON(200, categories)
}
