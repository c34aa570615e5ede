package messages

import (
	"strconv"
	"strings"
	"time"

	"spotdrop/db"
	"spotdrop/types"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const selectMessageColumns = `SELECT id, sender_id, receiver_id, message_text, sent_at, read_status
	FROM messages`

func queryMessages(query string, args ...any) ([]types.Message, error) {
	rows, err := db.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	msgs := []types.Message{}
	for rows.Next() {
		var msg types.Message
		err := rows.Scan(&msg.MessageID, &msg.SenderID, &msg.ReceiverID,
			&msg.MessageText, &msg.SentAt, &msg.ReadStatus)
		if err != nil {
			log.Error().Err(err).Msg("error scanning message")
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

// HandleGetMessages returns every message row. The chat list derives its
// per-counterpart view from this on the client.
func HandleGetMessages(c *gin.Context) {
	msgs, err := queryMessages(selectMessageColumns + ` ORDER BY sent_at ASC, id ASC`)
	if err != nil {
		c.JSON(500, gin.H{"error": "Database error extracting messages"})
		return
	}
	c.JSON(200, msgs)
}

// HandleGetUserMessages returns messages the given user sent or received,
// oldest first.
func HandleGetUserMessages(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid user id"})
		return
	}

	msgs, err := queryMessages(selectMessageColumns+
		` WHERE sender_id = ? OR receiver_id = ? ORDER BY sent_at ASC, id ASC`,
		userID, userID)
	if err != nil {
		c.JSON(500, gin.H{"error": "Database error extracting messages"})
		return
	}
	c.JSON(200, msgs)
}

// HandleSendMessage inserts a message. The body shape {sender, userId, text}
// is the mobile contract: userId names the receiver.
func HandleSendMessage(c *gin.Context) {
	var json struct {
		Sender int    `json:"sender"`
		UserID int    `json:"userId"`
		Text   string `json:"text"`
	}
	if err := c.BindJSON(&json); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request data"})
		return
	}

	if strings.TrimSpace(json.Text) == "" {
		c.JSON(400, gin.H{"error": "Message text is required"})
		return
	}

	sentAt := time.Now().UTC().Format(time.RFC3339)
	query := `INSERT INTO messages (sender_id, receiver_id, message_text, sent_at) VALUES (?, ?, ?, ?)`
	res, err := db.DB.Exec(query, json.Sender, json.UserID, json.Text, sentAt)
	if err != nil {
		c.JSON(500, gin.H{"error": "Database error inserting message"})
		return
	}

	msgID, _ := res.LastInsertId()
	c.JSON(201, types.Message{
		MessageID:   int(msgID),
		SenderID:    json.Sender,
		ReceiverID:  json.UserID,
		MessageText: json.Text,
		SentAt:      sentAt,
	})
}
