package types

type UserData struct {
	ID       int
	Username string
	Email    string
	Password string
}

// Spot field names match what the mobile clients already consume.
type Spot struct {
	MaterialID  int     `json:"MaterialID"`
	Title       string  `json:"Title"`
	Description string  `json:"Description"`
	Latitude    float64 `json:"Latitude"`
	Longitude   float64 `json:"Longitude"`
	Status      string  `json:"Status"`
	Category    string  `json:"category"`
	Photo       *string `json:"Photo"`
	ExpiryDate  string  `json:"ExpiryDate"`
	CreatedAt   string  `json:"CreatedAt"`
	UserID      int     `json:"UserID"`
}

type Message struct {
	MessageID   int    `json:"MessageID"`
	SenderID    int    `json:"SenderID"`
	ReceiverID  int    `json:"ReceiverID"`
	MessageText string `json:"MessageText"`
	SentAt      string `json:"SentAt"`
	ReadStatus  bool   `json:"ReadStatus"`
}
