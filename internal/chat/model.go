package chat

import "time"

// Chat is plain storage for a conversation between a participant set.
// There is no delivery or sequencing logic here; messages are just rows.
type Chat struct {
	ID           string    `json:"id"`
	Participants []string  `json:"person"`
	CreatedAt    time.Time `json:"created_date"`
}

type Message struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	AuthorID  string    `json:"author"`
	Text      string    `json:"text"`
	Image     string    `json:"image,omitempty"`
	Video     string    `json:"video,omitempty"`
	CreatedAt time.Time `json:"created_date"`
}
