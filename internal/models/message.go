package models

// Message - сообщение в рамках матча. Append-only,
// упорядочено по времени создания по возрастанию.
type Message struct {
	BaseModel
	MatchID  string `gorm:"not null;index"`
	SenderID string `gorm:"not null;index"`
	Content  string `gorm:"type:text;not null"`

	Match  *Match `gorm:"foreignKey:MatchID"`
	Sender *User  `gorm:"foreignKey:SenderID"`
}
