package models

// Swipe - направленное, перезаписываемое решение like/pass.
// Не более одной записи на упорядоченную пару (from, to).
type Swipe struct {
	BaseModel
	FromUserID string `gorm:"not null;index;uniqueIndex:idx_swipes_pair"`
	ToUserID   string `gorm:"not null;index;uniqueIndex:idx_swipes_pair"`
	Liked      bool   `gorm:"not null;default:false"`

	FromUser *User `gorm:"foreignKey:FromUserID"`
	ToUser   *User `gorm:"foreignKey:ToUserID"`
}

// Match - симметричная запись о взаимном лайке.
// Каноническое упорядочивание User1ID < User2ID гарантирует
// не более одной строки на неупорядоченную пару.
type Match struct {
	BaseModel
	User1ID string `gorm:"not null;index;uniqueIndex:idx_matches_pair"`
	User2ID string `gorm:"not null;index;uniqueIndex:idx_matches_pair"`

	User1 *User `gorm:"foreignKey:User1ID"`
	User2 *User `gorm:"foreignKey:User2ID"`
}

// HasParticipant проверяет, является ли пользователь стороной матча
func (m *Match) HasParticipant(userID string) bool {
	return m.User1ID == userID || m.User2ID == userID
}

// CanonicalPair возвращает пару ID в каноническом порядке (меньший первым)
func CanonicalPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}
