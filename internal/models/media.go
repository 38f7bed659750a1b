package models

import (
	"gorm.io/datatypes"
)

// Media - загруженный пользователем файл (изображение/видео).
// Виден владельцу и пользователям, имеющим с ним матч.
type Media struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Path      string    `gorm:"not null"` // путь внутри storage
	URL       string    // публичный URL
	MediaType MediaType `gorm:"type:varchar(10);default:'image'"`
	Caption   string    `gorm:"type:varchar(255)"`
	MimeType  string    `gorm:"type:varchar(100)"`
	Size      int64
	Metadata  datatypes.JSON `gorm:"type:jsonb"` // оригинальное имя файла и т.п.

	User *User `gorm:"foreignKey:UserID"`
}
