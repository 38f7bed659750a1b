package models

// Skill - уникальный по имени тег навыка.
// Создается явным upsert-ом по имени на границе репозитория.
type Skill struct {
	BaseModel
	Name string `gorm:"uniqueIndex;not null"`
}

// Hobby - уникальный по имени тег хобби
type Hobby struct {
	BaseModel
	Name string `gorm:"uniqueIndex;not null"`
}
