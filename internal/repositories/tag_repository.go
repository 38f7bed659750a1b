package repositories

import (
	"mentormatch_backend/internal/models"

	"gorm.io/gorm"
)

// TagRepository - реестр навыков и хобби.
// Теги создаются лениво при обновлении профиля: ищем по имени,
// при отсутствии создаем (upsert-by-name).
type TagRepository interface {
	UpsertSkills(db *gorm.DB, names []string) ([]models.Skill, error)
	UpsertHobbies(db *gorm.DB, names []string) ([]models.Hobby, error)
}

type TagRepositoryImpl struct{}

func NewTagRepository() TagRepository {
	return &TagRepositoryImpl{}
}

func (r *TagRepositoryImpl) UpsertSkills(db *gorm.DB, names []string) ([]models.Skill, error) {
	skills := make([]models.Skill, 0, len(names))
	for _, name := range dedupe(names) {
		var skill models.Skill
		err := db.Where("name = ?", name).
			FirstOrCreate(&skill, models.Skill{Name: name}).Error
		if err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, nil
}

func (r *TagRepositoryImpl) UpsertHobbies(db *gorm.DB, names []string) ([]models.Hobby, error) {
	hobbies := make([]models.Hobby, 0, len(names))
	for _, name := range dedupe(names) {
		var hobby models.Hobby
		err := db.Where("name = ?", name).
			FirstOrCreate(&hobby, models.Hobby{Name: name}).Error
		if err != nil {
			return nil, err
		}
		hobbies = append(hobbies, hobby)
	}
	return hobbies, nil
}

// dedupe убирает дубликаты, сохраняя порядок первого вхождения
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
