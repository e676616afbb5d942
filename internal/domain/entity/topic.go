package entity

// Topic представляет тему экзамена (например, "Algebra" в категории "Quantitative")
type Topic struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Category string `gorm:"size:100;not null" json:"category"`
}

// TableName определяет имя таблицы для GORM
func (Topic) TableName() string {
	return "topics"
}
