package model

import "time"

// Course groups lessons under a single purchasable unit.
type Course struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `json:"description"`
	PreviewURL  *string   `gorm:"size:500" json:"preview_url,omitempty"`
	OwnerID     int64     `gorm:"index;not null" json:"owner_id"`
	CreatedAt   time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"default:now()" json:"updated_at"`

	Lessons []Lesson `gorm:"foreignKey:CourseID" json:"lessons,omitempty"`
}

// TableName specifies the table name for GORM
func (Course) TableName() string {
	return "courses"
}
