package model

import "time"

// Lesson belongs to exactly one course. Video links are restricted to
// YouTube at the usecase layer.
type Lesson struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `json:"description"`
	PreviewURL  *string   `gorm:"size:500" json:"preview_url,omitempty"`
	VideoURL    *string   `gorm:"size:500" json:"video_url,omitempty"`
	CourseID    int64     `gorm:"index;not null" json:"course_id"`
	OwnerID     int64     `gorm:"index;not null" json:"owner_id"`
	CreatedAt   time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Lesson) TableName() string {
	return "lessons"
}
