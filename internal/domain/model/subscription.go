package model

import "time"

// Subscription marks a user's interest in updates to a course. The
// (user, course) pair is unique; subscribing twice toggles it off.
type Subscription struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"uniqueIndex:idx_subscriptions_user_course;not null" json:"user_id"`
	CourseID  int64     `gorm:"uniqueIndex:idx_subscriptions_user_course;not null" json:"course_id"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}
