package member

import "time"

type Member struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	UserID     string    `gorm:"not null;uniqueIndex"`
	FullName   string    `gorm:"not null"`
	Phone      string    `gorm:"size:15"`
	JoinedDate time.Time `gorm:"type:date;not null"`
	IsActive   bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

type RegisterInput struct {
	UserID     string
	FullName   string
	Phone      string
	JoinedDate *time.Time
}

type UpdateInput struct {
	FullName string
	Phone    string
}
