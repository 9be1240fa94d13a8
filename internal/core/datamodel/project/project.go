package project

import "time"

type Project struct {
	ID             int64      `gorm:"primaryKey"`
	Name           string     `gorm:"column:name;not null"`
	ClientName     string     `gorm:"column:client_name;not null"`
	RequiredSkills string     `gorm:"column:required_skills"`
	StartDate      *time.Time `gorm:"column:start_date;type:date"`
	EndDate        *time.Time `gorm:"column:end_date;type:date"`
	Status         string     `gorm:"column:status;default:Active"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Project) TableName() string {
	return "projects"
}
