package employee

import "time"

type Employee struct {
	ID                 int64     `gorm:"primaryKey"`
	Name               string    `gorm:"column:name;not null"`
	Email              string    `gorm:"column:email;uniqueIndex;not null"`
	Mobile             string    `gorm:"column:mobile"`
	Designation        string    `gorm:"column:designation"`
	Skills             string    `gorm:"column:skills"`
	AvailabilityStatus string    `gorm:"column:availability_status;default:Bench"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}
