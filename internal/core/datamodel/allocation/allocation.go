package allocation

import "time"

type Allocation struct {
	ID             int64     `gorm:"primaryKey"`
	EmployeeID     int64     `gorm:"column:employee_id;not null;index"`
	ProjectID      int64     `gorm:"column:project_id;not null;index"`
	AllocatedHours int       `gorm:"column:allocated_hours;not null;default:40"`
	StartDate      time.Time `gorm:"column:start_date;type:date"`
	EndDate        time.Time `gorm:"column:end_date;type:date;index"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Allocation) TableName() string {
	return "allocations"
}
