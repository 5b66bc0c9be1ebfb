package employee

import "time"

// Employee is read and written through sqlx; the gorm tags are only used to
// create the table in tests.
type Employee struct {
	ID             int64     `gorm:"primaryKey" db:"id"`
	Username       string    `gorm:"column:username;uniqueIndex;not null" db:"username"`
	Address        string    `gorm:"column:address" db:"address"`
	JobType        string    `gorm:"column:job_type;not null;index" db:"job_type"`
	DepartmentName string    `gorm:"column:department_name;not null;index" db:"department_name"`
	RoleName       string    `gorm:"column:role_name;not null" db:"role_name"`
	CreatedAt      time.Time `gorm:"column:created_at" db:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" db:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}
