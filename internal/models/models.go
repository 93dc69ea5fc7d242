package models

import "time"

type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleInstructor Role = "INSTRUCTOR"
	RoleAdmin      Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         Role      `gorm:"not null"                 json:"role"`
	FirstName    string    `gorm:"not null"                 json:"first_name"`
	LastName     string    `gorm:"not null"                 json:"last_name"`
	CreatedAt    time.Time `gorm:"<-:create"                json:"created_at"`
}

type Course struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string    `gorm:"not null"                 json:"title"`
	Description  string    `gorm:"not null;size:2000"       json:"description"`
	Price        float64   `gorm:"not null"                 json:"price"`
	InstructorID uint      `gorm:"index;not null"           json:"instructor_id"`
	CreatedAt    time.Time `gorm:"<-:create"                json:"created_at"`
}

// Enrollment is insert-only. The composite unique index is the final arbiter
// of the one-enrollment-per-(user,course) invariant under concurrent enrolls.
type Enrollment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_course"    json:"user_id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_user_course"    json:"course_id"`
	CreatedAt time.Time `gorm:"<-:create"                               json:"created_at"`
}
