package user

import "time"

const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleDecorator = "decorator"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
