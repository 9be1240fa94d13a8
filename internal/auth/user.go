package auth

import "context"

type contextKey string

// ContextUserKey stores the authenticated user in the request context.
const ContextUserKey contextKey = "authUser"

// User is the authenticated principal attached to a request. It carries only
// what authorization decisions need; the full account lives in the user
// domain.
type User struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
	EmployeeID *int64 `json:"employee_id,omitempty"`
}

const (
	RoleAdmin    = "Admin"
	RoleManager  = "Manager"
	RoleEmployee = "Employee"
)

func (u *User) HasRole(roles ...string) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

// UserFromContext returns the authenticated user, or nil when the request
// did not pass through the auth middleware.
func UserFromContext(ctx context.Context) *User {
	if ctx == nil {
		return nil
	}
	if u, ok := ctx.Value(ContextUserKey).(*User); ok {
		return u
	}
	return nil
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}
