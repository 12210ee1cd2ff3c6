package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserRole  CtxKey = "Role"
)

// Role values stored under KeyUserRole
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
