package models

// UserRole - роль из JWT claims. Сами пользователи хранятся во внешнем сервисе авторизации.
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleOrganizer UserRole = "organizer"
	RolePlayer    UserRole = "player"
)
