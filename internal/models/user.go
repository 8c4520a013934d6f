// Package models содержит доменные структуры системы учёта членских взносов,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Роли пользователей системы.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User представляет учётную запись для входа в систему.
// Одна учётная запись соответствует не более чем одному участнику (members.user_id).
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"` // admin или member
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DummyLogin используется для приёма данных запроса на вход.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}
