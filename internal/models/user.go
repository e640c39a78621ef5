// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и дату создания.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int64     // Уникальный идентификатор, присваивается базой при создании
	Username     string    // Имя пользователя (уникальное, неизменяемое)
	PasswordHash string    // Хэш пароля пользователя, наружу не отдаётся
	CreatedAt    time.Time // Дата создания учётной записи
}
