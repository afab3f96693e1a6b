package model

import "hotelier/shared/model"

const (
	CollectionName = "users"
	EntityName     = "user"

	FieldID       = "id"
	FieldEmail    = "email"
	FieldFullName = "full_name"
	FieldRole     = "role"
	FieldActive   = "active"
)

const (
	CacheGet    = "user:get"
	CacheGetAll = "user:gets"
	CacheCount  = "user:count"
)

// User is a staff account of the back office.
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	FullName     string `json:"full_name"`
	Role         string `json:"role"`
	Active       bool   `json:"active"`
	model.Metadata
}

func Identity(user *User) *int64 {
	return &user.ID
}
