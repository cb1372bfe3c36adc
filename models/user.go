package models

import (
	"golang.org/x/crypto/bcrypt"
)

// UserType enum
type UserType string

const (
	Citizen UserType = "citizen"
	Admin   UserType = "admin"
)

// DemoUser is a fixture account. Password holds the plaintext until
// HashPassword is called and is never serialized.
type DemoUser struct {
	Email    string   `json:"email"`
	Password string   `json:"-"`
	Type     UserType `json:"type"`
	Name     string   `json:"name"`
}

func (u *DemoUser) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *DemoUser) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate))
	return err == nil
}
