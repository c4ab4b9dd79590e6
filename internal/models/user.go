package models

import "time"

type User struct {
	ID           string `gorm:"primaryKey;size:36"`
	Nome         string `gorm:"size:100;not null"`
	Email        string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`

	// Cor visual do usuário (ex: "hsl(120 70% 40%)"), atribuída pelo
	// servidor no cadastro e usada para distinguir usuários no histórico
	Color string `gorm:"size:30;uniqueIndex;not null"`

	ResetToken       *string `gorm:"size:64"`
	ResetTokenExpiry *time.Time

	CriadoEm time.Time `gorm:"autoCreateTime"`
}
