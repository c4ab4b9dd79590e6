package auth

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"validade-backend/internal/config"
	"validade-backend/internal/database"
	"validade-backend/internal/models"
	"validade-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Nome     string `json:"nome" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email,min=5"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// gerarCorUnica sorteia uma cor hsl ainda não usada por nenhum usuário.
// Depois de 50 tentativas cai num valor derivado do relógio.
func gerarCorUnica() string {
	for i := 0; i < 50; i++ {
		hue := rand.Intn(360)
		cor := fmt.Sprintf("hsl(%d 70%% 40%%)", hue)

		var count int64
		database.DB.Model(&models.User{}).Where("color = ?", cor).Count(&count)
		if count == 0 {
			return cor
		}
	}
	return fmt.Sprintf("hsl(%d 70%% 40%%)", time.Now().UnixMilli()%360)
}

func RegisterHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if err := validation.Validar(body); err != nil {
			return err
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var count int64
		database.DB.Model(&models.User{}).Where("email = ?", body.Email).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Email já cadastrado")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o hash da senha")
		}

		user := models.User{
			ID:           uuid.NewString(),
			Nome:         body.Nome,
			Email:        body.Email,
			PasswordHash: string(hash),
			Color:        gerarCorUnica(),
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o usuário")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Usuário criado com sucesso!",
			"user": fiber.Map{
				"id":    user.ID,
				"nome":  user.Nome,
				"email": user.Email,
				"color": user.Color,
			},
		})
	}
}

func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email ou senha incorretos")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email ou senha incorretos")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o token")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":    user.ID,
				"nome":  user.Nome,
				"email": user.Email,
				"color": user.Color,
			},
		})
	}
}

func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDVal := c.Locals(CtxUserIDKey)
		userID, ok := userIDVal.(string)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Não autenticado")
		}

		var user models.User
		if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Usuário não encontrado")
		}

		return c.JSON(fiber.Map{
			"id":    user.ID,
			"nome":  user.Nome,
			"email": user.Email,
			"color": user.Color,
		})
	}
}
