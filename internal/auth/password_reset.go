package auth

import (
	"fmt"
	"log"
	"strings"
	"time"

	"validade-backend/internal/config"
	"validade-backend/internal/database"
	"validade-backend/internal/mailing"
	"validade-backend/internal/models"
	"validade-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func ForgotPasswordHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ForgotPasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if err := validation.Validar(body); err != nil {
			return err
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		// Resposta sempre 200 para não revelar se o email existe
		resposta := fiber.Map{
			"message": "Se o email estiver cadastrado, você receberá as instruções de recuperação.",
		}

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return c.JSON(resposta)
		}

		token := uuid.NewString()
		expiry := time.Now().Add(1 * time.Hour)
		user.ResetToken = &token
		user.ResetTokenExpiry = &expiry

		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao solicitar recuperação de senha")
		}

		link := fmt.Sprintf("%s/reset-password?token=%s", cfg.AppURL, token)
		corpo := fmt.Sprintf(
			"<p>Olá, %s!</p><p>Para redefinir sua senha, acesse o link abaixo (válido por 1 hora):</p><p><a href=\"%s\">%s</a></p>",
			user.Nome, link, link,
		)
		if err := mailing.Enviar(cfg, user.Email, "Recuperação de senha", corpo); err != nil {
			// A falha no envio não é exposta ao cliente
			log.Printf("Falha ao enviar email de recuperação para %s: %v", user.Email, err)
		}

		return c.JSON(resposta)
	}
}

func ResetPasswordHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ResetPasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if err := validation.Validar(body); err != nil {
			return err
		}

		var user models.User
		if err := database.DB.Where("reset_token = ?", body.Token).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Token inválido ou expirado")
		}
		if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
			return fiber.NewError(fiber.StatusBadRequest, "Token expirado. Solicite uma nova recuperação.")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o hash da senha")
		}

		user.PasswordHash = string(hash)
		user.ResetToken = nil
		user.ResetTokenExpiry = nil

		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Erro ao resetar senha")
		}

		return c.JSON(fiber.Map{"message": "Senha redefinida com sucesso!"})
	}
}
