package mailing

import (
	"fmt"
	"strconv"

	"validade-backend/internal/config"

	"gopkg.in/gomail.v2"
)

// Enviar envia um email HTML pelo SMTP configurado.
func Enviar(cfg *config.Config, para, assunto, corpoHTML string) error {
	if cfg.SMTPHost == "" {
		return fmt.Errorf("SMTP não configurado")
	}

	porta, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		return fmt.Errorf("porta SMTP inválida: %w", err)
	}

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", cfg.SMTPEmail)
	mailer.SetHeader("To", para)
	mailer.SetHeader("Subject", assunto)
	mailer.SetBody("text/html", corpoHTML)

	dialer := gomail.NewDialer(cfg.SMTPHost, porta, cfg.SMTPEmail, cfg.SMTPPassword)
	return dialer.DialAndSend(mailer)
}
