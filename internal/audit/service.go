package audit

import (
	"encoding/json"
	"fmt"

	"validade-backend/internal/database"
	"validade-backend/internal/models"
)

type LogOptions struct {
	AlimentoID     *uint
	AlimentoCodigo string
	AlimentoNome   string
	Action         models.AuditAction
	UserID         string
	UserName       string
	Changes        any
}

// WriteLog grava um registro de auditoria. O histórico é append-only:
// registros nunca são alterados nem removidos depois de gravados.
//
// A gravação é feita APÓS a mutação da entidade, sem transação entre as
// duas escritas: uma falha aqui deixa a mutação sem o seu registro
// (comportamento best-effort; quem chama decide apenas logar o erro).
func WriteLog(opts LogOptions) error {
	// Para jsonb no PostgreSQL usamos a string "null" quando não há payload
	changesStr := "null"
	if opts.Changes != nil {
		if b, err := json.Marshal(opts.Changes); err == nil {
			changesStr = string(b)
		}
	}

	entry := models.AuditLog{
		AlimentoID: opts.AlimentoID,
		Action:     opts.Action,
		UserID:     opts.UserID,
		UserName:   opts.UserName,
		Changes:    changesStr,
	}
	if opts.AlimentoCodigo != "" {
		entry.AlimentoCodigo = &opts.AlimentoCodigo
	}
	if opts.AlimentoNome != "" {
		entry.AlimentoNome = &opts.AlimentoNome
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("não foi possível gravar o registro de auditoria: %w", err)
	}

	return nil
}

// LogsDoAlimento devolve o histórico de um alimento em ordem cronológica
// crescente (a ordem esperada pela reconciliação de saída).
func LogsDoAlimento(alimentoID uint) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := database.DB.
		Where("alimento_id = ?", alimentoID).
		Order("timestamp ASC, id ASC").
		Find(&logs).Error
	return logs, err
}
