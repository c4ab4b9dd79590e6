package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
	AuditActionSaida  AuditAction = "SAIDA"
)

// AuditLog: histórico append-only de todas as mutações de alimentos.
// Uma vez gravado, o registro nunca é alterado.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Pode ser null se o alimento foi deletado depois
	AlimentoID *uint `gorm:"index" json:"alimentoId"`

	// Código e nome guardados de forma denormalizada, para exibição
	// mesmo após a exclusão do alimento
	AlimentoCodigo *string `gorm:"size:50" json:"alimentoCodigo"`
	AlimentoNome   *string `gorm:"size:150" json:"alimentoNome"`

	Action AuditAction `gorm:"size:20;not null;index" json:"action"`

	UserID   string `gorm:"size:36;not null;index" json:"userId"`
	UserName string `gorm:"size:100;not null" json:"userName"`

	// Payload livre, interpretado conforme a action (JSON)
	Changes string `gorm:"type:jsonb" json:"changes"`

	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}
