package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/office-master/internal/models"
)

const writeTimeout = 5 * time.Second

// Logger grava eventos na tabela audit_logs.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func entryFor(ev Event) (models.AuditLog, error) {
	entry := models.AuditLog{
		WorkshopID: ev.WorkshopID,
		UserID:     ev.UserID,
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		RequestID:  ev.RequestID,
	}
	if ev.Metadata == nil {
		return entry, nil
	}

	b, err := json.Marshal(ev.Metadata)
	if err != nil {
		return entry, fmt.Errorf("audit metadata for %s: %w", ev.Action, err)
	}
	entry.Metadata = string(b)
	return entry, nil
}

// Log grava o evento mesmo quando o metadata não serializa; o erro volta
// para o dispatcher registrar.
func (l *Logger) Log(ev Event) error {
	entry, metaErr := entryFor(ev)

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := l.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("insert audit log %s: %w", ev.Action, err)
	}
	return metaErr
}
