package db

import (
	"crediasesor-backoffice/internal/domain/advisor"
	"crediasesor-backoffice/internal/domain/client"
	"crediasesor-backoffice/internal/domain/commission"
	"crediasesor-backoffice/internal/domain/credit"
	"crediasesor-backoffice/internal/domain/entity"
	"crediasesor-backoffice/internal/domain/message"
	"crediasesor-backoffice/internal/domain/permission"
	"crediasesor-backoffice/internal/domain/user"

	"gorm.io/gorm"
)

// Models lists every persisted type. MySQL gets its schema from migrations;
// SQLite (local runs, tests) is auto-migrated from these.
func Models() []any {
	return []any{
		&advisor.Advisor{},
		&entity.Bank{},
		&entity.Institution{},
		&client.Client{},
		&credit.Credit{},
		&commission.Commission{},
		&user.User{},
		&permission.Grant{},
		&message.Message{},
	}
}

func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(Models()...)
}
