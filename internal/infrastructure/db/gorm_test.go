package db

import (
	"errors"
	"testing"

	"crediasesor-backoffice/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm/logger"
)

func TestOpenGormWithDialector_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true)) // fake *sql.DB
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	// Expect exactly one Ping from our code
	mock.ExpectPing()

	// Build a mysql dialector that uses our mocked *sql.DB
	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true, // don't query @@version
	})

	gdb, err := OpenGormWithDialector(dial, logger.Silent)
	if err != nil {
		t.Fatalf("OpenGormWithDialector error: %v", err)
	}
	if gdb == nil {
		t.Fatalf("got nil gorm.DB")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOpenGormWithDialector_PingFails(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectPing().WillReturnError(errors.New("no ping"))

	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})

	gdb, err := OpenGormWithDialector(dial, logger.Silent)
	if err == nil {
		t.Fatalf("expected error, got nil (gdb=%v)", gdb)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOpen_SQLiteInMemory(t *testing.T) {
	cfg := &config.Config{DBDriver: config.DriverSQLite, SQLitePath: ":memory:"}
	gdb, err := Open(cfg, logger.Silent)
	if err != nil {
		t.Fatalf("Open sqlite: %v", err)
	}
	var one int
	if err := gdb.Raw("SELECT 1").Scan(&one).Error; err != nil || one != 1 {
		t.Fatalf("SELECT 1 = %d, err=%v", one, err)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open(&config.Config{DBDriver: "oracle"}, logger.Silent); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestAutoMigrate_SQLite(t *testing.T) {
	gdb, err := OpenSQLite(":memory:", logger.Silent)
	if err != nil {
		t.Fatal(err)
	}
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	for _, table := range []string{"asesor", "Bancos", "Financieras", "Clientes", "Creditos", "Comisions", "Users", "user_permissions", "messages"} {
		if !gdb.Migrator().HasTable(table) {
			t.Fatalf("missing table %s", table)
		}
	}
	if !gdb.Migrator().HasIndex("Comisions", "ux_comisions_asesor_entidad_periodo") {
		t.Fatal("missing commission unique index")
	}
}
