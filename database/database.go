package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"productconsole/logger"
)

// Supported driver names.
const (
	TypeSQLite = "sqlite"
	TypeMySQL  = "mysql"
)

// Open 데이터베이스 초기화
// dbType: "sqlite" 또는 "mysql"
// dsn: SQLite 파일 경로 또는 MySQL DSN
func Open(dbType, dsn string) (*sql.DB, error) {
	if dbType == "" {
		dbType = TypeSQLite
	}
	if dsn == "" && dbType == TypeSQLite {
		dsn = "./catalog.db"
	}
	if dbType != TypeSQLite && dbType != TypeMySQL {
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	db, err := sql.Open(dbType, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if dbType == TypeSQLite {
		// SQLite는 단일 writer; in-memory DSNs also need one shared connection.
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	if err := createTables(db, dbType); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.WithFields(map[string]interface{}{"type": dbType}).Info("Database initialized successfully")
	return db, nil
}

// createTables 테이블 생성
func createTables(db *sql.DB, dbType string) error {
	var statements []string
	switch dbType {
	case TypeMySQL:
		statements = []string{
			`CREATE TABLE IF NOT EXISTS products (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				type VARCHAR(50) NOT NULL,
				description TEXT,
				api_endpoint VARCHAR(1024) NOT NULL DEFAULT '',
				status VARCHAR(50) NOT NULL DEFAULT 'DRAFT',
				pricing_model VARCHAR(50) NOT NULL,
				base_price DECIMAL(18,4) NOT NULL DEFAULT 0,
				documentation LONGTEXT,
				created_at VARCHAR(50) NOT NULL DEFAULT '',
				updated_at VARCHAR(50) NOT NULL DEFAULT '',
				INDEX idx_products_status (status)
			) CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci`,
			`CREATE TABLE IF NOT EXISTS product_files (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				product_id BIGINT NOT NULL,
				file_type VARCHAR(50) NOT NULL,
				file_name VARCHAR(255) NOT NULL,
				stored_name VARCHAR(255) NOT NULL,
				content_type VARCHAR(255) NOT NULL,
				size BIGINT NOT NULL DEFAULT 0,
				checksum VARCHAR(64) NOT NULL DEFAULT '',
				storage_path VARCHAR(1024) NOT NULL,
				created_at VARCHAR(50) NOT NULL DEFAULT '',
				FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE,
				INDEX idx_product_files_slot (product_id, file_type)
			) CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci`,
		}
	default:
		statements = []string{
			`CREATE TABLE IF NOT EXISTS products (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				type TEXT NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				api_endpoint TEXT NOT NULL DEFAULT '',
				status TEXT NOT NULL DEFAULT 'DRAFT',
				pricing_model TEXT NOT NULL,
				base_price TEXT NOT NULL DEFAULT '0',
				documentation TEXT NOT NULL DEFAULT '',
				created_at TEXT NOT NULL DEFAULT '',
				updated_at TEXT NOT NULL DEFAULT ''
			)`,
			`CREATE TABLE IF NOT EXISTS product_files (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
				file_type TEXT NOT NULL,
				file_name TEXT NOT NULL,
				stored_name TEXT NOT NULL,
				content_type TEXT NOT NULL,
				size INTEGER NOT NULL DEFAULT 0,
				checksum TEXT NOT NULL DEFAULT '',
				storage_path TEXT NOT NULL,
				created_at TEXT NOT NULL DEFAULT ''
			)`,
			`CREATE INDEX IF NOT EXISTS idx_products_status ON products(status)`,
			`CREATE INDEX IF NOT EXISTS idx_product_files_slot ON product_files(product_id, file_type)`,
		}
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute SQL %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return strings.TrimSpace(stmt[:i])
	}
	return stmt
}
