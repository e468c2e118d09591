package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const menuSchema = `
CREATE TABLE categories (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	image_url TEXT,
	display_order INTEGER NOT NULL DEFAULT 0,
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE products (
	id TEXT PRIMARY KEY,
	category_id TEXT,
	name TEXT NOT NULL,
	description TEXT,
	base_price NUMERIC NOT NULL,
	image_url TEXT,
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE option_groups (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	is_required INTEGER NOT NULL DEFAULT 0,
	allow_multiple INTEGER NOT NULL DEFAULT 0,
	display_order INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE options (
	id TEXT PRIMARY KEY,
	group_id TEXT NOT NULL,
	name TEXT NOT NULL,
	additional_price NUMERIC NOT NULL,
	display_order INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE product_option_groups (
	product_id TEXT NOT NULL,
	option_group_id TEXT NOT NULL,
	PRIMARY KEY (product_id, option_group_id)
);
`

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	for _, stmt := range splitStatements(menuSchema) {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func splitStatements(schema string) []string {
	var stmts []string
	var current string
	for _, r := range schema {
		current += string(r)
		if r == ';' {
			stmts = append(stmts, current)
			current = ""
		}
	}
	return stmts
}
