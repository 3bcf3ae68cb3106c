// database/bootstrap.go
package database

import (
	"database/sql"
	"fmt"
	"strings"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenSQLite opens the single-file store. Callers close it with Close when
// the operation is done; nothing keeps a pool around between requests.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return db, nil
}

// Close releases the underlying connection.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

const createFindingsSQL = `
CREATE TABLE IF NOT EXISTS findings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    latitude REAL,
    longitude REAL,
    classification TEXT,
    depth_mm REAL DEFAULT 0,
    length_mm REAL DEFAULT 0,
    support_material TEXT DEFAULT '',
    has_recognizable_patterns BOOLEAN DEFAULT 0,
    pattern_count INTEGER DEFAULT 0,
    has_straight_lines BOOLEAN DEFAULT 0,
    notes TEXT DEFAULT '',
    created_at DATETIME
);
`

// supersetColumns are the columns some older table shapes lack, with the
// definition used to add them. Existing rows pick up the default.
var supersetColumns = []struct{ name, def string }{
	{"depth_mm", "REAL DEFAULT 0"},
	{"length_mm", "REAL DEFAULT 0"},
	{"support_material", "TEXT DEFAULT ''"},
	{"has_recognizable_patterns", "BOOLEAN DEFAULT 0"},
	{"pattern_count", "INTEGER DEFAULT 0"},
	{"has_straight_lines", "BOOLEAN DEFAULT 0"},
	{"notes", "TEXT DEFAULT ''"},
	{"created_at", "DATETIME"},
}

// EnsureSchema creates the findings table if it does not exist and fills in
// any superset column missing from an older table. It never drops a table or
// rewrites a row, so it is safe on every start.
func EnsureSchema(db *gorm.DB) error {
	if err := db.Exec(createFindingsSQL).Error; err != nil {
		return fmt.Errorf("create findings: %w", err)
	}
	if err := addMissingColumns(db); err != nil {
		return fmt.Errorf("migrate findings: %w", err)
	}
	if err := importLegacyRegistros(db); err != nil {
		return fmt.Errorf("import registros: %w", err)
	}
	return nil
}

type colInfo struct {
	Cid       int
	Name      string
	Type      string
	NotNull   int
	DfltValue sql.NullString
	Pk        int
}

func tableColumns(db *gorm.DB, table string) (map[string]bool, error) {
	var cols []colInfo
	if err := db.Raw(`PRAGMA table_info(` + table + `)`).Scan(&cols).Error; err != nil {
		return nil, fmt.Errorf("table_info %s: %w", table, err)
	}
	out := map[string]bool{}
	for _, c := range cols {
		out[strings.ToLower(c.Name)] = true
	}
	return out, nil
}

func addMissingColumns(db *gorm.DB) error {
	have, err := tableColumns(db, "findings")
	if err != nil {
		return err
	}
	for _, c := range supersetColumns {
		if have[c.name] {
			continue
		}
		if err := db.Exec(fmt.Sprintf(`ALTER TABLE findings ADD COLUMN %s %s`, c.name, c.def)).Error; err != nil {
			return fmt.Errorf("add column %s: %w", c.name, err)
		}
	}
	return nil
}

// legacyClassification maps the original Spanish labels onto the English set.
const legacyClassification = `CASE clasificacion
    WHEN 'Petroglifo' THEN 'Petroglyph'
    WHEN 'Hacha' THEN 'Axe'
    WHEN 'Punta de proyectil' THEN 'Projectile point'
    WHEN 'Utensilio de piedra' THEN 'Stone tool'
    WHEN 'Otro' THEN 'Other'
    ELSE 'Other' END`

// importLegacyRegistros copies rows from the original `registros` table into
// findings, once, while findings is still empty. registros is left as is.
func importLegacyRegistros(db *gorm.DB) error {
	// does table exist?
	var tbl string
	if err := db.Raw(`SELECT name FROM sqlite_master WHERE type='table' AND name='registros'`).Scan(&tbl).Error; err != nil {
		return fmt.Errorf("check table exist: %w", err)
	}
	if tbl == "" {
		return nil
	}
	var n int64
	if err := db.Raw(`SELECT COUNT(*) FROM findings`).Scan(&n).Error; err != nil {
		return fmt.Errorf("count findings: %w", err)
	}
	if n > 0 {
		return nil
	}

	old, err := tableColumns(db, "registros")
	if err != nil {
		return err
	}
	sel := func(name, def string) string {
		if old[name] {
			return fmt.Sprintf("COALESCE(%s, %s)", name, def)
		}
		return def
	}
	nullable := func(name string) string {
		if old[name] {
			return name
		}
		return "NULL"
	}
	class := "'Other'"
	order := ""
	if old["id"] {
		order = " ORDER BY id"
	}
	if old["clasificacion"] {
		class = legacyClassification
	}

	copySQL := fmt.Sprintf(`
INSERT INTO findings (latitude, longitude, classification, depth_mm, length_mm, support_material,
    has_recognizable_patterns, pattern_count, has_straight_lines, notes, created_at)
SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, CURRENT_TIMESTAMP FROM registros%s;
`,
		nullable("latitud"),
		nullable("longitud"),
		class,
		sel("profundidad", "0"),
		sel("longitud_grabado", "0"),
		sel("soporte", "''"),
		sel("presencia_patrones", "0"),
		sel("num_patrones", "0"),
		sel("presencia_lineas", "0"),
		sel("observaciones", "''"),
		order,
	)

	return db.Transaction(func(tx *gorm.DB) error {
		return tx.Exec(copySQL).Error
	})
}
