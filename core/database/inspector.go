package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo describes one table column.
type ColumnInfo struct {
	Field string
	Type  string
	Null  string
	Key   string
}

// GetTableColumns retrieves the column definitions for a given table. Field
// names and types are lower-cased so they compare across dialects.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo

	switch db.Dialector.Name() {
	case "sqlite":
		type sqliteColumn struct {
			Cid     int
			Name    string
			Type    string
			Notnull int
			Pk      int
		}
		var rows []sqliteColumn
		if err := db.Raw("SELECT cid, name, type, \"notnull\", pk FROM pragma_table_info(?)", tableName).Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range rows {
			info := ColumnInfo{Field: col.Name, Type: col.Type, Null: "YES"}
			if col.Notnull == 1 {
				info.Null = "NO"
			}
			if col.Pk > 0 {
				info.Key = "PRI"
			}
			columns = append(columns, info)
		}
	case "postgres":
		err := db.Raw(`SELECT column_name AS field, data_type AS type, is_nullable AS "null", '' AS key
			FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = ?
			ORDER BY ordinal_position`, tableName).Scan(&columns).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
	default:
		err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", strings.ReplaceAll(tableName, "`", ""))).Scan(&columns).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
	}

	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}
