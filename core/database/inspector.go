package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo matches the output of SHOW COLUMNS.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string // Pointer because NULL default is possible
	Extra   string
}

// GetTableColumns retrieves the column definitions for a given table.
// Column names keep their declared case; types are lower-cased.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	if db.Dialector.Name() == DriverSQLite {
		// SQLite uses PRAGMA table_info
		type SQLiteColumn struct {
			Cid       int
			Name      string
			Type      string
			Notnull   int
			DfltValue *string
			Pk        int
		}
		var sqliteCols []SQLiteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&sqliteCols).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range sqliteCols {
			info := ColumnInfo{
				Field:   col.Name,
				Type:    strings.ToLower(col.Type),
				Default: col.DfltValue,
			}
			if col.Pk > 0 {
				info.Key = "PRI"
			}
			if col.Notnull == 0 {
				info.Null = "YES"
			} else {
				info.Null = "NO"
			}
			columns = append(columns, info)
		}
		return columns, nil
	}

	err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
	}
	return columns, nil
}

// IndexColumns indexes columns by their exact name.
func IndexColumns(columns []ColumnInfo) map[string]ColumnInfo {
	index := make(map[string]ColumnInfo, len(columns))
	for _, col := range columns {
		index[col.Field] = col
	}
	return index
}

// IsTemporal reports whether a column type stores dates or instants.
func (c ColumnInfo) IsTemporal() bool {
	return strings.Contains(c.Type, "date") || strings.Contains(c.Type, "time")
}
