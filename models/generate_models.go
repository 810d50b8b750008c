package models

import (
	"fmt"
	"log"
	"os"
	"reflect"
	"strings"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

/*
Column Mismatch Report Usage:

This file contains functionality to generate a report of database columns that aren't
accounted for as variables in the corresponding Go model structs.

To generate the report run `portfolio generate --report-only` against a postgres
database (DB_TYPE=supa or DB_TYPE=postgres).

Example output:
=== COLUMN MISMATCH REPORT ===
--- Table: projects ---
Found 1 columns not accounted for in model:
  - image

=== SUMMARY ===
Total mismatched columns across all tables: 1
*/

// tableModels maps each table to the struct persisted in it.
var tableModels = map[string]interface{}{
	"projects":             Project{},
	"project_technologies": ProjectTechnology{},
	"cache_entries":        CacheEntry{},
}

// Migrate creates or updates every table used by the app.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Project{}, &ProjectTechnology{}, &CacheEntry{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// GenerateModels migrates the schema, prints the column report and writes
// typed query helpers to outPath.
func GenerateModels(db *gorm.DB, outPath string) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             0,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(Project{}, ProjectTechnology{}, CacheEntry{})

	fmt.Println("Migrating models...")
	migrateDB := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
		Logger:                 newLogger,
	})
	if err := Migrate(migrateDB); err != nil {
		return err
	}
	fmt.Println("Database migration completed successfully!")

	if db.Dialector.Name() == "postgres" {
		GenerateColumnMismatchReport(db)
	}

	g.Execute()
	fmt.Println("Model generation complete!")
	return nil
}

// GenerateColumnMismatchReport generates a report of database columns that aren't accounted for in Go models
func GenerateColumnMismatchReport(db *gorm.DB) int {
	fmt.Println("=== COLUMN MISMATCH REPORT ===")

	totalMismatches := 0
	for tableName, modelStruct := range tableModels {
		fmt.Printf("\n--- Table: %s ---\n", tableName)

		dbColumns, err := getTableColumns(db, tableName)
		if err != nil {
			if strings.Contains(err.Error(), "does not exist") {
				fmt.Printf("Table does not exist yet (will be created during migration)\n")
			} else {
				fmt.Printf("Error getting columns for table %s: %v\n", tableName, err)
			}
			continue
		}

		mismatches := findColumnMismatches(dbColumns, getModelFields(db, modelStruct))
		if len(mismatches) > 0 {
			fmt.Printf("Found %d columns not accounted for in model:\n", len(mismatches))
			for _, col := range mismatches {
				fmt.Printf("  - %s\n", col)
			}
			totalMismatches += len(mismatches)
		} else {
			fmt.Println("All columns are accounted for in the model.")
		}
	}

	fmt.Printf("\n=== SUMMARY ===\n")
	fmt.Printf("Total mismatched columns across all tables: %d\n", totalMismatches)
	return totalMismatches
}

// getTableColumns retrieves column names from a postgres table
func getTableColumns(db *gorm.DB, tableName string) ([]string, error) {
	var columns []string
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = ?
		AND table_schema = CURRENT_SCHEMA()
		ORDER BY ordinal_position
	`
	if err := db.Raw(query, tableName).Scan(&columns).Error; err != nil {
		return nil, fmt.Errorf("error querying columns for table %s: %w", tableName, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s does not exist", tableName)
	}
	return columns, nil
}

// getModelFields lists the column names gorm maps for a model, skipping
// fields tagged `gorm:"-"` and relations.
func getModelFields(db *gorm.DB, model interface{}) []string {
	var fields []string
	t := reflect.TypeOf(model)
	namer := db.NamingStrategy

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			continue
		}

		gormTag := field.Tag.Get("gorm")
		if gormTag == "-" || strings.Contains(gormTag, "foreignKey:") {
			continue
		}
		if columnName := extractColumnNameFromGormTag(gormTag); columnName != "" {
			fields = append(fields, columnName)
			continue
		}
		fields = append(fields, namer.ColumnName("", field.Name))
	}

	return fields
}

// extractColumnNameFromGormTag extracts the column name from a GORM tag
func extractColumnNameFromGormTag(gormTag string) string {
	for _, part := range strings.Split(gormTag, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "column:") {
			return strings.TrimPrefix(part, "column:")
		}
	}
	return ""
}

// findColumnMismatches finds columns that exist in the database but not in the model
func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		modelFieldSet[field] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !modelFieldSet[col] {
			mismatches = append(mismatches, col)
		}
	}
	return mismatches
}
