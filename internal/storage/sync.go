package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Dump is every table as a list of rows, each row a map from column name to value. NULL
// columns and empty tables are left out.
type Dump map[string][]map[string]any

// Export reads all tables into a Dump.
func (s *Storage) Export() (Dump, error) {
	dump := make(Dump)
	for _, table := range tables {
		rows, err := s.DB.Query(fmt.Sprintf("SELECT * FROM %s;", table))
		if err != nil {
			return nil, fmt.Errorf("querying table %s: %w", table, err)
		}

		cols, err := rows.Columns()
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("getting columns for table %s: %w", table, err)
		}

		var tableData []map[string]any
		for rows.Next() {
			values := make([]any, len(cols))
			valuePtrs := make([]any, len(cols))
			for i := range values {
				valuePtrs[i] = &values[i]
			}
			if err := rows.Scan(valuePtrs...); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning row in table %s: %w", table, err)
			}

			rowMap := make(map[string]any, len(cols))
			for i, col := range cols {
				switch val := values[i].(type) {
				case nil:
				case []byte:
					rowMap[col] = string(val)
				default:
					rowMap[col] = val
				}
			}
			tableData = append(tableData, rowMap)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterating table %s: %w", table, err)
		}
		if len(tableData) > 0 {
			dump[table] = tableData
		}
	}
	return dump, nil
}

// Import replaces the whole database with dump. Unknown tables are rejected.
func (s *Storage) Import(dump Dump) error {
	for table := range dump {
		if !slices.Contains(tables, table) {
			return fmt.Errorf("Unknown table %q in dump", table)
		}
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("Begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s;", tables[i])); err != nil {
			return fmt.Errorf("Clearing table %s: %w", tables[i], err)
		}
	}

	for _, table := range tables {
		for _, row := range dump[table] {
			cols := make([]string, 0, len(row))
			for col := range row {
				cols = append(cols, col)
			}
			slices.Sort(cols)

			placeholders := make([]string, len(cols))
			values := make([]any, len(cols))
			for i, col := range cols {
				if !validKey.MatchString(col) {
					return fmt.Errorf("Invalid column %q in table %s", col, table)
				}
				placeholders[i] = "?"
				values[i] = row[col]
			}
			query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);", table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
			if _, err := tx.Exec(query, values...); err != nil {
				return fmt.Errorf("Inserting into table %s: %w", table, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Committing transaction: %w", err)
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// ExportToFile writes the dump as YAML when path ends in .yaml or .yml, TOML otherwise.
func (s *Storage) ExportToFile(path string) error {
	dump, err := s.Export()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if isYAML(path) {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(dump); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		enc.Close()
	} else if err := toml.NewEncoder(&buf).Encode(dump); err != nil {
		return fmt.Errorf("encoding TOML: %w", err)
	}

	path, err = filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	return nil
}

// ImportFromFile reads a dump written by ExportToFile and imports it.
func (s *Storage) ImportFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Reading file %s: %w", path, err)
	}

	var dump Dump
	if isYAML(path) {
		err = yaml.Unmarshal(data, &dump)
	} else {
		_, err = toml.Decode(string(data), &dump)
	}
	if err != nil {
		return fmt.Errorf("Decoding %s: %w", path, err)
	}
	return s.Import(dump)
}
