package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RosterColumns maps the roster fields onto the header names of the
// institution's export format.
type RosterColumns struct {
	RegistrationNumber string `yaml:"registration_number"`
	FirstName          string `yaml:"first_name"`
	LastName           string `yaml:"last_name"`
	RetryFlag          string `yaml:"retry_flag"`
}

// DefaultRosterColumns returns the header names of the exam office export.
func DefaultRosterColumns() RosterColumns {
	return RosterColumns{
		RegistrationNumber: "REGISTRATION_NUMBER",
		FirstName:          "FIRST_NAME_OF_STUDENT",
		LastName:           "FAMILY_NAME_OF_STUDENT",
		RetryFlag:          "GUEL_U_AKTUELLE_ANTRITTE_SPO",
	}
}

// LoadRosterColumns reads a YAML mapping. Keys left out keep their default.
func LoadRosterColumns(path string) (RosterColumns, error) {
	cols := DefaultRosterColumns()

	data, err := os.ReadFile(path)
	if err != nil {
		return cols, fmt.Errorf("read column mapping: %w", err)
	}
	if err := yaml.Unmarshal(data, &cols); err != nil {
		return cols, fmt.Errorf("parse column mapping %s: %w", path, err)
	}
	return cols, nil
}

// Validate rejects blank or duplicated column names.
func (rc RosterColumns) Validate() error {
	named := []struct {
		field string
		value string
	}{
		{"registration_number", rc.RegistrationNumber},
		{"first_name", rc.FirstName},
		{"last_name", rc.LastName},
		{"retry_flag", rc.RetryFlag},
	}

	seen := make(map[string]string, len(named))
	for _, n := range named {
		v := strings.TrimSpace(n.value)
		if v == "" {
			return fmt.Errorf("roster column %s must not be empty", n.field)
		}
		if prev, ok := seen[v]; ok {
			return fmt.Errorf("roster columns %s and %s both use %q", prev, n.field, v)
		}
		seen[v] = n.field
	}
	return nil
}
