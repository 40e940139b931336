package store

import (
	"strings"

	"github.com/trackline-dev/trackline/internal/apperrors"
)

// Legacy field names normalize to column names by replacing runs of spaces
// with underscores and lowercasing. The result is only ever used after it
// clears the per-table allow-list below; nothing client-supplied reaches the
// SQL text unchecked.
func normalizeFieldName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "_"))
}

var projectColumns = map[string]bool{
	"project_name":        true,
	"project_status":      true,
	"start_date":          true,
	"end_date":            true,
	"project_value":       true,
	"project_description": true,
}

var taskColumns = map[string]bool{
	"task_name":   true,
	"description": true,
	"status":      true,
	"due_date":    true,
}

// mapFields turns a sparse legacy field-name map into a column assignment
// map, rejecting any name that does not land on an allowed column.
func mapFields(fields map[string]interface{}, allowed map[string]bool) (map[string]interface{}, error) {
	if len(fields) == 0 {
		return nil, apperrors.Validationf("no fields provided to update")
	}

	assignments := make(map[string]interface{}, len(fields))

	for name, value := range fields {
		column := normalizeFieldName(name)

		if !allowed[column] {
			return nil, apperrors.Validationf("unknown field %q", name)
		}

		assignments[column] = value
	}

	return assignments, nil
}
