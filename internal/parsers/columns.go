package parsers

import (
	"strings"

	"finance-analyzer/pkg/errors"
)

// Role identifies the canonical meaning of a CSV column.
type Role string

const (
	RoleDate        Role = "date"
	RoleDescription Role = "description"
	RoleAmount      Role = "amount"
	RoleDebit       Role = "debit"
	RoleCredit      Role = "credit"
)

// Alias tables are explicit ordered lists so the first-match-wins tie-break
// stays auditable. Matching is case-insensitive on trimmed headers.
var roleAliases = map[Role][]string{
	RoleDate:        {"date", "transaction date", "posted date"},
	RoleDescription: {"description", "merchant", "name", "details"},
	RoleAmount:      {"amount", "transaction amount"},
	RoleDebit:       {"debit", "withdrawal"},
	RoleCredit:      {"credit", "deposit"},
}

// ColumnSchema maps canonical roles to column indices in one CSV file.
// An index of -1 means the file has no column for that role.
type ColumnSchema struct {
	Date        int
	Description int
	Amount      int
	Debit       int
	Credit      int
}

// HasAmountColumn reports whether the file uses the single signed-amount
// convention rather than separate debit/credit columns.
func (s *ColumnSchema) HasAmountColumn() bool {
	return s.Amount >= 0
}

// cleanHeader normalizes a header cell for alias comparison. The BOM check
// handles exports saved as UTF-8 with signature.
func cleanHeader(value string) string {
	value = strings.TrimPrefix(value, "\ufeff")
	return strings.ToLower(strings.TrimSpace(value))
}

// findColumn returns the index of the first header matching one of the
// role's aliases, or -1 when no header matches.
func findColumn(headers []string, role Role) int {
	aliases := roleAliases[role]
	for i, header := range headers {
		cleaned := cleanHeader(header)
		for _, alias := range aliases {
			if cleaned == alias {
				return i
			}
		}
	}
	return -1
}

// ResolveColumns identifies which header corresponds to each canonical role.
// Date and description are always required. For amounts, a file may use
// either a single signed-amount column or both debit and credit columns;
// the two schemas are mutually acceptable, never both required.
func ResolveColumns(filePath string, headers []string) (*ColumnSchema, error) {
	schema := &ColumnSchema{
		Date:        findColumn(headers, RoleDate),
		Description: findColumn(headers, RoleDescription),
		Amount:      findColumn(headers, RoleAmount),
		Debit:       findColumn(headers, RoleDebit),
		Credit:      findColumn(headers, RoleCredit),
	}

	if schema.Date < 0 {
		return nil, errors.ParseError(
			errors.CodeMissingColumn, filePath, 1, string(RoleDate), "", nil,
		).WithSuggestion("Recognized date headers: date, transaction date, posted date")
	}

	if schema.Description < 0 {
		return nil, errors.ParseError(
			errors.CodeMissingColumn, filePath, 1, string(RoleDescription), "", nil,
		).WithSuggestion("Recognized description headers: description, merchant, name, details")
	}

	if !schema.HasAmountColumn() && (schema.Debit < 0 || schema.Credit < 0) {
		return nil, errors.ParseError(
			errors.CodeMissingColumn, filePath, 1, "amount or debit/credit", "", nil,
		).WithSuggestion("Provide either an amount column or both debit and credit columns")
	}

	return schema, nil
}
