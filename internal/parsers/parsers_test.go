package parsers

import (
	"os"
	"path/filepath"
	"testing"

	"finance-analyzer/internal/models"
	"finance-analyzer/pkg/errors"

	"github.com/shopspring/decimal"
)

// Helper function to create a temporary CSV file
func createTempCSVFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "statement.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestResolveColumns(t *testing.T) {
	tests := []struct {
		name       string
		headers    []string
		wantErr    bool
		wantAmount bool
	}{
		{
			name:       "Amount schema",
			headers:    []string{"Date", "Description", "Amount"},
			wantAmount: true,
		},
		{
			name:    "Debit credit schema",
			headers: []string{"Date", "Description", "Debit", "Credit"},
		},
		{
			name:       "Aliased headers",
			headers:    []string{"Posted Date", "Merchant", "Transaction Amount"},
			wantAmount: true,
		},
		{
			name:    "Withdrawal deposit aliases",
			headers: []string{"Transaction Date", "Details", "Withdrawal", "Deposit"},
		},
		{
			name:       "Case insensitive with whitespace",
			headers:    []string{"  DATE  ", " DESCRIPTION ", " AMOUNT "},
			wantAmount: true,
		},
		{
			name:    "Missing date",
			headers: []string{"Description", "Amount"},
			wantErr: true,
		},
		{
			name:    "Missing description",
			headers: []string{"Date", "Amount"},
			wantErr: true,
		},
		{
			name:    "Missing amount and debit/credit",
			headers: []string{"Date", "Description"},
			wantErr: true,
		},
		{
			name:    "Debit without credit",
			headers: []string{"Date", "Description", "Debit"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := ResolveColumns("test.csv", tt.headers)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveColumns() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if _, ok := errors.AsAnalyzerError(err); !ok {
					t.Error("Expected an AnalyzerError for schema failures")
				}
				return
			}
			if schema.HasAmountColumn() != tt.wantAmount {
				t.Errorf("HasAmountColumn() = %v, want %v", schema.HasAmountColumn(), tt.wantAmount)
			}
		})
	}
}

func TestResolveColumns_FirstMatchWins(t *testing.T) {
	// Two headers both alias the description role; the first header wins.
	headers := []string{"Date", "Name", "Merchant", "Amount"}
	schema, err := ResolveColumns("test.csv", headers)
	if err != nil {
		t.Fatalf("ResolveColumns() error = %v", err)
	}
	if schema.Description != 1 {
		t.Errorf("Expected first matching header (index 1), got %d", schema.Description)
	}
}

func TestParseStatement_AmountSchema(t *testing.T) {
	path := createTempCSVFile(t,
		"Date,Description,Amount\n"+
			"2026-01-03,Payroll,2500\n"+
			"2026-01-04,Whole Foods,-91.22\n")

	parser := NewStatementParser(nil)
	transactions, stats, err := parser.ParseStatement(path)
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}

	if len(transactions) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(transactions))
	}
	if stats.RecordsParsed != 2 {
		t.Errorf("Expected 2 records parsed, got %d", stats.RecordsParsed)
	}
	if !transactions[0].Amount.Equal(decimal.NewFromInt(2500)) {
		t.Errorf("Expected 2500, got %s", transactions[0].Amount)
	}
	if !transactions[1].Amount.Equal(decimal.RequireFromString("-91.22")) {
		t.Errorf("Expected -91.22, got %s", transactions[1].Amount)
	}
	if transactions[0].Category != models.CategoryUncategorized {
		t.Errorf("Expected uncategorized sentinel, got %q", transactions[0].Category)
	}
}

func TestParseStatement_DebitCreditSchema(t *testing.T) {
	path := createTempCSVFile(t,
		"Date,Description,Debit,Credit\n"+
			"01/03/2026,Payroll,0,2500\n"+
			"01/04/2026,Coffee,5.50,0\n")

	parser := NewStatementParser(nil)
	transactions, _, err := parser.ParseStatement(path)
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}

	if len(transactions) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(transactions))
	}
	if !transactions[0].Amount.Equal(decimal.NewFromInt(2500)) {
		t.Errorf("Expected 2500, got %s", transactions[0].Amount)
	}
	if !transactions[1].Amount.Equal(decimal.RequireFromString("-5.5")) {
		t.Errorf("Expected -5.5, got %s", transactions[1].Amount)
	}
}

func TestParseStatement_MissingDebitDefaultsToZero(t *testing.T) {
	path := createTempCSVFile(t,
		"Date,Description,Debit,Credit\n"+
			"2026-01-03,Refund,,125.00\n")

	parser := NewStatementParser(nil)
	transactions, _, err := parser.ParseStatement(path)
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}
	if !transactions[0].Amount.Equal(decimal.NewFromInt(125)) {
		t.Errorf("Expected 125, got %s", transactions[0].Amount)
	}
}

func TestParseStatement_BOMHeader(t *testing.T) {
	path := createTempCSVFile(t,
		"\ufeffDate,Description,Amount\n"+
			"2026-01-03,Payroll,2500\n")

	parser := NewStatementParser(nil)
	transactions, _, err := parser.ParseStatement(path)
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(transactions))
	}
}

func TestParseStatement_SkipsEmptyRows(t *testing.T) {
	path := createTempCSVFile(t,
		"Date,Description,Amount\n"+
			"2026-01-03,Payroll,2500\n"+
			",,\n"+
			"2026-01-04,Coffee,-5.50\n")

	parser := NewStatementParser(nil)
	transactions, _, err := parser.ParseStatement(path)
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}
	if len(transactions) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(transactions))
	}
}

func TestParseStatement_BadDateAbortsRun(t *testing.T) {
	path := createTempCSVFile(t,
		"Date,Description,Amount\n"+
			"2026-01-03,Payroll,2500\n"+
			"not-a-date,Coffee,-5.50\n"+
			"2026-01-05,Groceries,-45.00\n")

	parser := NewStatementParser(nil)
	transactions, _, err := parser.ParseStatement(path)
	if err == nil {
		t.Fatal("Expected error for unparseable date")
	}
	if transactions != nil {
		t.Error("Expected no transactions on failure")
	}

	analyzerErr, ok := errors.AsAnalyzerError(err)
	if !ok {
		t.Fatal("Expected an AnalyzerError")
	}
	if analyzerErr.Category != errors.CategoryParse {
		t.Errorf("Expected parse category, got %s", analyzerErr.Category)
	}
	if analyzerErr.Context["line"] != 3 {
		t.Errorf("Expected failure at line 3, got %v", analyzerErr.Context["line"])
	}
}

func TestParseStatement_BadAmountAbortsRun(t *testing.T) {
	path := createTempCSVFile(t,
		"Date,Description,Amount\n"+
			"2026-01-03,Payroll,not-money\n")

	parser := NewStatementParser(nil)
	_, _, err := parser.ParseStatement(path)
	if err == nil {
		t.Fatal("Expected error for unparseable amount")
	}
}

func TestParseStatement_MissingColumnAbortsBeforeRows(t *testing.T) {
	path := createTempCSVFile(t,
		"Description,Amount\n"+
			"Payroll,2500\n")

	parser := NewStatementParser(nil)
	_, stats, err := parser.ParseStatement(path)
	if err == nil {
		t.Fatal("Expected schema error for missing date column")
	}
	if stats.RecordsParsed != 0 {
		t.Errorf("Expected no rows parsed before schema failure, got %d", stats.RecordsParsed)
	}
}

func TestParseStatement_FileNotFound(t *testing.T) {
	parser := NewStatementParser(nil)
	_, _, err := parser.ParseStatement("/nonexistent/statement.csv")
	if err == nil {
		t.Fatal("Expected error for missing file")
	}

	analyzerErr, ok := errors.AsAnalyzerError(err)
	if !ok {
		t.Fatal("Expected an AnalyzerError")
	}
	if analyzerErr.Category != errors.CategoryFile {
		t.Errorf("Expected file category, got %s", analyzerErr.Category)
	}
}

func TestParseStatement_DescriptionTrimmed(t *testing.T) {
	path := createTempCSVFile(t,
		"Date,Description,Amount\n"+
			"2026-01-03,  Payroll ACME  ,2500\n")

	parser := NewStatementParser(nil)
	transactions, _, err := parser.ParseStatement(path)
	if err != nil {
		t.Fatalf("ParseStatement() error = %v", err)
	}
	if transactions[0].Description != "Payroll ACME" {
		t.Errorf("Expected trimmed description, got %q", transactions[0].Description)
	}
}
