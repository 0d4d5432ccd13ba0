package parsers

import (
	"context"
	"fmt"
	"io"

	"finance-analyzer/internal/models"
	"finance-analyzer/pkg/errors"
	"finance-analyzer/pkg/logger"

	"github.com/shopspring/decimal"
)

// StatementParser reads one bank export CSV and produces normalized
// transactions. Any row-level failure aborts the whole run.
type StatementParser struct {
	*BaseParser
	logger logger.Logger
}

// NewStatementParser creates a StatementParser with the given configuration
func NewStatementParser(config *ParseConfig) *StatementParser {
	return &StatementParser{
		BaseParser: NewBaseParser(config),
		logger:     logger.GetGlobalLogger().WithComponent("statement_parser"),
	}
}

// ParseStatement parses a CSV file into normalized transactions
func (sp *StatementParser) ParseStatement(filePath string) ([]*models.Transaction, *ParseStats, error) {
	return sp.ParseStatementWithContext(context.Background(), filePath)
}

// ParseStatementWithContext parses a statement with cancellation support
func (sp *StatementParser) ParseStatementWithContext(ctx context.Context, filePath string) ([]*models.Transaction, *ParseStats, error) {
	sp.logger.WithFields(logger.Fields{
		"file_path": filePath,
		"operation": "parse_statement",
	}).Info("Starting statement parsing")

	file, reader, err := sp.OpenFile(filePath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	parseCtx := NewParseContext(ctx)
	stats := &ParseStats{}

	headers, err := sp.ReadRecord(reader, parseCtx)
	if err != nil {
		if err == io.EOF {
			return nil, stats, errors.ValidationError(
				errors.CodeMissingField,
				"file_content",
				"empty",
				nil,
			).WithSuggestion("Ensure the file contains a header row and data rows")
		}
		return nil, stats, errors.ParseError(
			errors.CodeInvalidFormat, filePath, 1, "headers", "", err,
		).WithSuggestion("Check the file format and ensure it's a valid CSV")
	}

	schema, err := ResolveColumns(filePath, headers)
	if err != nil {
		sp.logger.WithError(err).WithFields(logger.Fields{
			"file_path": filePath,
			"headers":   headers,
		}).Error("Failed to resolve columns")
		return nil, stats, err
	}

	sp.logger.WithFields(logger.Fields{
		"headers":       headers,
		"amount_schema": schema.HasAmountColumn(),
	}).Debug("Resolved column schema")

	progress := logger.NewProgressTracker("parse_statement", sp.logger)
	var transactions []*models.Transaction

	for {
		record, err := sp.ReadRecord(reader, parseCtx)
		if err != nil {
			if err == io.EOF {
				break
			}
			if analyzerErr, ok := errors.AsAnalyzerError(err); ok {
				return nil, stats, analyzerErr
			}
			return nil, stats, errors.ParseError(
				errors.CodeInvalidFormat, filePath, parseCtx.LineNumber, "record", "", err,
			)
		}

		stats.RecordsParsed++

		transaction, err := sp.parseRecord(record, schema, parseCtx, filePath)
		if err != nil {
			// Fail fast: aggregates must never be computed over a
			// silently-incomplete transaction set.
			sp.logger.WithError(err).WithField("line_number", parseCtx.LineNumber).Error("Row parsing failed, aborting run")
			return nil, stats, err
		}

		transactions = append(transactions, transaction)
		progress.Increment()
	}

	stats.TotalLines = parseCtx.LineNumber
	progress.Complete()

	sp.logger.WithFields(logger.Fields{
		"file_path":      filePath,
		"total_lines":    stats.TotalLines,
		"records_parsed": stats.RecordsParsed,
	}).Info("Statement parsing completed")

	return transactions, stats, nil
}

// field returns the trimmed cell for a resolved column index, or "" when the
// row is shorter than the header. A short row behaves exactly like an empty
// cell so missing debit/credit values default to zero.
func field(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}
	return record[index]
}

// parseRecord converts one CSV row into a normalized transaction
func (sp *StatementParser) parseRecord(record []string, schema *ColumnSchema, parseCtx *ParseContext, filePath string) (*models.Transaction, error) {
	dateStr := field(record, schema.Date)
	date, err := models.ParseDate(dateStr)
	if err != nil {
		return nil, errors.ParseError(
			errors.CodeInvalidData,
			filePath,
			parseCtx.LineNumber,
			string(RoleDate),
			dateStr,
			err,
		).WithSuggestion("Use YYYY-MM-DD, MM/DD/YYYY, or MM/DD/YY dates")
	}

	description := field(record, schema.Description)

	amount, err := sp.parseAmount(record, schema)
	if err != nil {
		return nil, errors.ParseError(
			errors.CodeInvalidData,
			filePath,
			parseCtx.LineNumber,
			string(RoleAmount),
			fmt.Sprintf("%v", record),
			err,
		).WithSuggestion("Check the amount format - use decimal numbers like '123.45'")
	}

	return models.NewTransaction(date, description, amount), nil
}

// parseAmount derives the signed amount from whichever schema the file uses.
// For debit/credit files, signed amount = credit - debit, so a pure debit is
// negative and a pure credit positive.
func (sp *StatementParser) parseAmount(record []string, schema *ColumnSchema) (decimal.Decimal, error) {
	if schema.HasAmountColumn() {
		return models.ParseAmount(field(record, schema.Amount))
	}

	debit, err := models.ParseAmount(field(record, schema.Debit))
	if err != nil {
		return decimal.Zero, err
	}
	credit, err := models.ParseAmount(field(record, schema.Credit))
	if err != nil {
		return decimal.Zero, err
	}
	return credit.Sub(debit), nil
}
