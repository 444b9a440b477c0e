// Package ingest implements one concrete "transaction stream" collaborator
// spec §6 describes as a boundary contract the core merely consumes: a
// reader that turns an exported bank-statement spreadsheet into
// []models.Transaction. It is the caller's choice whether to use this
// reader, a database query, or any other source — the core never imports
// this package.
//
// Grounded on the teacher's xuri/excelize dependency, which the teacher's
// go.mod declared but its own tree never imported; this is the only place
// in the rewritten tree that dependency has a real, exercised home.
package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"incomeverify/models"
)

// Column layout expected in the source sheet: date, name, merchant_name,
// amount (dollars, signed), category (comma-separated), pending (TRUE/FALSE).
const (
	colDate = iota
	colName
	colMerchantName
	colAmount
	colCategory
	colPending
)

// XlsxTransactionSource reads transactions from a single worksheet of an
// .xlsx workbook, skipping a header row.
type XlsxTransactionSource struct {
	SheetName string // empty uses the workbook's first sheet
}

// Read parses every data row of path's worksheet into a Transaction. Row 1
// is assumed to be a header and is skipped. AccountID is set to accountID
// for every row, since a single statement export covers one account.
func (x XlsxTransactionSource) Read(path, accountID string) ([]models.Transaction, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: opening workbook: %w", err)
	}
	defer f.Close()

	sheet := x.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("ingest: reading sheet %q: %w", sheet, err)
	}

	var transactions []models.Transaction
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) <= colPending {
			continue // short/blank trailing row
		}

		tx, err := parseRow(row, accountID, i+1)
		if err != nil {
			return nil, fmt.Errorf("ingest: row %d: %w", i+1, err)
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

func parseRow(row []string, accountID string, rowNum int) (models.Transaction, error) {
	date, err := parseDate(row[colDate])
	if err != nil {
		return models.Transaction{}, err
	}

	amountDollars, err := strconv.ParseFloat(strings.TrimSpace(row[colAmount]), 64)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid amount %q: %w", row[colAmount], err)
	}
	amountCents := int64(amountDollars*100 + sign(amountDollars)*0.5)

	kind := models.KindExpense
	if amountCents > 0 {
		kind = models.KindIncome
	}

	var category []string
	if raw := strings.TrimSpace(row[colCategory]); raw != "" {
		category = strings.Split(raw, ",")
		for i := range category {
			category[i] = strings.TrimSpace(category[i])
		}
	}

	pending := strings.EqualFold(strings.TrimSpace(row[colPending]), "TRUE")

	return models.Transaction{
		ID:           fmt.Sprintf("%s-row-%d", accountID, rowNum),
		AccountID:    accountID,
		AmountCents:  amountCents,
		Date:         date,
		Name:         row[colName],
		MerchantName: row[colMerchantName],
		Category:     category,
		Pending:      pending,
		Kind:         kind,
	}, nil
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

var dateLayouts = []string{"2006-01-02", "01/02/2006", "1/2/2006"}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", raw)
}
