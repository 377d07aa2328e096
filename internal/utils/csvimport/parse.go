// Package csvimport reads bulk voucher import files.
//
// The first record is a header. Column names are matched case-insensitively;
// unknown columns are ignored except those prefixed with "detail:", which set
// the detail instance for the named detail type.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
)

// DateLayout is the format of every date column.
const DateLayout = "2006-01-02"

const detailPrefix = "detail:"

// Column names.
const (
	ColGroupID          = "group_id"
	ColLedgerID         = "ledger_id"
	ColBranchID         = "branch_id"
	ColFiscalYearID     = "fiscal_year_id"
	ColVoucherDate      = "voucher_date"
	ColVoucherNumber    = "voucher_number"
	ColSubsidiaryNumber = "subsidiary_number"
	ColDocumentType     = "document_type"
	ColHeaderText       = "header_description"
	ColAccountID        = "account_id"
	ColDescription      = "description"
	ColDebit            = "debit"
	ColCredit           = "credit"
	ColCurrency         = "currency"
	ColTrackingNumber   = "tracking_number"
	ColTrackingDate     = "tracking_date"
	ColQuantity         = "quantity"
)

var requiredColumns = []string{ColGroupID, ColLedgerID, ColVoucherDate, ColAccountID}

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = fmt.Errorf("%w: import file is missing a required column", apperrors.ErrValidation)

// ErrMalformedValue is returned for a cell that cannot be parsed.
var ErrMalformedValue = fmt.Errorf("%w: malformed value", apperrors.ErrValidation)

// columnKey normalises a header cell. Column names match case-insensitively;
// the detail type code after "detail:" keeps its case.
func columnKey(name string) string {
	name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	if len(name) > len(detailPrefix) && strings.EqualFold(name[:len(detailPrefix)], detailPrefix) {
		return detailPrefix + strings.TrimSpace(name[len(detailPrefix):])
	}
	return strings.ToLower(name)
}

func rateColumn(slot int) string    { return "rate" + strconv.Itoa(slot+1) }
func reverseColumn(slot int) string { return "reverse" + strconv.Itoa(slot+1) }

type record struct {
	cols   map[string]int
	fields []string
	row    int
}

func (r record) get(name string) string {
	i, ok := r.cols[name]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func (r record) fail(col string, err error) error {
	return apperrors.NewRowError(fmt.Errorf("%w: %s: %v", ErrMalformedValue, col, err), r.row)
}

func (r record) decimal(col string) (decimal.Decimal, error) {
	raw := r.get(col)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return decimal.Zero, r.fail(col, err)
	}
	return d, nil
}

func (r record) date(col string) (*time.Time, error) {
	raw := r.get(col)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, r.fail(col, err)
	}
	return &t, nil
}

func (r record) bool(col string) (bool, error) {
	raw := r.get(col)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, r.fail(col, err)
	}
	return b, nil
}

// Parse reads an import file. Row numbers in errors count data records from 1.
func Parse(src io.Reader) ([]domain.ImportRow, error) {
	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedValue, parseErr.Err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read import header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[columnKey(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var rows []domain.ImportRow
	for n := 1; ; n++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.As(err, &parseErr) {
			return nil, apperrors.NewRowError(fmt.Errorf("%w: %v", ErrMalformedValue, parseErr.Err), n)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read import row %d: %w", n, err)
		}
		row, err := parseRecord(record{cols: cols, fields: fields, row: n})
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRecord(r record) (domain.ImportRow, error) {
	row := domain.ImportRow{
		GroupID:          r.get(ColGroupID),
		LedgerID:         r.get(ColLedgerID),
		BranchID:         r.get(ColBranchID),
		FiscalYearID:     r.get(ColFiscalYearID),
		VoucherNumber:    r.get(ColVoucherNumber),
		SubsidiaryNumber: r.get(ColSubsidiaryNumber),
		DocumentTypeCode: r.get(ColDocumentType),
		HeaderText:       r.get(ColHeaderText),
		AccountID:        r.get(ColAccountID),
		Description:      r.get(ColDescription),
		CurrencyCode:     r.get(ColCurrency),
		TrackingNumber:   r.get(ColTrackingNumber),
	}

	date, err := r.date(ColVoucherDate)
	if err != nil {
		return row, err
	}
	if date == nil {
		return row, apperrors.NewRowError(fmt.Errorf("%w: %s", apperrors.ErrMissingRequiredField, ColVoucherDate), r.row)
	}
	row.VoucherDate = *date

	if row.Debit, err = r.decimal(ColDebit); err != nil {
		return row, err
	}
	if row.Credit, err = r.decimal(ColCredit); err != nil {
		return row, err
	}
	for slot := 0; slot < domain.AuxSlotCount; slot++ {
		if row.Rates[slot], err = r.decimal(rateColumn(slot)); err != nil {
			return row, err
		}
		if row.Reverse[slot], err = r.bool(reverseColumn(slot)); err != nil {
			return row, err
		}
	}
	if row.TrackingDate, err = r.date(ColTrackingDate); err != nil {
		return row, err
	}
	if r.get(ColQuantity) != "" {
		q, err := r.decimal(ColQuantity)
		if err != nil {
			return row, err
		}
		row.Quantity = &q
	}

	for name, i := range r.cols {
		if !strings.HasPrefix(name, detailPrefix) || i >= len(r.fields) {
			continue
		}
		if v := strings.TrimSpace(r.fields[i]); v != "" {
			if row.Details == nil {
				row.Details = make(map[string]string)
			}
			row.Details[strings.TrimPrefix(name, detailPrefix)] = v
		}
	}
	return row, nil
}
