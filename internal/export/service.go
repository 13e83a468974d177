// Package export writes the ledger out for accounting.
package export

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MrJamesThe3rd/betawi/internal/account"
	"github.com/MrJamesThe3rd/betawi/internal/errs"
	"github.com/MrJamesThe3rd/betawi/internal/finance"
	"github.com/MrJamesThe3rd/betawi/internal/ledger"
)

type Format string

const (
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatBundle Format = "zip"
)

// ContentType is the media type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatBundle:
		return "application/zip"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Currency is appended to amounts in human readable output.
const Currency = "ETB"

const sheetName = "Ledger"

var header = []string{"ID", "Date", "Type", "Helper ID", "From", "Amount", "Commission", "Status", "Description"}

type TransactionLister interface {
	Transactions(ctx context.Context, f account.TransactionFilter) ([]*ledger.Transaction, error)
}

type Service struct {
	ledger  TransactionLister
	printer *message.Printer
}

func NewService(l TransactionLister) *Service {
	return &Service{
		ledger:  l,
		printer: message.NewPrinter(language.English),
	}
}

// Write exports the transactions matching f in the requested format.
func (s *Service) Write(ctx context.Context, w io.Writer, format Format, f account.TransactionFilter) error {
	txs, err := s.ledger.Transactions(ctx, f)
	if err != nil {
		return fmt.Errorf("listing transactions: %w", err)
	}

	switch format {
	case FormatCSV:
		return s.WriteCSV(w, txs)
	case FormatXLSX:
		return s.WriteXLSX(w, txs)
	case FormatBundle:
		return s.WriteBundle(w, txs)
	default:
		return errs.Invalid("format", fmt.Sprintf("unsupported export format %q", format))
	}
}

func record(tx *ledger.Transaction) []string {
	return []string{
		strconv.Itoa(tx.ID),
		tx.Date.Format(time.DateOnly),
		string(tx.Type),
		strconv.Itoa(tx.HelperID),
		tx.From,
		strconv.FormatInt(tx.Amount, 10),
		strconv.FormatInt(tx.Commission, 10),
		string(tx.Status),
		tx.Description,
	}
}

func (s *Service) WriteCSV(w io.Writer, txs []*ledger.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		if err := cw.Write(record(tx)); err != nil {
			return fmt.Errorf("writing transaction %d: %w", tx.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteXLSX writes one sheet with a row per transaction and a totals block
// underneath that only counts completed entries.
func (s *Service) WriteXLSX(w io.Writer, txs []*ledger.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	rows := make([][]any, 0, len(txs)+5)
	rows = append(rows, toAny(header))

	for _, tx := range txs {
		rows = append(rows, []any{
			tx.ID, tx.Date.Format(time.DateOnly), string(tx.Type), tx.HelperID, tx.From,
			tx.Amount, tx.Commission, string(tx.Status), tx.Description,
		})
	}

	rows = append(rows,
		[]any{},
		[]any{"Total income", finance.TotalIncome(txs)},
		[]any{"Total payouts", finance.TotalPayouts(txs)},
		[]any{"Platform balance", finance.PlatformBalance(txs)},
	)

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}

		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

// Summary renders one line per transaction for pasting into an email.
func (s *Service) Summary(txs []*ledger.Transaction) string {
	var sb strings.Builder

	for _, tx := range txs {
		sign := "-"
		if tx.Type == ledger.TypeIncome {
			sign = "+"
		}

		sb.WriteString(s.printer.Sprintf("* %s | %s | %s | %s%d %s | %s\n",
			tx.Date.Format(time.DateOnly), tx.Type, tx.From, sign, tx.Amount, Currency, tx.Status))
	}

	sb.WriteString(s.printer.Sprintf("Platform balance: %d %s\n", finance.PlatformBalance(txs), Currency))

	return sb.String()
}

// WriteBundle zips the CSV, the workbook and the summary together.
func (s *Service) WriteBundle(w io.Writer, txs []*ledger.Transaction) error {
	zw := zip.NewWriter(w)

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"ledger.csv", func(w io.Writer) error { return s.WriteCSV(w, txs) }},
		{"ledger.xlsx", func(w io.Writer) error { return s.WriteXLSX(w, txs) }},
		{"summary.txt", func(w io.Writer) error {
			_, err := io.WriteString(w, s.Summary(txs))
			return err
		}},
	}

	for _, file := range files {
		fw, err := zw.Create(file.name)
		if err != nil {
			return fmt.Errorf("adding %s: %w", file.name, err)
		}

		if err := file.write(fw); err != nil {
			return fmt.Errorf("writing %s: %w", file.name, err)
		}
	}

	return zw.Close()
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}

	return out
}
