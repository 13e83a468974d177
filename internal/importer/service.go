package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/betawi/internal/errs"
	"github.com/MrJamesThe3rd/betawi/internal/helper"
	"github.com/MrJamesThe3rd/betawi/internal/importer/delimited"
	"github.com/MrJamesThe3rd/betawi/internal/importer/spreadsheet"
)

type HelperCreator interface {
	Create(ctx context.Context, params helper.CreateParams) (*helper.Helper, error)
}

type Service struct {
	readers map[Format]RecordReader
	helpers HelperCreator
}

func NewService(helpers HelperCreator) *Service {
	return &Service{
		readers: map[Format]RecordReader{
			FormatCSV:  delimited.New(),
			FormatXLSX: spreadsheet.New(),
		},
		helpers: helpers,
	}
}

// Parse reads a roster without registering anything.
func (s *Service) Parse(format Format, r io.Reader) (*Result, error) {
	reader, ok := s.readers[format]
	if !ok {
		return nil, errs.Invalid("format", fmt.Sprintf("unsupported roster format %q", format))
	}

	rows, err := reader.Records(r)
	if err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}

	return mapRows(rows)
}

// Summary is the outcome of an import.
type Summary struct {
	Profile  string
	Created  []*helper.Helper
	Rejected []Rejection
}

// Import registers every parsed roster line as a new, unverified helper.
// Lines the helper service refuses are reported alongside the parse rejections.
func (s *Service) Import(ctx context.Context, format Format, r io.Reader) (*Summary, error) {
	res, err := s.Parse(format, r)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Profile: res.Profile, Rejected: res.Rejected}

	for _, row := range res.Rows {
		h, err := s.helpers.Create(ctx, row.Params)
		if errors.Is(err, errs.ErrValidation) {
			summary.Rejected = append(summary.Rejected, Rejection{Line: row.Line, Reason: err.Error()})
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("importing line %d: %w", row.Line, err)
		}

		summary.Created = append(summary.Created, h)
	}

	slog.Info("helper roster imported", "profile", res.Profile, "created", len(summary.Created), "rejected", len(summary.Rejected))

	return summary, nil
}
