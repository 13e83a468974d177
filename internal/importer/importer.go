// Package importer turns uploaded helper rosters into helper registrations.
package importer

import (
	"io"

	"github.com/MrJamesThe3rd/betawi/internal/helper"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// RecordReader splits an uploaded file into raw rows of cells.
type RecordReader interface {
	Records(r io.Reader) ([][]string, error)
}

// Row is one roster line that mapped cleanly onto helper fields.
type Row struct {
	Line   int
	Params helper.CreateParams
}

// Rejection explains why a roster line was not imported. Line is 1-based.
type Rejection struct {
	Line   int
	Reason string
}

type Result struct {
	Profile  string
	Rows     []Row
	Rejected []Rejection
}
