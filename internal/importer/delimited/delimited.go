// Package delimited reads comma or semicolon separated roster files in any
// of the encodings spreadsheet tools commonly export.
package delimited

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	enc "github.com/MrJamesThe3rd/betawi/internal/encoding"
)

const sniffSize = 8192

type Reader struct{}

func New() *Reader {
	return &Reader{}
}

func (d *Reader) Records(r io.Reader) ([][]string, error) {
	utf8r, charset, err := enc.Detect(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReaderSize(utf8r, sniffSize)

	comma, err := sniffComma(br)
	if err != nil {
		return nil, err
	}

	slog.Debug("reading delimited roster", "charset", charset, "separator", string(comma))

	reader := csv.NewReader(br)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rows, nil
}

// sniffComma picks ';' when the first non-empty line has more semicolons than commas.
func sniffComma(br *bufio.Reader) (rune, error) {
	buf, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return 0, fmt.Errorf("peek: %w", err)
	}

	for line := range strings.Lines(string(buf)) {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.Count(line, ";") > strings.Count(line, ",") {
			return ';', nil
		}

		break
	}

	return ',', nil
}
