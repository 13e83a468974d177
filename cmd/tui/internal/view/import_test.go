package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/betawi/internal/importer"
)

func TestFormatOf(t *testing.T) {
	assert.Equal(t, importer.FormatCSV, formatOf("/tmp/roster.csv"))
	assert.Equal(t, importer.FormatXLSX, formatOf("Roster.XLSX"))
	assert.Equal(t, importer.Format(""), formatOf("roster"))
}
