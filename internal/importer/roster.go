package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/betawi/internal/errs"
	"github.com/MrJamesThe3rd/betawi/internal/helper"
)

// Profile is the column layout of a known roster sheet. Empty optional
// columns are simply not read.
type Profile struct {
	Name          string
	NameCol       string
	AgeCol        string
	TypeCol       string
	MedicalCol    string
	StrengthsCol  string
	WeaknessesCol string
	FaydaCol      string
	KebeleCol     string
}

func (p Profile) requiredCols() []string {
	return []string{p.NameCol, p.AgeCol, p.TypeCol}
}

// profiles are tried in order against every row until one matches as a header.
var profiles = []Profile{
	{
		Name:          "console",
		NameCol:       "Name",
		AgeCol:        "Age",
		TypeCol:       "Type",
		MedicalCol:    "Medical Info",
		StrengthsCol:  "Strengths",
		WeaknessesCol: "Weaknesses",
		FaydaCol:      "Fayda ID",
		KebeleCol:     "Kebele ID",
	},
	{
		Name:         "agency",
		NameCol:      "Full Name",
		AgeCol:       "Age",
		TypeCol:      "Engagement",
		MedicalCol:   "Health Notes",
		StrengthsCol: "Skills",
		FaydaCol:     "National ID",
		KebeleCol:    "Kebele",
	},
}

type colIndex map[string]int

func (c colIndex) cell(row []string, name string) string {
	if name == "" {
		return ""
	}

	idx, ok := c[normalise(name)]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func normalise(col string) string {
	return strings.ToLower(strings.TrimSpace(col))
}

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := normalise(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[normalise(name)]; !ok {
			return false
		}
	}

	return true
}

// mapRows converts raw rows into helper params. Lines that cannot become a
// helper are rejected individually so one bad line never sinks the file.
func mapRows(rows [][]string) (*Result, error) {
	p, cols, headerIdx := detectProfile(rows)
	if p == nil {
		return nil, errs.Invalid("file", "no header row with name, age and type columns")
	}

	res := &Result{Profile: p.Name}

	for i, row := range rows[headerIdx+1:] {
		line := headerIdx + i + 2

		if blank(row) {
			continue
		}

		params, reason := mapRow(p, cols, row)
		if reason != "" {
			res.Rejected = append(res.Rejected, Rejection{Line: line, Reason: reason})
			continue
		}

		res.Rows = append(res.Rows, Row{Line: line, Params: params})
	}

	return res, nil
}

func mapRow(p *Profile, cols colIndex, row []string) (helper.CreateParams, string) {
	name := cols.cell(row, p.NameCol)
	if name == "" {
		return helper.CreateParams{}, "missing name"
	}

	rawAge := cols.cell(row, p.AgeCol)
	if rawAge == "" {
		return helper.CreateParams{}, "missing age"
	}

	age, err := strconv.Atoi(rawAge)
	if err != nil || age <= 0 {
		return helper.CreateParams{}, fmt.Sprintf("invalid age %q", rawAge)
	}

	rawType := cols.cell(row, p.TypeCol)

	kind, ok := parseType(rawType)
	if !ok {
		return helper.CreateParams{}, fmt.Sprintf("unknown helper type %q", rawType)
	}

	return helper.CreateParams{
		Name:        name,
		Age:         age,
		Type:        kind,
		MedicalInfo: cols.cell(row, p.MedicalCol),
		Strengths:   cols.cell(row, p.StrengthsCol),
		Weaknesses:  cols.cell(row, p.WeaknessesCol),
		FaydaID:     cols.cell(row, p.FaydaCol),
		KebeleID:    cols.cell(row, p.KebeleCol),
	}, ""
}

var typeAliases = map[string]helper.Type{
	"livein":   helper.TypeLiveIn,
	"parttime": helper.TypePartTime,
	"ondemand": helper.TypeOnDemand,
	"nanny":    helper.TypeNanny,
}

// parseType accepts the helper types ignoring case, spaces and hyphens.
func parseType(s string) (helper.Type, bool) {
	key := strings.NewReplacer("-", "", " ", "", "_", "").Replace(strings.ToLower(s))
	t, ok := typeAliases[key]

	return t, ok
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
