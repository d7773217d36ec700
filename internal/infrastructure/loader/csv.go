package loader

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dugout-cli/dugout/internal/domain/statline"
)

// The source exports sometimes ship without a header row; these are the
// column orders they use then.
var pitcherCSVHeader = []string{
	"Rk", "Player", "Age", "Team", "Lg", "WAR", "W", "L", "W-L%", "ERA",
	"G", "GS", "GF", "CG", "SHO", "SV", "IP", "H", "R", "ER", "HR", "BB",
	"IBB", "SO", "HBP", "BK", "WP", "BF", "ERA+", "FIP", "WHIP", "H9",
	"HR9", "BB9", "SO9", "SO/BB", "Awards", "Player-additional",
}

var hitterCSVHeader = []string{
	"Rk", "Player", "Age", "Team", "Lg", "WAR", "G", "PA", "AB", "R", "H",
	"2B", "3B", "HR", "RBI", "SB", "CS", "BB", "SO", "BA", "OBP", "SLG",
	"OPS", "OPS+", "rOBA", "Rbat+", "TB", "GIDP", "HBP", "SH", "SF", "IBB",
	"Pos", "Awards", "Player-additional",
}

// Header spellings that do not lowercase mechanically into their storage
// column name.
var csvColumnRenames = map[string]string{
	"W-L%":              "w_l_pct",
	"ERA+":              "era_plus",
	"SO/BB":             "so_bb",
	"2B":                "doubles",
	"3B":                "triples",
	"OPS+":              "ops_plus",
	"rOBA":              "roba",
	"Rbat+":             "rbat_plus",
	"Player-additional": "player_additional",
	"Tm":                "tm",
	"#Bat":              "bat_count",
	"BatAge":            "bat_age",
	"R/G":               "r_per_g",
	"#P":                "pitcher_count",
	"PAge":              "p_age",
	"RA/G":              "ra_per_g",
	"tSho":              "t_sho",
	"cSho":              "c_sho",
	"SO/W":              "so_w",
}

func csvColumn(header string) string {
	if col, ok := csvColumnRenames[header]; ok {
		return col
	}
	out := make([]byte, 0, len(header))
	for i := 0; i < len(header); i++ {
		c := header[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}

// looksLikeHeader reports whether a CSV record is a header row. Data rows
// start with a rank number.
func looksLikeHeader(record []string) bool {
	if len(record) == 0 || record[0] == "" {
		return true
	}
	c := record[0][0]
	return c < '0' || c > '9'
}

func fallbackHeader(dataset Dataset) ([]string, error) {
	switch dataset {
	case DatasetPitchers:
		return pitcherCSVHeader, nil
	case DatasetHitters:
		return hitterCSVHeader, nil
	default:
		return nil, fmt.Errorf("%s export is missing its header row", dataset)
	}
}

// parseCSV turns one season export into storage rows. Blank cells become
// NULLs; the season column is stamped from the year, not the file.
func parseCSV(r io.Reader, dataset Dataset, year int) ([]statline.RawLine, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	first, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, err
	}

	var header []string
	var pending []string
	if looksLikeHeader(first) {
		header = first
	} else {
		header, err = fallbackHeader(dataset)
		if err != nil {
			return nil, err
		}
		pending = first
	}

	var rows []statline.RawLine
	appendRow := func(record []string) {
		row := statline.RawLine{"year": year}
		for i, name := range header {
			col := csvColumn(name)
			if i >= len(record) || record[i] == "" {
				row[col] = nil
				continue
			}
			row[col] = record[i]
		}
		rows = append(rows, row)
	}

	if pending != nil {
		appendRow(pending)
	}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		appendRow(record)
	}
	return rows, nil
}
