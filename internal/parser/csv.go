package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

const csvRowsPerSection = 20

type csvParser struct{}

// parse renders each row as "header: value" pairs so spreadsheet WBS
// exports keep their column meaning.
func (csvParser) parse(r io.Reader) (*outline, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	o := &outline{}
	if len(records) < 2 {
		for _, rec := range records {
			o.text(strings.Join(rec, ", "))
		}
		return o, nil
	}

	headers, rows := records[0], records[1:]
	for i := 0; i < len(rows); i += csvRowsPerSection {
		end := min(i+csvRowsPerSection, len(rows))
		o.heading(fmt.Sprintf("Rows %d-%d", i+2, end+1), 2)

		var sb strings.Builder
		for _, row := range rows[i:end] {
			cells := make([]string, 0, len(row))
			for j, cell := range row {
				if strings.TrimSpace(cell) == "" {
					continue
				}
				if j < len(headers) && headers[j] != "" {
					cells = append(cells, headers[j]+": "+cell)
				} else {
					cells = append(cells, cell)
				}
			}
			if len(cells) > 0 {
				sb.WriteString("- " + strings.Join(cells, ", ") + "\n")
			}
		}
		o.text(sb.String())
	}
	return o, nil
}
