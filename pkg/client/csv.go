package client

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ColumnMapping maps CSV header names (case-insensitive) to import field
// names. Headers without an entry keep their own name.
type ColumnMapping map[string]string

// DefaultClientColumns maps common spreadsheet headers onto client fields
var DefaultClientColumns = ColumnMapping{
	"name":        "name",
	"contact":     "name",
	"company":     "company",
	"phone":       "phone",
	"telephone":   "phone",
	"address":     "address",
	"email":       "address",
	"web":         "web",
	"website":     "web",
	"mail":        "mail",
	"category":    "mail",
	"postal mail": "postal_mail",
	"postal_mail": "postal_mail",
	"notes":       "notes",
}

// DefaultCallColumns maps common spreadsheet headers onto call fields
var DefaultCallColumns = ColumnMapping{
	"client":           "client",
	"company":          "client",
	"call date":        "callDate",
	"calldate":         "callDate",
	"date":             "callDate",
	"status":           "status",
	"duration":         "duration",
	"outcome":          "outcome",
	"notes":            "notes",
	"next action":      "nextAction",
	"nextaction":       "nextAction",
	"next action date": "nextActionDate",
	"nextactiondate":   "nextActionDate",
}

func (m ColumnMapping) field(header string) string {
	header = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
	if field, ok := m[strings.ToLower(header)]; ok {
		return field
	}
	return header
}

// ReadCSV reads a CSV document with a header row and returns one map per
// data row keyed by mapped field name. Values are trimmed and blank lines
// are skipped.
func ReadCSV(r io.Reader, mapping ColumnMapping) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: failed to read header: %w", err)
	}

	fields := make([]string, len(header))
	for i, h := range header {
		fields[i] = mapping.field(h)
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}

		row := make(map[string]string, len(fields))
		empty := true
		for i, value := range record {
			if i >= len(fields) {
				break
			}
			value = strings.TrimSpace(value)
			if value != "" {
				empty = false
			}
			// The first column mapped to a field wins unless it is blank
			if existing := row[fields[i]]; existing == "" {
				row[fields[i]] = value
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// ClientRecords converts mapped rows into client import records
func ClientRecords(rows []map[string]string) []ClientImportRecord {
	records := make([]ClientImportRecord, len(rows))
	for i, row := range rows {
		records[i] = ClientImportRecord{
			Name:       row["name"],
			Address:    row["address"],
			Phone:      row["phone"],
			Company:    row["company"],
			Notes:      row["notes"],
			Web:        row["web"],
			Mail:       row["mail"],
			PostalMail: row["postal_mail"],
		}
	}
	return records
}

// CallRecords converts mapped rows into call import records. A non-numeric
// duration is reported with its data row number (header is row 1).
func CallRecords(rows []map[string]string) ([]CallImportRecord, error) {
	records := make([]CallImportRecord, len(rows))
	for i, row := range rows {
		var duration int
		if raw := row["duration"]; raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: duration %q is not a number", i+2, raw)
			}
			duration = n
		}
		records[i] = CallImportRecord{
			Client:         row["client"],
			CallDate:       row["callDate"],
			Status:         row["status"],
			Duration:       FlexibleInt(duration),
			Outcome:        row["outcome"],
			Notes:          row["notes"],
			NextAction:     row["nextAction"],
			NextActionDate: row["nextActionDate"],
		}
	}
	return records, nil
}
