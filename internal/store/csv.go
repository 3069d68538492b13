// internal/store/csv.go
package store

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"dealership-workers/internal/common/errors"
	"dealership-workers/internal/models"
)

// MarshalCSV renders rows with every cell quoted and inner quotes doubled,
// so commas and newlines inside values survive a round trip. When headers
// is nil the header list is derived from the union of row keys, sorted for
// a stable column order.
func MarshalCSV(rows []map[string]string, headers []string) string {
	if headers == nil {
		seen := map[string]bool{}
		for _, row := range rows {
			for k := range row {
				if !seen[k] {
					seen[k] = true
					headers = append(headers, k)
				}
			}
		}
		sort.Strings(headers)
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, c := range cells {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(c, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}

	writeRow(headers)
	for _, row := range rows {
		cells := make([]string, len(headers))
		for i, h := range headers {
			cells[i] = row[h]
		}
		writeRow(cells)
	}
	return b.String()
}

// ParseCSV reads a header row plus data rows. Fields may be quoted with
// doubled-quote escaping; unquoted fields end at the next comma. Rows
// shorter than the header get empty strings for the missing columns, and
// blank lines are skipped.
func ParseCSV(data string) ([]string, []map[string]string, error) {
	lines, err := splitCSVRecords(data)
	if err != nil {
		return nil, nil, errors.NewImportParseFailedError("csv", err)
	}
	if len(lines) == 0 {
		return nil, nil, errors.NewImportParseFailedError("csv", fmt.Errorf("no header row"))
	}

	headers := lines[0]
	rows := make([]map[string]string, 0, len(lines)-1)
	for _, cells := range lines[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

// splitCSVRecords tokenizes the raw text into records of cells, honoring
// quoted fields that may contain commas, newlines and doubled quotes.
func splitCSVRecords(data string) ([][]string, error) {
	var (
		records  [][]string
		cells    []string
		cell     strings.Builder
		inQuotes bool
		sawQuote bool
	)

	endCell := func() {
		cells = append(cells, cell.String())
		cell.Reset()
	}
	endRecord := func() {
		endCell()
		// Only a truly blank line is dropped. A row of quoted empty
		// strings has commas or quotes and is still a record.
		blankLine := len(cells) == 1 && cells[0] == "" && !sawQuote
		if !blankLine {
			records = append(records, cells)
		}
		cells = nil
		sawQuote = false
	}

	runes := []rune(strings.ReplaceAll(data, "\r\n", "\n"))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuotes && r == '"':
			if i+1 < len(runes) && runes[i+1] == '"' {
				cell.WriteRune('"')
				i++
			} else {
				inQuotes = false
			}
		case inQuotes:
			cell.WriteRune(r)
		case r == '"':
			inQuotes = true
			sawQuote = true
		case r == ',':
			endCell()
		case r == '\n':
			endRecord()
		default:
			cell.WriteRune(r)
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("unterminated quoted field")
	}
	if cell.Len() > 0 || len(cells) > 0 || sawQuote {
		endRecord()
	}
	return records, nil
}

// ExportFilename builds the download name for an export, e.g.
// "leads_2026-08-31.csv".
func ExportFilename(collection, format string) string {
	return fmt.Sprintf("%s_%s.%s", collection, time.Now().Format("2006-01-02"), format)
}

// FlattenRecords turns a slice of records into string-cell rows for CSV
// export via a JSON round trip. Numbers keep their literal form, nested
// values are re-encoded as JSON text.
func FlattenRecords(records interface{}) ([]map[string]string, error) {
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.UseNumber()
	var objects []map[string]interface{}
	if err := dec.Decode(&objects); err != nil {
		return nil, err
	}

	rows := make([]map[string]string, 0, len(objects))
	for _, obj := range objects {
		row := make(map[string]string, len(obj))
		for k, v := range obj {
			row[k] = flattenValue(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func flattenValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(raw)
	}
}

// cellKind classifies a record field for CSV cell decoding.
type cellKind int

const (
	cellString cellKind = iota
	cellNumber
	cellBool
	cellJSON
)

// collectionCellKinds maps each collection's JSON field names to the kind
// the record type expects, so cells are only coerced where the model is
// actually numeric, boolean, or nested. String fields keep their literal
// text, which is what lets zip codes and phone numbers round trip.
var collectionCellKinds = map[string]map[string]cellKind{
	CollectionLeads:         structCellKinds(models.Lead{}),
	CollectionCustomers:     structCellKinds(models.Customer{}),
	CollectionDeals:         structCellKinds(models.Deal{}),
	CollectionFIDeals:       structCellKinds(models.FIDeal{}),
	CollectionReturnedDeals: structCellKinds(models.Deal{}),
	CollectionCreditApps:    structCellKinds(models.CreditApplication{}),
	CollectionPendingApps:   structCellKinds(models.PendingCreditApplication{}),
	CollectionTradeIns:      structCellKinds(models.TradeIn{}),
}

func structCellKinds(rec interface{}) map[string]cellKind {
	t := reflect.TypeOf(rec)
	kinds := make(map[string]cellKind, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		switch f.Type.Kind() {
		case reflect.Bool:
			kinds[name] = cellBool
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			kinds[name] = cellNumber
		case reflect.String:
			kinds[name] = cellString
		default:
			kinds[name] = cellJSON
		}
	}
	return kinds
}

// RowsToJSON re-encodes parsed CSV rows as a JSON array shaped for the
// collection's record type. Headers the type does not declare stay strings.
func RowsToJSON(collection string, rows []map[string]string) ([]byte, error) {
	kinds := collectionCellKinds[collection]
	objects := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		obj := make(map[string]interface{}, len(row))
		for k, v := range row {
			if val, keep := coerceCell(v, kinds[k]); keep {
				obj[k] = val
			}
		}
		objects = append(objects, obj)
	}
	return json.Marshal(objects)
}

// coerceCell converts a cell to the value its target field expects. Empty
// cells for non-string fields are dropped so the zero value applies, and
// unparseable cells keep their text so the decode error names the value.
func coerceCell(v string, kind cellKind) (interface{}, bool) {
	if kind == cellString {
		return v, true
	}
	if v == "" {
		return nil, false
	}
	switch kind {
	case cellNumber:
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n, true
		}
	case cellBool:
		if b, err := strconv.ParseBool(v); err == nil {
			return b, true
		}
	case cellJSON:
		var nested interface{}
		if err := json.Unmarshal([]byte(v), &nested); err == nil {
			return nested, true
		}
	}
	return v, true
}
