// internal/store/csv_test.go
package store

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealership-workers/internal/models"
)

func TestMarshalCSVQuotesEveryCell(t *testing.T) {
	rows := []map[string]string{
		{"name": "Priya Raman", "note": `said "maybe", call back`},
	}
	out := MarshalCSV(rows, []string{"name", "note"})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"name","note"`, lines[0])
	assert.Equal(t, `"Priya Raman","said ""maybe"", call back"`, lines[1])
}

func TestParseCSVQuotedFields(t *testing.T) {
	data := "\"name\",\"note\"\n\"Priya Raman\",\"said \"\"maybe\"\", call back\"\n"

	headers, rows, err := ParseCSV(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "note"}, headers)
	require.Len(t, rows, 1)
	assert.Equal(t, "Priya Raman", rows[0]["name"])
	assert.Equal(t, `said "maybe", call back`, rows[0]["note"])
}

func TestParseCSVShortRowsAndBlankLines(t *testing.T) {
	data := "a,b,c\n1,2\n\n3,4,5\n"

	headers, rows, err := ParseCSV(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[0]["c"])
	assert.Equal(t, "5", rows[1]["c"])
}

func TestParseCSVUnterminatedQuote(t *testing.T) {
	_, _, err := ParseCSV("a,b\n\"open,2\n")
	assert.Error(t, err)
}

func TestParseCSVKeepsQuotedEmptyRows(t *testing.T) {
	data := "a,b\n\"\",\"\"\n\"x\",\"y\"\n"

	headers, rows, err := ParseCSV(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[0]["a"])
	assert.Equal(t, "", rows[0]["b"])
	assert.Equal(t, "x", rows[1]["a"])
}

func TestCSVRoundTrip(t *testing.T) {
	rows := []map[string]string{
		{"id": "1", "name": "Angela Cho", "phone": "(555) 902-5510"},
		{"id": "2", "name": `Bob "Bobby" Vance`, "phone": ""},
	}
	headers := []string{"id", "name", "phone"}

	gotHeaders, gotRows, err := ParseCSV(MarshalCSV(rows, headers))
	require.NoError(t, err)
	assert.Equal(t, headers, gotHeaders)
	assert.Equal(t, rows, gotRows)
}

func TestExportFilename(t *testing.T) {
	name := ExportFilename("leads", "csv")
	assert.True(t, strings.HasPrefix(name, "leads_"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
	assert.Regexp(t, `^leads_\d{4}-\d{2}-\d{2}\.csv$`, name)
}

func TestFlattenRecordsKeepsNumberLiterals(t *testing.T) {
	type rec struct {
		ID    int     `json:"id"`
		Price float64 `json:"price"`
		Name  string  `json:"name"`
		Used  bool    `json:"used"`
	}
	rows, err := FlattenRecords([]rec{{ID: 7, Price: 386.66, Name: "Camry", Used: true}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "7", rows[0]["id"])
	assert.Equal(t, "386.66", rows[0]["price"])
	assert.Equal(t, "Camry", rows[0]["name"])
	assert.Equal(t, "true", rows[0]["used"])
}

func TestRowsToJSONCoercesOnlyTypedFields(t *testing.T) {
	raw, err := RowsToJSON(CollectionCustomers, []map[string]string{
		{"id": "7", "zip": "45402", "phone": "5550142", "vehiclesOwned": `["2021 RAV4"]`, "extra": "12"},
	})
	require.NoError(t, err)

	s := string(raw)
	assert.Contains(t, s, `"id":7`)
	assert.Contains(t, s, `"zip":"45402"`) // string-typed fields keep digits
	assert.Contains(t, s, `"phone":"5550142"`)
	assert.Contains(t, s, `"vehiclesOwned":["2021 RAV4"]`)
	assert.Contains(t, s, `"extra":"12"`) // undeclared headers stay strings
}

func TestRowsToJSONCoercesBooleans(t *testing.T) {
	raw, err := RowsToJSON(CollectionFIDeals, []map[string]string{
		{"gapInsurance": "true", "gapCost": "895"},
	})
	require.NoError(t, err)

	s := string(raw)
	assert.Contains(t, s, `"gapInsurance":true`)
	assert.Contains(t, s, `"gapCost":895`)
}

func TestRowsToJSONDropsEmptyTypedCells(t *testing.T) {
	raw, err := RowsToJSON(CollectionLeads, []map[string]string{
		{"firstName": "Tom", "score": "", "notes": ""},
	})
	require.NoError(t, err)

	s := string(raw)
	assert.NotContains(t, s, `"score"`) // zero value applies on decode
	assert.Contains(t, s, `"notes":""`)
}

func TestImportRecordsFromJSON(t *testing.T) {
	s := newTestStore()
	payload := []byte(`[
		{"firstName":"Nina","lastName":"Park","email":"nina@example.com","score":75},
		{"firstName":"Omar","lastName":"Haddad","score":40}
	]`)

	ids, err := s.ImportRecords(CollectionLeads, payload)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Len(t, s.Leads(), 2)

	lead, ok := s.Lead(ids[0])
	require.True(t, ok)
	assert.Equal(t, "Nina Park", lead.FullName())
	assert.Equal(t, models.LeadStatusNew, lead.Status)
}

func TestImportRecordsAssignsFreshIDs(t *testing.T) {
	s := newTestStore()
	original := s.AddLead(models.Lead{FirstName: "Marcus", LastName: "Webb"})

	payload := []byte(fmt.Sprintf(`[{"id":%d,"firstName":"Imported","lastName":"Duplicate"}]`, original.ID))
	ids, err := s.ImportRecords(CollectionLeads, payload)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.NotEqual(t, original.ID, ids[0])

	kept, ok := s.Lead(original.ID)
	require.True(t, ok)
	assert.Equal(t, "Marcus", kept.FirstName)

	imported, ok := s.Lead(ids[0])
	require.True(t, ok)
	assert.Equal(t, "Imported", imported.FirstName)
}

func TestImportExportRoundTripKeepsNumericStrings(t *testing.T) {
	s := newTestStore()
	s.AddCustomer(models.Customer{
		FirstName: "Angela",
		LastName:  "Cho",
		Zip:       "45402",
		Phone:     "(937) 555-0101",
	})

	_, content, _, err := s.ExportRecords(CollectionCustomers, FormatCSV)
	require.NoError(t, err)

	_, rows, err := ParseCSV(content)
	require.NoError(t, err)
	payload, err := RowsToJSON(CollectionCustomers, rows)
	require.NoError(t, err)

	ids, err := s.ImportRecords(CollectionCustomers, payload)
	require.NoError(t, err)
	require.Len(t, ids, 1)

	imported, ok := s.Customer(ids[0])
	require.True(t, ok)
	assert.Equal(t, "45402", imported.Zip)
	assert.Equal(t, "(937) 555-0101", imported.Phone)
}

func TestImportRecordsBadPayload(t *testing.T) {
	s := newTestStore()
	_, err := s.ImportRecords(CollectionLeads, []byte(`{"not":"an array"}`))
	assert.Error(t, err)
	assert.Empty(t, s.Leads())

	_, err = s.ImportRecords("unicorns", []byte(`[]`))
	assert.Error(t, err)
}

func TestExportRecordsCSVRoundTrip(t *testing.T) {
	s := newTestStore()
	s.AddLead(models.Lead{FirstName: "Nina", LastName: "Park", Phone: "(555) 010-2030", Score: 75})

	name, content, count, err := s.ExportRecords(CollectionLeads, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Regexp(t, `^leads_\d{4}-\d{2}-\d{2}\.csv$`, name)

	_, rows, err := ParseCSV(content)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Nina", rows[0]["firstName"])
	assert.Equal(t, "75", rows[0]["score"])
	assert.Equal(t, "(555) 010-2030", rows[0]["phone"])
}

func TestExportRecordsJSON(t *testing.T) {
	s := newTestStore()
	s.AddFIDeal(models.FIDeal{CustomerName: "Robert Vance", FinanceAmount: 35100})

	name, content, count, err := s.ExportRecords(CollectionFIDeals, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.True(t, strings.HasSuffix(name, ".json"))
	assert.Contains(t, content, `"Robert Vance"`)
}

func TestExportRecordsUnsupportedFormat(t *testing.T) {
	s := newTestStore()
	_, _, _, err := s.ExportRecords(CollectionLeads, "xml")
	assert.Error(t, err)
}
