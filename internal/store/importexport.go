// internal/store/importexport.go
package store

import (
	"encoding/json"

	"dealership-workers/internal/common/errors"
	"dealership-workers/internal/models"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ImportRecords appends decoded records to a collection and returns the
// assigned ids. Ids in the payload are ignored; every imported record gets
// a fresh id from the store counter so re-importing an export can never
// collide with existing records. The payload must already be JSON (CSV
// input goes through ParseCSV and RowsToJSON first). A decode failure
// imports nothing.
func (s *Store) ImportRecords(collection string, payload []byte) ([]int, error) {
	switch collection {
	case CollectionLeads:
		var recs []models.Lead
		if err := json.Unmarshal(payload, &recs); err != nil {
			return nil, errors.NewImportParseFailedError(FormatJSON, err)
		}
		ids := make([]int, 0, len(recs))
		for _, r := range recs {
			r.ID = 0
			ids = append(ids, s.AddLead(r).ID)
		}
		return ids, nil

	case CollectionCustomers:
		var recs []models.Customer
		if err := json.Unmarshal(payload, &recs); err != nil {
			return nil, errors.NewImportParseFailedError(FormatJSON, err)
		}
		ids := make([]int, 0, len(recs))
		for _, r := range recs {
			r.ID = 0
			ids = append(ids, s.AddCustomer(r).ID)
		}
		return ids, nil

	case CollectionDeals:
		var recs []models.Deal
		if err := json.Unmarshal(payload, &recs); err != nil {
			return nil, errors.NewImportParseFailedError(FormatJSON, err)
		}
		ids := make([]int, 0, len(recs))
		for _, r := range recs {
			r.ID = 0
			ids = append(ids, s.AddDeal(r).ID)
		}
		return ids, nil

	case CollectionFIDeals:
		var recs []models.FIDeal
		if err := json.Unmarshal(payload, &recs); err != nil {
			return nil, errors.NewImportParseFailedError(FormatJSON, err)
		}
		ids := make([]int, 0, len(recs))
		for _, r := range recs {
			r.ID = 0
			ids = append(ids, s.AddFIDeal(r).ID)
		}
		return ids, nil

	case CollectionCreditApps:
		var recs []models.CreditApplication
		if err := json.Unmarshal(payload, &recs); err != nil {
			return nil, errors.NewImportParseFailedError(FormatJSON, err)
		}
		ids := make([]int, 0, len(recs))
		for _, r := range recs {
			r.ID = 0
			ids = append(ids, s.AddCreditApplication(r).ID)
		}
		return ids, nil

	default:
		return nil, errors.NewUnknownCollectionError(collection)
	}
}

// ExportRecords serializes a collection as CSV or pretty-printed JSON and
// returns the suggested filename, the payload, and the record count.
func (s *Store) ExportRecords(collection, format string) (string, string, int, error) {
	var records interface{}
	var count int

	switch collection {
	case CollectionLeads:
		r := s.Leads()
		records, count = r, len(r)
	case CollectionCustomers:
		r := s.Customers()
		records, count = r, len(r)
	case CollectionDeals:
		r := s.Deals()
		records, count = r, len(r)
	case CollectionFIDeals:
		r := s.FIDeals()
		records, count = r, len(r)
	case CollectionReturnedDeals:
		r := s.ReturnedDeals()
		records, count = r, len(r)
	case CollectionCreditApps:
		r := s.CreditApplications()
		records, count = r, len(r)
	case CollectionPendingApps:
		r := s.PendingApplications()
		records, count = r, len(r)
	case CollectionTradeIns:
		r := s.TradeIns()
		records, count = r, len(r)
	default:
		return "", "", 0, errors.NewUnknownCollectionError(collection)
	}

	switch format {
	case FormatJSON:
		raw, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return "", "", 0, errors.NewExportFailedError(collection, err)
		}
		return ExportFilename(collection, FormatJSON), string(raw), count, nil

	case FormatCSV:
		rows, err := FlattenRecords(records)
		if err != nil {
			return "", "", 0, errors.NewExportFailedError(collection, err)
		}
		return ExportFilename(collection, FormatCSV), MarshalCSV(rows, nil), count, nil

	default:
		return "", "", 0, errors.NewImportUnsupportedTypeError(format)
	}
}
