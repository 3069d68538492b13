// internal/store/search.go
package store

import (
	"strings"

	"dealership-workers/internal/common/errors"
	"dealership-workers/internal/models"
)

// NormalizeQuery lowercases, trims, and collapses internal whitespace so
// "  John   SMITH " and "john smith" are the same query.
func NormalizeQuery(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}

// digitsOnly strips everything but digits, used for phone matching so
// "(555) 123-4567" matches the query "5551234".
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// matchText reports whether any candidate field contains the normalized
// query as a substring. Matching short-circuits on the first hit.
func matchText(query string, fields ...string) bool {
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// matchPhone compares digits to digits, ignoring formatting on both sides.
func matchPhone(queryDigits, phone string) bool {
	if queryDigits == "" || phone == "" {
		return false
	}
	return strings.Contains(digitsOnly(phone), queryDigits)
}

// SearchLeads filters by name, email, phone, source, interest and assignee.
// An empty query returns the full collection unchanged.
func (s *Store) SearchLeads(query string) []models.Lead {
	q := NormalizeQuery(query)
	all := s.Leads()
	if q == "" {
		return all
	}
	qd := digitsOnly(q)

	out := make([]models.Lead, 0, len(all))
	for _, l := range all {
		if matchText(q, l.FullName(), l.Email, l.Source, l.Interest, l.AssignedTo, string(l.Status)) ||
			matchPhone(qd, l.Phone) {
			out = append(out, l)
		}
	}
	return out
}

func (s *Store) SearchCustomers(query string) []models.Customer {
	q := NormalizeQuery(query)
	all := s.Customers()
	if q == "" {
		return all
	}
	qd := digitsOnly(q)

	out := make([]models.Customer, 0, len(all))
	for _, c := range all {
		if matchText(q, c.FullName(), c.Email, c.City, c.State, strings.Join(c.VehiclesOwned, " ")) ||
			matchPhone(qd, c.Phone) {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) SearchDeals(query string) []models.Deal {
	q := NormalizeQuery(query)
	all := s.Deals()
	if q == "" {
		return all
	}
	qd := digitsOnly(q)

	out := make([]models.Deal, 0, len(all))
	for _, d := range all {
		if matchText(q, d.CustomerName, d.Vehicle, d.VIN, d.Salesperson, string(d.DealStage)) ||
			matchPhone(qd, d.CustomerPhone) {
			out = append(out, d)
		}
	}
	return out
}

func (s *Store) SearchFIDeals(query string) []models.FIDeal {
	q := NormalizeQuery(query)
	all := s.FIDeals()
	if q == "" {
		return all
	}
	qd := digitsOnly(q)

	out := make([]models.FIDeal, 0, len(all))
	for _, fi := range all {
		if matchText(q, fi.CustomerName, fi.Vehicle, fi.VIN, fi.Salesperson, string(fi.Status)) ||
			matchPhone(qd, fi.CustomerPhone) {
			out = append(out, fi)
		}
	}
	return out
}

func (s *Store) SearchCreditApplications(query string) []models.CreditApplication {
	q := NormalizeQuery(query)
	all := s.CreditApplications()
	if q == "" {
		return all
	}
	qd := digitsOnly(q)

	out := make([]models.CreditApplication, 0, len(all))
	for _, a := range all {
		if matchText(q, a.ApplicantName(), a.Email, a.Employer, a.Vehicle, string(a.Status)) ||
			matchPhone(qd, a.Phone) {
			out = append(out, a)
		}
	}
	return out
}

func (s *Store) SearchPendingApplications(query string) []models.PendingCreditApplication {
	q := NormalizeQuery(query)
	all := s.PendingApplications()
	if q == "" {
		return all
	}
	qd := digitsOnly(q)

	out := make([]models.PendingCreditApplication, 0, len(all))
	for _, a := range all {
		if matchText(q, a.ApplicantName(), a.Email, a.SubmittedTo, a.FIManagerAssigned, string(a.Status)) ||
			matchPhone(qd, a.Phone) {
			out = append(out, a)
		}
	}
	return out
}

// Search dispatches on collection name and returns the matches as a
// JSON-serializable slice.
func (s *Store) Search(collection, query string) (interface{}, int, error) {
	switch collection {
	case CollectionLeads:
		r := s.SearchLeads(query)
		return r, len(r), nil
	case CollectionCustomers:
		r := s.SearchCustomers(query)
		return r, len(r), nil
	case CollectionDeals:
		r := s.SearchDeals(query)
		return r, len(r), nil
	case CollectionFIDeals:
		r := s.SearchFIDeals(query)
		return r, len(r), nil
	case CollectionCreditApps:
		r := s.SearchCreditApplications(query)
		return r, len(r), nil
	case CollectionPendingApps:
		r := s.SearchPendingApplications(query)
		return r, len(r), nil
	default:
		return nil, 0, errors.NewUnknownCollectionError(collection)
	}
}
