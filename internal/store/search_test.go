// internal/store/search_test.go
package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealership-workers/internal/common/logger"
	"dealership-workers/internal/models"
)

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "john smith", NormalizeQuery("  John   SMITH "))
	assert.Equal(t, "", NormalizeQuery("   \t  "))
}

func TestSearchLeadsCaseAndSpaceInsensitive(t *testing.T) {
	s := newTestStore()
	s.AddLead(models.Lead{FirstName: "John", LastName: "Smith", Email: "jsmith@example.com"})
	s.AddLead(models.Lead{FirstName: "Jane", LastName: "Doe"})

	got := s.SearchLeads(" john ")
	require.Len(t, got, 1)
	assert.Equal(t, "John Smith", got[0].FullName())

	// Full-name match spans first and last name.
	assert.Len(t, s.SearchLeads("john smith"), 1)
	assert.Len(t, s.SearchLeads("JSMITH@EXAMPLE"), 1)
	assert.Empty(t, s.SearchLeads("nonexistent"))
}

func TestSearchPhoneDigitsOnly(t *testing.T) {
	s := newTestStore()
	s.AddLead(models.Lead{FirstName: "John", Phone: "(555) 123-4567"})

	assert.Len(t, s.SearchLeads("555-123-4567"), 1)
	assert.Len(t, s.SearchLeads("5551234"), 1)
	assert.Empty(t, s.SearchLeads("5559999"))
}

func TestSearchEmptyQueryIdentity(t *testing.T) {
	s := NewSeeded(logger.NewNoOpLogger())

	all := s.Leads()
	got := s.SearchLeads("")
	assert.Equal(t, all, got)

	got = s.SearchLeads("   ")
	assert.Equal(t, all, got)
}

func TestSearchPreservesOrder(t *testing.T) {
	s := newTestStore()
	s.AddLead(models.Lead{FirstName: "Amy", LastName: "Carter", Source: "Website"})
	s.AddLead(models.Lead{FirstName: "Ben", LastName: "Carter", Source: "Walk-in"})
	s.AddLead(models.Lead{FirstName: "Cal", LastName: "Carter", Source: "Website"})

	got := s.SearchLeads("carter")
	require.Len(t, got, 3)
	assert.Equal(t, "Amy", got[0].FirstName)
	assert.Equal(t, "Ben", got[1].FirstName)
	assert.Equal(t, "Cal", got[2].FirstName)

	got = s.SearchLeads("website")
	require.Len(t, got, 2)
	assert.Equal(t, "Amy", got[0].FirstName)
	assert.Equal(t, "Cal", got[1].FirstName)
}

func TestSearchDispatch(t *testing.T) {
	s := NewSeeded(logger.NewNoOpLogger())

	_, count, err := s.Search(CollectionDeals, "")
	require.NoError(t, err)
	assert.Equal(t, len(s.Deals()), count)

	_, count, err = s.Search(CollectionPendingApps, "okafor")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, _, err = s.Search("unicorns", "x")
	assert.Error(t, err)
}

func TestSearchCustomersByVehicleOwned(t *testing.T) {
	s := newTestStore()
	s.AddCustomer(models.Customer{
		FirstName: "Robert", LastName: "Vance",
		VehiclesOwned: []string{"2019 Ford F-150"},
	})

	assert.Len(t, s.SearchCustomers("f-150"), 1)
	assert.Empty(t, s.SearchCustomers("silverado"))
}
