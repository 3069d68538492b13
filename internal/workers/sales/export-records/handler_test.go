package exportrecords

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealership-workers/internal/common/logger"
	"dealership-workers/internal/models"
	"dealership-workers/internal/store"
)

func newTestHandler(t *testing.T) (*Handler, *store.Store) {
	t.Helper()
	st := store.New(logger.NewNoOpLogger())
	h, err := NewHandler(HandlerOptions{
		CustomConfig: &Config{Enabled: true, MaxJobsActive: 3, Timeout: time.Minute, DefaultFormat: "csv"},
		Store:        st,
		Logger:       logger.NewTestLogger(t),
	})
	require.NoError(t, err)
	return h, st
}

func TestExecuteExportCSV(t *testing.T) {
	h, st := newTestHandler(t)
	st.AddLead(models.Lead{FirstName: "Nina", LastName: "Park", Score: 75})
	st.AddLead(models.Lead{FirstName: "Omar", LastName: "Haddad"})

	output, err := h.Execute(context.Background(), &Input{Collection: store.CollectionLeads})
	require.NoError(t, err)

	assert.True(t, output.Success)
	assert.Equal(t, 2, output.RecordCount)
	assert.Regexp(t, `^leads_\d{4}-\d{2}-\d{2}\.csv$`, output.Filename)

	// Every cell quoted, records parse back.
	_, rows, err := store.ParseCSV(output.Content)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.True(t, strings.HasPrefix(output.Content, `"`))
}

func TestExecuteExportJSON(t *testing.T) {
	h, st := newTestHandler(t)
	st.AddDeal(models.Deal{CustomerName: "Priya Raman", Vehicle: "2023 Toyota Camry SE"})

	output, err := h.Execute(context.Background(), &Input{
		Collection: store.CollectionDeals,
		Format:     "json",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, output.RecordCount)
	assert.True(t, strings.HasSuffix(output.Filename, ".json"))
	assert.Contains(t, output.Content, "Priya Raman")
}

func TestExecuteExportEmptyCollection(t *testing.T) {
	h, _ := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{Collection: store.CollectionCustomers})
	require.NoError(t, err)
	assert.Equal(t, 0, output.RecordCount)
}

func TestExecuteExportUnknownCollection(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{Collection: "unicorns"})
	assert.Error(t, err)
}

func TestExecuteExportUnsupportedFormat(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{Collection: store.CollectionLeads, Format: "xml"})
	assert.Error(t, err)
}
