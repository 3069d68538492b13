package importrecords

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealership-workers/internal/common/logger"
	"dealership-workers/internal/store"
)

func newTestHandler(t *testing.T) (*Handler, *store.Store) {
	t.Helper()
	st := store.New(logger.NewNoOpLogger())
	h, err := NewHandler(HandlerOptions{
		CustomConfig: &Config{Enabled: true, MaxJobsActive: 3, Timeout: 60 * time.Second, MaxRecords: 100},
		Store:        st,
		Logger:       logger.NewTestLogger(t),
	})
	require.NoError(t, err)
	return h, st
}

func TestExecuteImportJSON(t *testing.T) {
	h, st := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		Collection: store.CollectionLeads,
		Format:     "json",
		Data:       `[{"firstName":"Nina","lastName":"Park","score":75},{"firstName":"Omar","lastName":"Haddad"}]`,
	})
	require.NoError(t, err)

	assert.True(t, output.Success)
	assert.Equal(t, 2, output.ImportedCount)
	assert.Len(t, output.ImportedIDs, 2)
	assert.NotEmpty(t, output.BatchID)
	assert.Len(t, st.Leads(), 2)
}

func TestExecuteImportCSV(t *testing.T) {
	h, st := newTestHandler(t)

	csv := "\"firstName\",\"lastName\",\"phone\",\"score\"\n" +
		"\"Nina\",\"Park\",\"(555) 010-2030\",\"75\"\n"

	output, err := h.Execute(context.Background(), &Input{
		Collection: store.CollectionLeads,
		Format:     "csv",
		Data:       csv,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, output.ImportedCount)

	lead, ok := st.Lead(output.ImportedIDs[0])
	require.True(t, ok)
	assert.Equal(t, "Nina Park", lead.FullName())
	assert.Equal(t, "(555) 010-2030", lead.Phone)
	assert.Equal(t, 75, lead.Score)
}

func TestExecuteImportRejectsNonArray(t *testing.T) {
	h, st := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		Collection: store.CollectionLeads,
		Format:     "json",
		Data:       `{"firstName":"Nina"}`,
	})
	assert.Error(t, err)
	assert.Empty(t, st.Leads())
}

func TestExecuteImportUnsupportedFormat(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		Collection: store.CollectionLeads,
		Format:     "xml",
		Data:       "<leads/>",
	})
	assert.Error(t, err)
}

func TestExecuteImportMalformedCSV(t *testing.T) {
	h, st := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		Collection: store.CollectionLeads,
		Format:     "csv",
		Data:       "a,b\n\"open,1\n",
	})
	assert.Error(t, err)
	assert.Empty(t, st.Leads())
}

func TestExecuteImportBatchLimit(t *testing.T) {
	st := store.New(logger.NewNoOpLogger())
	h, err := NewHandler(HandlerOptions{
		CustomConfig: &Config{Enabled: true, MaxJobsActive: 3, Timeout: time.Minute, MaxRecords: 1},
		Store:        st,
		Logger:       logger.NewNoOpLogger(),
	})
	require.NoError(t, err)

	_, err = h.Execute(context.Background(), &Input{
		Collection: store.CollectionLeads,
		Format:     "json",
		Data:       `[{"firstName":"A"},{"firstName":"B"}]`,
	})
	assert.Error(t, err)
	assert.Empty(t, st.Leads())
}
