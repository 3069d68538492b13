package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRegistry(t *testing.T, reg *ActivityRegistry) string {
	t.Helper()
	data, err := json.Marshal(reg)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestLoadRegistry(t *testing.T) {
	path := writeRegistry(t, &ActivityRegistry{
		Version: "1.0.0",
		Activities: []Activity{
			{ID: "convert-lead", DisplayName: "Convert Lead", Category: "sales", TaskType: "sales.convert-lead"},
		},
	})

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	require.Len(t, reg.Activities, 1)
	assert.Equal(t, "sales.convert-lead", reg.Activities[0].TaskType)
}

func TestFindByTaskType(t *testing.T) {
	reg := &ActivityRegistry{
		Activities: []Activity{
			{ID: "convert-lead", TaskType: "sales.convert-lead"},
			{ID: "assign-lender", TaskType: "finance.assign-lender"},
		},
	}

	found := reg.FindByTaskType("finance.assign-lender")
	require.NotNil(t, found)
	assert.Equal(t, "assign-lender", found.ID)

	assert.Nil(t, reg.FindByTaskType("finance.unknown"))
}

func TestFindByID(t *testing.T) {
	reg := &ActivityRegistry{
		Activities: []Activity{
			{ID: "convert-lead", TaskType: "sales.convert-lead"},
			{ID: "assign-lender", TaskType: "finance.assign-lender"},
		},
	}

	found := reg.FindByID("convert-lead")
	require.NotNil(t, found)
	assert.Equal(t, "sales.convert-lead", found.TaskType)

	assert.Nil(t, reg.FindByID("missing"))
}

func TestValidate(t *testing.T) {
	valid := &ActivityRegistry{
		Activities: []Activity{
			{ID: "a", DisplayName: "A", Category: "sales", TaskType: "sales.a"},
		},
	}
	assert.NoError(t, valid.Validate())

	empty := &ActivityRegistry{}
	assert.Error(t, empty.Validate())

	duplicate := &ActivityRegistry{
		Activities: []Activity{
			{ID: "a", DisplayName: "A", Category: "sales", TaskType: "sales.a"},
			{ID: "a", DisplayName: "A2", Category: "sales", TaskType: "sales.a2"},
		},
	}
	assert.Error(t, duplicate.Validate())

	missingTask := &ActivityRegistry{
		Activities: []Activity{
			{ID: "a", DisplayName: "A", Category: "sales"},
		},
	}
	assert.Error(t, missingTask.Validate())

	badCategory := &ActivityRegistry{
		Activities: []Activity{
			{ID: "a", DisplayName: "A", Category: "service-drive", TaskType: "sales.a"},
		},
	}
	assert.Error(t, badCategory.Validate())
}
