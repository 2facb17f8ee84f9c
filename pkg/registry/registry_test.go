// pkg/registry/registry_test.go
package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRegistry(t *testing.T) {
	reg, err := LoadRegistry("../../configs/activity-registry.json")
	require.NoError(t, err)

	assert.NotEmpty(t, reg.Version)
	assert.Len(t, reg.Activities, 12)

	for _, a := range reg.Activities {
		assert.NotEmpty(t, a.TaskType, "activity %s has no task type", a.ID)
		assert.NotEmpty(t, a.Category, "activity %s has no category", a.ID)
		assert.Equal(t, "implemented", a.ImplementationStatus, "activity %s", a.ID)
	}
}

func TestFindByTaskType(t *testing.T) {
	reg, err := LoadRegistry("../../configs/activity-registry.json")
	require.NoError(t, err)

	activity, ok := reg.FindByTaskType("capture-lead")
	require.True(t, ok)
	assert.Equal(t, "lead.capture-lead", activity.ID)
	assert.Contains(t, activity.ErrorCodes, "LEAD_VALIDATION_FAILED")

	_, ok = reg.FindByTaskType("no-such-task")
	assert.False(t, ok)
}

func TestTaskTypes(t *testing.T) {
	reg, err := LoadRegistry("../../configs/activity-registry.json")
	require.NoError(t, err)

	types := reg.TaskTypes()
	assert.Len(t, types, len(reg.Activities))
	assert.Contains(t, types, "begin-assessment")
	assert.Contains(t, types, "search-levers")
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry("does-not-exist.json")
	assert.Error(t, err)
}
