package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	require.Len(t, catalog, 21)

	seen := make(map[string]bool)
	for _, tool := range catalog {
		t.Run(tool.Name, func(t *testing.T) {
			assert.False(t, seen[tool.Name], "duplicate tool name")
			seen[tool.Name] = true

			assert.NotEmpty(t, tool.Description)
			assert.Equal(t, "object", tool.InputSchema.Type)
			for _, required := range tool.InputSchema.Required {
				assert.Contains(t, tool.InputSchema.Properties, required, "required argument must be declared")
			}
		})
	}
}

func TestCatalog_RequiredArguments(t *testing.T) {
	byName := make(map[string][]string)
	for _, tool := range Catalog() {
		byName[tool.Name] = tool.InputSchema.Required
	}

	assert.ElementsMatch(t, []string{"type", "name", "bandwidth", "a_side", "z_side"}, byName[ToolCreateConnection])
	assert.ElementsMatch(t, byName[ToolCreateConnection], byName[ToolValidateConnection])
	assert.ElementsMatch(t, []string{"connection_id"}, byName[ToolUpdateConnection])
	assert.ElementsMatch(t, []string{"type", "name", "expiration_date"}, byName[ToolCreateServiceToken])
	assert.ElementsMatch(t, []string{"router_id"}, byName[ToolGetRouter])
	assert.Empty(t, byName[ToolListPorts])
	assert.Empty(t, byName[ToolCreateRouter])
}

func TestCatalog_MatchesHandlerTable(t *testing.T) {
	assert.NoError(t, checkDrift(Catalog(), handlers))
	assert.Len(t, handlers, len(Catalog()))
}
