package persona

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectKnownPersonas(t *testing.T) {
	seen := make(map[string]string)
	for _, id := range IDs() {
		t.Run(id, func(t *testing.T) {
			prompt := Select(id)
			require.NotEmpty(t, prompt)
			assert.NotEqual(t, Fallback, prompt)
			if other, dup := seen[prompt]; dup {
				t.Fatalf("persona %s shares its prompt with %s", id, other)
			}
			seen[prompt] = id
		})
	}
	assert.Len(t, seen, 5)
}

func TestSelectUnknownPersona(t *testing.T) {
	for _, id := range []string{"", "pirate", "Health-Advisor", "culinary expert"} {
		assert.Equal(t, Fallback, Select(id), "id %q", id)
	}
}

func TestPromptsStayInScope(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"health-advisor", "related to health"},
		{"culinary-expert", "related to cooking"},
		{"medical-advisor", "related to medicine"},
		{"software-engineer", "related to software"},
		{"education-consultant", "related to education"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.True(t, strings.Contains(Select(tt.id), tt.want))
		})
	}
}

func TestDisplayName(t *testing.T) {
	t.Run("known persona", func(t *testing.T) {
		assert.Equal(t, "Culinary Expert", DisplayName("culinary-expert"))
	})

	t.Run("unknown persona", func(t *testing.T) {
		assert.Equal(t, "custom", DisplayName("custom"))
	})
}

func TestCatalogOrder(t *testing.T) {
	all := All()
	require.Len(t, all, 5)
	assert.Equal(t, "health-advisor", Default().ID)
	assert.Equal(t, 1, Index("culinary-expert"))
	assert.Equal(t, 0, Index("unknown"))

	all[0].Prompt = "mutated"
	assert.NotEqual(t, "mutated", Select("health-advisor"))

	p, ok := Get("software-engineer")
	require.True(t, ok)
	assert.Equal(t, "Software Engineer", p.Name)
}
