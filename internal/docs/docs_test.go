package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestDocIsValidJSON(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var parsed struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	assert.Equal(t, "Hip-Hop Foundation API", parsed.Info.Title)
	for _, p := range []string{"/api/auth/login", "/api/events/{id}", "/api/admin/users/{id}/toggle-admin", "/api/news"} {
		assert.Contains(t, parsed.Paths, p)
	}
}
