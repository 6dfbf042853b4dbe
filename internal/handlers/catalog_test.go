package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogLists(t *testing.T) {
	h, db, _ := setupTestHandler(t)
	r := setupTestRouter(h)

	for _, path := range []string{"/characters", "/planets", "/vehicles"} {
		w := performRequest(t, r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []interface{}{}, decodeBody(t, w)["results"], path)
	}

	seedCatalog(t, db)

	w := performRequest(t, r, http.MethodGet, "/characters", nil)
	results := decodeBody(t, w)["results"].([]interface{})
	require.Len(t, results, 1)
	character := results[0].(map[string]interface{})
	assert.Equal(t, "Leia Organa", character["name"])
	assert.Equal(t, "brown", character["hair_color"])
	assert.ElementsMatch(t, []string{"id", "name", "height", "gender", "hair_color", "eye_color"}, keys(character))

	w = performRequest(t, r, http.MethodGet, "/planets", nil)
	planet := decodeBody(t, w)["results"].([]interface{})[0].(map[string]interface{})
	assert.ElementsMatch(t, []string{"id", "name", "diameter", "population", "terrain"}, keys(planet))

	w = performRequest(t, r, http.MethodGet, "/vehicles", nil)
	vehicle := decodeBody(t, w)["results"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "repulsorcraft", vehicle["type"])
	assert.ElementsMatch(t, []string{"id", "name", "type", "model", "manufacturer"}, keys(vehicle))
}

func TestCatalogGet(t *testing.T) {
	h, db, _ := setupTestHandler(t)
	r := setupTestRouter(h)
	character, planet, vehicle := seedCatalog(t, db)

	tests := []struct {
		path    string
		id      uint
		name    string
		missing string
	}{
		{"/characters", character.ID, "Leia Organa", "Character not found"},
		{"/planets", planet.ID, "Alderaan", "Planet not found"},
		{"/vehicles", vehicle.ID, "T-16 skyhopper", "Vehicle not found"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := performRequest(t, r, http.MethodGet, fmt.Sprintf("%s/%d", tt.path, tt.id), nil)
			require.Equal(t, http.StatusOK, w.Code)
			result := decodeBody(t, w)["results"].(map[string]interface{})
			assert.Equal(t, tt.name, result["name"])

			w = performRequest(t, r, http.MethodGet, tt.path+"/999", nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, tt.missing, decodeBody(t, w)["error"])

			w = performRequest(t, r, http.MethodGet, tt.path+"/x1", nil)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, tt.missing, decodeBody(t, w)["error"])
		})
	}
}

func keys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
