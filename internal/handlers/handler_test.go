package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"holocron/internal/models"
	"holocron/internal/pkg/httpretry"
	"holocron/internal/services"
	"holocron/internal/swapi"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeSWAPI serves one record per collection, or 500s while failing is set.
type fakeSWAPI struct {
	*httptest.Server
	failing  atomic.Bool
	requests atomic.Int32
}

func newFakeSWAPI(t *testing.T) *fakeSWAPI {
	t.Helper()
	f := &fakeSWAPI{}
	bodies := map[string]string{
		"/people":   `{"count":1,"next":null,"results":[{"name":"Luke Skywalker","height":"172","gender":"male","hair_color":"blond","eye_color":"blue"}]}`,
		"/vehicles": `{"count":1,"next":null,"results":[{"name":"Sand Crawler","model":"Digger Crawler","manufacturer":"Corellia Mining Corporation","vehicle_class":"wheeled"}]}`,
		"/planets":  `{"count":1,"next":null,"results":[{"name":"Tatooine","diameter":"10465","population":"200000","terrain":"desert"}]}`,
	}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		if f.failing.Load() {
			http.Error(w, "upstream down", http.StatusInternalServerError)
			return
		}
		body, ok := bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(f.Close)
	return f
}

func setupTestHandler(t *testing.T) (*Handler, *gorm.DB, *fakeSWAPI) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	upstream := newFakeSWAPI(t)
	doer := httpretry.NewRetryClient(upstream.Client(), 1).
		WithBackoff(time.Millisecond, time.Millisecond).
		WithLogger(logger)
	dataset := swapi.NewClient(upstream.URL, doer, 1)

	audit := services.NewAuditService(db, logger)
	catalog := services.NewCatalogService(db)
	h := NewHandler(logger, db,
		services.NewUserService(db, audit),
		catalog,
		services.NewFavoriteService(db, catalog, audit),
		services.NewSeedService(db, logger, dataset, nil, audit, time.Minute, time.Second),
	)
	return h, db, upstream
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return h.SetupRouter(nil)
}

func performRequest(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func seedCatalog(t *testing.T, db *gorm.DB) (models.Character, models.Planet, models.Vehicle) {
	t.Helper()
	character := models.Character{Name: "Leia Organa", HairColor: "brown", Gender: "female"}
	planet := models.Planet{Name: "Alderaan", Diameter: "12500", Terrain: "grasslands"}
	vehicle := models.Vehicle{Name: "T-16 skyhopper", Type: "repulsorcraft"}
	for _, record := range []interface{}{&character, &planet, &vehicle} {
		require.NoError(t, db.Create(record).Error)
	}
	return character, planet, vehicle
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}
