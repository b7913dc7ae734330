package grafana

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thand-io/opskit/internal/common"
	"github.com/thand-io/opskit/internal/models"
	"github.com/thand-io/opskit/internal/providers"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(models.ConnectionConfig{
		Provider: models.Grafana,
		BaseURL:  server.URL,
		Token:    "glsa_test",
	})
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestSearchDashboards(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "Bearer glsa_test", r.Header.Get("Authorization"))
		assert.Equal(t, "api", r.URL.Query().Get("query"))
		assert.Equal(t, "dash-db", r.URL.Query().Get("type"))
		assert.Equal(t, "prod", r.URL.Query().Get("tag"))

		writeJSON(t, w, http.StatusOK, []map[string]any{
			{"uid": "abc", "title": "API", "folderTitle": "Services", "url": "/d/abc", "tags": []string{"prod"}},
			{"uid": "def", "title": "Home", "url": "/d/def"},
		})
	})

	dashboards, err := client.SearchDashboards(context.Background(), "api", "prod")
	require.NoError(t, err)
	require.Len(t, dashboards, 2)

	assert.Equal(t, models.DashboardSummary{
		UID: "abc", Title: "API", Folder: "Services", URL: "/d/abc", Tags: []string{"prod"},
	}, dashboards[0])

	// Missing folder and tags fall back to defaults.
	assert.Equal(t, "General", dashboards[1].Folder)
	assert.NotNil(t, dashboards[1].Tags)
	assert.Empty(t, dashboards[1].Tags)
}

func TestSearchDashboardsWithoutTag(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hasTag := r.URL.Query()["tag"]
		assert.False(t, hasTag)
		writeJSON(t, w, http.StatusOK, []any{})
	})

	dashboards, err := client.SearchDashboards(context.Background(), "", "")
	require.NoError(t, err)
	assert.NotNil(t, dashboards)
	assert.Empty(t, dashboards)
}

func TestListingSurfacesHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"message": "invalid API key"})
	})

	_, err := client.ListDatasources(context.Background())
	require.Error(t, err)

	var httpErr *common.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Contains(t, httpErr.Body, "invalid API key")
}

func TestListDatasources(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/datasources", r.URL.Path)
		writeJSON(t, w, http.StatusOK, []map[string]any{
			{"id": 1, "name": "Prometheus", "type": "prometheus", "url": "http://prom:9090", "isDefault": true, "access": "proxy"},
			{"id": 2, "name": "Loki", "type": "loki", "url": "http://loki:3100"},
		})
	})

	datasources, err := client.ListDatasources(context.Background())
	require.NoError(t, err)
	require.Len(t, datasources, 2)
	assert.Equal(t, models.DatasourceSummary{
		ID: 1, Name: "Prometheus", Type: "prometheus", URL: "http://prom:9090", IsDefault: true,
	}, datasources[0])
	assert.Equal(t, "Loki", datasources[1].Name)
	assert.False(t, datasources[1].IsDefault)
}

func TestListAlertRulesAndContactPoints(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/provisioning/alert-rules":
			writeJSON(t, w, http.StatusOK, []map[string]any{
				{"uid": "r1", "title": "High CPU", "condition": "C", "folderUID": "f1"},
			})
		case "/api/v1/provisioning/contact-points":
			writeJSON(t, w, http.StatusOK, []map[string]any{
				{"name": "oncall", "type": "pagerduty", "uid": "cp1"},
				{"name": "team", "type": "slack", "uid": "cp2"},
			})
		default:
			http.NotFound(w, r)
		}
	})

	rules, err := client.ListAlertRules(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.AlertRuleSummary{
		{UID: "r1", Title: "High CPU", Condition: "C", FolderUID: "f1"},
	}, rules)

	points, err := client.ListContactPoints(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "pagerduty", points[0].Type)
	assert.Equal(t, "team", points[1].Name)
}

func TestCreateDashboard(t *testing.T) {
	var received map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/dashboards/db", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"uid": "new-uid", "url": "/d/new-uid/service", "status": "success",
		})
	})

	result, err := client.CreateDashboard(context.Background(), "Service", nil, 7, true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCreated, result.Status)
	assert.Equal(t, "new-uid", result.UID)
	assert.Equal(t, "/d/new-uid/service", result.URL)

	dashboard := received["dashboard"].(map[string]any)
	assert.Equal(t, "Service", dashboard["title"])
	assert.Equal(t, "browser", dashboard["timezone"])
	assert.EqualValues(t, 36, dashboard["schemaVersion"])
	assert.Equal(t, []any{}, dashboard["panels"])
	assert.EqualValues(t, 7, received["folderId"])
	assert.Equal(t, true, received["overwrite"])
}

func TestCreateDashboardFailureReturnsStatusCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusPreconditionFailed, map[string]string{"message": "version-mismatch"})
	})

	result, err := client.CreateDashboard(context.Background(), "Service", nil, 0, false)
	require.NoError(t, err)
	assert.True(t, result.IsError())
	assert.Equal(t, http.StatusPreconditionFailed, result.Code)
	assert.Empty(t, result.UID)
}

func TestCreatePrometheusDatasource(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "prometheus", body["type"])
		assert.Equal(t, "proxy", body["access"])
		assert.Equal(t, "http://prom:9090", body["url"])
		assert.Equal(t, false, body["isDefault"])

		writeJSON(t, w, http.StatusOK, map[string]any{
			"id": 12, "name": "Prometheus", "message": "Datasource added",
		})
	})

	result, err := client.CreatePrometheusDatasource(context.Background(), "Prometheus", "http://prom:9090", false)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCreated, result.Status)
	assert.EqualValues(t, 12, result.ID)
	assert.Equal(t, "Datasource added", result.Message)
}

func TestCreatePrometheusDatasourceConflict(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusConflict, map[string]string{"message": "data source with the same name already exists"})
	})

	result, err := client.CreatePrometheusDatasource(context.Background(), "Prometheus", "http://prom:9090", true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusError, result.Status)
	assert.Equal(t, http.StatusConflict, result.Code)
}

func TestCreateSnapshotDefaults(t *testing.T) {
	var snapshotBody map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/dashboards/uid/abc":
			writeJSON(t, w, http.StatusOK, map[string]any{
				"dashboard": map[string]any{"uid": "abc", "title": "API Latency"},
				"meta":      map[string]any{"slug": "api-latency"},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/api/snapshots":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&snapshotBody))
			writeJSON(t, w, http.StatusOK, map[string]any{
				"url": "http://grafana/dashboard/snapshot/key1", "key": "key1", "deleteKey": "del1",
			})
		default:
			http.NotFound(w, r)
		}
	})

	result, err := client.CreateSnapshot(context.Background(), "abc", "", -1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOK, result.Status)
	assert.Equal(t, "key1", result.Key)
	assert.Equal(t, "del1", result.DeleteKey)

	assert.Equal(t, "API Latency", snapshotBody["name"])
	assert.EqualValues(t, DefaultSnapshotExpiry, snapshotBody["expires"])
	assert.Equal(t, "abc", snapshotBody["dashboard"].(map[string]any)["uid"])
}

func TestCreateSnapshotExpiry(t *testing.T) {
	tests := []struct {
		name     string
		expires  int
		expected int
	}{
		{name: "zero never expires", expires: 0, expected: 0},
		{name: "explicit seconds", expires: 600, expected: 600},
		{name: "negative selects default", expires: -5, expected: DefaultSnapshotExpiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var snapshotBody map[string]any

			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodGet {
					writeJSON(t, w, http.StatusOK, map[string]any{
						"dashboard": map[string]any{"uid": "abc", "title": "API Latency"},
					})
					return
				}
				require.NoError(t, json.NewDecoder(r.Body).Decode(&snapshotBody))
				writeJSON(t, w, http.StatusOK, map[string]any{"key": "key1"})
			})

			_, err := client.CreateSnapshot(context.Background(), "abc", "", tt.expires)
			require.NoError(t, err)
			require.Contains(t, snapshotBody, "expires")
			assert.EqualValues(t, tt.expected, snapshotBody["expires"])
		})
	}
}

func TestCreateSnapshotUntitledDashboard(t *testing.T) {
	var snapshotBody map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			writeJSON(t, w, http.StatusOK, map[string]any{"dashboard": map[string]any{"uid": "abc"}})
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&snapshotBody))
		writeJSON(t, w, http.StatusOK, map[string]any{"url": "u", "key": "k", "deleteKey": "d"})
	})

	_, err := client.CreateSnapshot(context.Background(), "abc", "", 60)
	require.NoError(t, err)
	assert.Equal(t, "Snapshot", snapshotBody["name"])
	assert.EqualValues(t, 60, snapshotBody["expires"])
}

func TestCreateSnapshotMissingDashboard(t *testing.T) {
	posted := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			posted = true
		}
		writeJSON(t, w, http.StatusNotFound, map[string]string{"message": "Dashboard not found"})
	})

	_, err := client.CreateSnapshot(context.Background(), "missing", "name", 0)
	require.Error(t, err)
	assert.False(t, posted)
}

func TestListSnapshots(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dashboard/snapshots", r.URL.Path)
		writeJSON(t, w, http.StatusOK, []map[string]any{
			{"name": "API", "key": "k1", "created": "2024-01-15T10:30:00Z", "expires": "2024-01-15T11:30:00Z"},
		})
	})

	snapshots, err := client.ListSnapshots(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.SnapshotSummary{
		{Name: "API", Key: "k1", Created: "2024-01-15T10:30:00Z", Expires: "2024-01-15T11:30:00Z"},
	}, snapshots)
}

func TestCheckHealth(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]string{"database": "ok", "version": "10.2.0"})
	})

	check := client.CheckHealth(context.Background())
	assert.Equal(t, models.CheckUp, check.Status)
	assert.Empty(t, check.Error)

	down := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	check = down.CheckHealth(context.Background())
	assert.Equal(t, models.CheckDown, check.Status)
	assert.NotEmpty(t, check.Error)
}

func TestRegisteredWithProviders(t *testing.T) {
	provider, err := providers.Create(models.Grafana, models.ConnectionConfig{BaseURL: "http://localhost:3000"})
	require.NoError(t, err)
	assert.Equal(t, models.Grafana, provider.Name())
}
