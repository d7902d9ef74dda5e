package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rockfall-console-backend/internal/api"
	"rockfall-console-backend/internal/auth"
	"rockfall-console-backend/internal/dialog"
	"rockfall-console-backend/internal/kvstore"
	"rockfall-console-backend/internal/model"
	"rockfall-console-backend/internal/registry"
	"rockfall-console-backend/internal/simsvc"
	"rockfall-console-backend/internal/task"
)

// TestConsoleLifecycle walks one operator session end to end: log in, add a
// device, upload a data file, run the drone flow against a live simulator,
// and finally remove the device behind the admin secret.
func TestConsoleLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// --- Test Setup ---

	testDB, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()
	require.NoError(t, testDB.AutoMigrate(&model.KVEntry{}, &model.PushSubscription{}, &model.SubscriptionDevice{}))

	droneSvc := simsvc.New(simsvc.DroneProfile(), time.Millisecond)
	droneServer := httptest.NewServer(simsvc.NewDroneRouter(droneSvc))
	defer droneServer.Close()

	store := kvstore.NewGormStore(testDB)
	devices := registry.NewSeeded()
	router := api.NewRouter(api.NewHandler(api.Deps{
		Registry:    devices,
		Dialogs:     dialog.NewController(),
		Store:       store,
		Session:     auth.NewSession("RockfallPrediction@gmail.com", "admin123", store),
		Verifier:    auth.NewStaticVerifier("admintime"),
		Uploader:    task.NewUploader(time.Millisecond),
		DronePoller: task.NewPoller(time.Millisecond),
		DeepPoller:  task.NewPoller(time.Millisecond),
		DroneURL:    droneServer.URL,
		AnalysisURL: "http://127.0.0.1:1",
	}), 1000, time.Minute)

	postJSON := func(method, path string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req, _ := http.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// --- Login ---
	w := postJSON("POST", "/api/login", gin.H{
		"email": "RockfallPrediction@gmail.com", "password": "admin123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// The flag survives a process restart because it lives in the database.
	loggedIn, err := auth.NewSession("", "", kvstore.NewGormStore(testDB)).LoggedIn(context.Background())
	require.NoError(t, err)
	assert.True(t, loggedIn)

	// --- Add a device ---
	w = postJSON("POST", "/api/devices", gin.H{
		"name": "Bench Radar", "type": "Ground Radar", "importType": "CSV",
		"tabs": []string{"Uploaded Files", "Table"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Device
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(7), created.ID)

	// --- Upload a data file to it ---
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "bench.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("time,mm\n09:00,0.4"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, _ := http.NewRequest("POST", "/api/devices/7/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	uw := httptest.NewRecorder()
	router.ServeHTTP(uw, req)
	require.Equal(t, http.StatusAccepted, uw.Code)

	require.Eventually(t, func() bool {
		d, ok := devices.Get(7)
		return ok && len(d.UploadedFiles) == 1
	}, time.Second, 5*time.Millisecond)

	// --- Run the drone flow against the live simulator ---
	w = postJSON("POST", "/api/devices/7/analysis", gin.H{"flow": "drone"})
	require.Equal(t, http.StatusAccepted, w.Code)
	var accepted struct {
		TaskID string `json:"taskId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &accepted))

	require.Eventually(t, func() bool {
		pw := httptest.NewRecorder()
		preq, _ := http.NewRequest("GET", "/api/analysis/"+accepted.TaskID, nil)
		router.ServeHTTP(pw, preq)
		var snap task.Snapshot
		return json.Unmarshal(pw.Body.Bytes(), &snap) == nil && snap.Complete
	}, 5*time.Second, 5*time.Millisecond)

	// --- Delete the device behind the admin secret ---
	w = postJSON("DELETE", "/api/devices/7", gin.H{"password": "not-it"})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = postJSON("DELETE", "/api/devices/7", gin.H{"password": "admintime"})
	require.Equal(t, http.StatusNoContent, w.Code)
	_, stillThere := devices.Get(7)
	assert.False(t, stillThere)

	// The seeded instruments are untouched.
	assert.Len(t, devices.List(), 6)
}
