package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rockfall-console-backend/internal/model"
)

func TestPutSubscriptionRejectsBadBody(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/subscriptions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscriptionLifecycle(t *testing.T) {
	router, h := newTestRouter(t)
	endpoint := "https://push.example.com/sub/abc123"

	w := doJSON(router, "PUT", "/api/subscriptions", gin.H{
		"endpoint":           endpoint,
		"p256dh":             "key",
		"auth":               "secret",
		"subscribed_devices": []int64{1, 3, 99},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Device 99 does not exist and is dropped from the mapping.
	var mappings []model.SubscriptionDevice
	require.NoError(t, h.store.DB().Find(&mappings).Error)
	ids := make([]int64, len(mappings))
	for i, m := range mappings {
		ids[i] = m.DeviceID
	}
	assert.ElementsMatch(t, []int64{1, 3}, ids)

	w = doJSON(router, "GET", "/api/subscriptions?endpoint="+endpoint, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// A second put replaces the device mapping wholesale.
	w = doJSON(router, "PUT", "/api/subscriptions", gin.H{
		"endpoint":           endpoint,
		"p256dh":             "key",
		"auth":               "secret",
		"subscribed_devices": []int64{2},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, h.store.DB().Find(&mappings).Error)
	require.Len(t, mappings, 1)
	assert.Equal(t, int64(2), mappings[0].DeviceID)

	w = doJSON(router, "DELETE", "/api/subscriptions", gin.H{"endpoint": endpoint})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(router, "GET", "/api/subscriptions?endpoint="+endpoint, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
