package notification

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rockfall-console-backend/internal/model"
	"rockfall-console-backend/internal/registry"
)

type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.PushSubscription{}, &model.SubscriptionDevice{}))
	return db
}

func subscribe(t *testing.T, db *gorm.DB, endpoint string, deviceID int64) {
	require.NoError(t, db.Create(&model.PushSubscription{
		Endpoint: endpoint,
		P256DH:   "test_p256dh",
		Auth:     "test_auth",
	}).Error)
	require.NoError(t, db.Create(&model.SubscriptionDevice{
		Endpoint: endpoint,
		DeviceID: deviceID,
	}).Error)
}

func TestWorkerPool_Dispatch(t *testing.T) {
	wp := NewWorkerPool(1, newTestDB(t), nil, &webpush.Options{})

	wp.Dispatch(Job{DeviceID: 123, Event: EventAnalysisComplete})

	select {
	case job := <-wp.jobs:
		assert.Equal(t, int64(123), job.DeviceID)
		assert.Equal(t, EventAnalysisComplete, job.Event)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_SendsNotification(t *testing.T) {
	db := newTestDB(t)
	reg := registry.NewSeeded()
	wp := NewWorkerPool(1, db, reg, &webpush.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	subscribe(t, db, "https://example.com/push", 3)

	var wg sync.WaitGroup
	wg.Add(1)
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			assert.Equal(t, "https://example.com/push", sub.Endpoint)
			assert.Equal(t, "Analysis for LiDAR Scanning Unit is complete.", string(payload))
			wg.Done()
			return &http.Response{
				StatusCode: http.StatusCreated,
				Body:       io.NopCloser(bytes.NewBufferString("")),
			}, nil
		},
	}

	wp.Dispatch(Job{DeviceID: 3, Event: EventAnalysisComplete})
	wg.Wait()
}

func TestWorkerPool_FallsBackToIDWhenUnknown(t *testing.T) {
	db := newTestDB(t)
	wp := NewWorkerPool(1, db, registry.New(), &webpush.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	subscribe(t, db, "https://example.com/fallback", 42)

	var wg sync.WaitGroup
	wg.Add(1)
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			assert.Equal(t, "Device 42 was removed from the dashboard.", string(payload))
			wg.Done()
			return &http.Response{
				StatusCode: http.StatusCreated,
				Body:       io.NopCloser(bytes.NewBufferString("")),
			}, nil
		},
	}

	wp.Dispatch(Job{DeviceID: 42, Event: EventDeviceDeleted})
	wg.Wait()
}

func TestWorkerPool_DeletesExpiredSubscription(t *testing.T) {
	db := newTestDB(t)
	wp := NewWorkerPool(1, db, registry.New(), &webpush.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	subscribe(t, db, "https://example.com/expired", 5)

	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusGone,
				Body:       io.NopCloser(bytes.NewBufferString("")),
			}, nil
		},
	}

	wp.Dispatch(Job{DeviceID: 5, Event: EventAnalysisComplete})

	require.Eventually(t, func() bool {
		var count int64
		db.Model(&model.PushSubscription{}).Count(&count)
		return count == 0
	}, 2*time.Second, 10*time.Millisecond, "expired subscription should be pruned")
}
