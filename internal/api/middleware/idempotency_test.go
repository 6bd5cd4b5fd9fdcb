package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestIdempotencyNoKeyPassesThrough(t *testing.T) {
	client, mock := redismock.NewClientMock()
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusCreated)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	Idempotency(client)(next).ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyGetPassesThrough(t *testing.T) {
	client, mock := redismock.NewClientMock()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	Idempotency(client)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyReplayedKeyConflicts(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectGet("idempotency:key-1").SetVal("COMPLETED")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a replayed key")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	Idempotency(client)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "true", rec.Header().Get("X-Idempotency-Hit"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyFreshKeyRuns(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectGet("idempotency:key-1").RedisNil()
	mock.ExpectSetNX("idempotency:key-1", "PROCESSING", 10*time.Second).SetVal(true)
	mock.ExpectSet("idempotency:key-1", "COMPLETED", 24*time.Hour).SetVal("OK")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	Idempotency(client)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyConcurrentLockLoses(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectGet("idempotency:key-1").RedisNil()
	mock.ExpectSetNX("idempotency:key-1", "PROCESSING", 10*time.Second).SetVal(false)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run while another request holds the key")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	Idempotency(client)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
