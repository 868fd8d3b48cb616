// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/samhaengsi/broker"
	"github.com/danielhkuo/samhaengsi/cliparse"
	"github.com/danielhkuo/samhaengsi/db"
	"github.com/danielhkuo/samhaengsi/models"
	"github.com/danielhkuo/samhaengsi/store"
)

// TestAdminPassword is the admin password in GetTestConfig.
const TestAdminPassword = "test-admin-password"

// SetupTestStore returns a SQL store on a fresh in-memory sqlite database
// with the full schema. The connection closes when the test ends.
func SetupTestStore(t *testing.T) *store.SQL {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// every connection to :memory: is a separate database
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return store.NewSQL(conn, store.DialectSQLite, broker.NewLocal())
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		DatabaseType:     cliparse.DatabaseSQLite,
		DatabaseURL:      ":memory:",
		AdminPassword:    TestAdminPassword,
		FeaturedCategory: models.CategorySpring,
		Suggestions:      append([]string(nil), cliparse.DefaultSuggestions...),
		TimeZone:         "UTC",
		AutoplayInterval: time.Hour,
		Notifier:         cliparse.NotifierLocal,
		LogLevel:         "error",
	}
}

// AdminHeaders returns request headers carrying the test admin password.
func AdminHeaders() map[string]string {
	return map[string]string{"X-Admin-Password": TestAdminPassword}
}

// CreateTestTopic adds a topic to the pool and returns it
func CreateTestTopic(t *testing.T, st store.Topics, word, category string) models.Topic {
	t.Helper()

	created, err := st.CreateTopic(context.Background(), models.Topic{Word: word, Category: category})
	if err != nil {
		t.Fatalf("Failed to create test topic: %v", err)
	}
	return created
}

// CreateTestPoem stores a poem without validating it
func CreateTestPoem(t *testing.T, st store.Poems, topic string, lines ...string) models.Poem {
	t.Helper()

	created, err := st.CreatePoem(context.Background(), models.Poem{Topic: topic, Lines: lines})
	if err != nil {
		t.Fatalf("Failed to create test poem: %v", err)
	}
	return created
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
