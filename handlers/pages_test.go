// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/samhaengsi/testutil"
	"github.com/danielhkuo/samhaengsi/web"
)

func TestIndexPage(t *testing.T) {
	pages, err := web.Load()
	if err != nil {
		t.Fatal(err)
	}
	handler := NewPageHandler(pages, testutil.GetTestConfig())
	// 23:30 UTC is already the next day in Seoul, but the test config is UTC
	handler.now = func() time.Time { return time.Date(2026, time.March, 14, 23, 30, 0, 0, time.UTC) }

	w := httptest.NewRecorder()
	handler.Index(w, httptest.NewRequest("GET", "/", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	body := w.Body.String()
	if !strings.Contains(body, "2026년 03월 14일") {
		t.Error("Expected the date label in the configured time zone")
	}
	if !strings.Contains(body, "삼행시 쓰는 법") {
		t.Error("Expected the rendered guide")
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Unexpected Content-Type: %s", ct)
	}
}

func TestAdminPage(t *testing.T) {
	pages, err := web.Load()
	if err != nil {
		t.Fatal(err)
	}
	cfg := testutil.GetTestConfig()
	handler := NewPageHandler(pages, cfg)

	w := httptest.NewRecorder()
	handler.Admin(w, httptest.NewRequest("GET", "/admin", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	body := w.Body.String()
	for _, s := range cfg.Suggestions {
		if !strings.Contains(body, `data-word="`+s+`"`) {
			t.Errorf("Expected suggestion button for %s", s)
		}
	}
	for _, c := range []string{"봄", "여름", "가을", "겨울", "기타"} {
		if !strings.Contains(body, `value="`+c+`"`) {
			t.Errorf("Expected category option %s", c)
		}
	}
}
