// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/danielhkuo/samhaengsi/auth"
	"github.com/danielhkuo/samhaengsi/middleware"
	"github.com/danielhkuo/samhaengsi/models"
	"github.com/danielhkuo/samhaengsi/testutil"
)

// TestFullPoemWorkflow tests the complete end-to-end workflow:
// 1. Admin logs in and adds a topic
// 2. Visitor gets today's topic
// 3. Visitor validates a draft
// 4. Visitor submits the poem
// 5. The poem list shows it first
// 6. Admin deletes the topic and the pool is empty again
func TestFullPoemWorkflow(t *testing.T) {
	st := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	gate := auth.NewPasswordGate(testutil.TestAdminPassword)

	topicHandler := NewTopicHandler(st, cfg, nil)
	poemHandler := NewPoemHandler(st, nil)
	adminHandler := NewAdminHandler(gate)
	createTopic := middleware.RequireAdmin(gate, topicHandler.CreateTopic)
	deleteTopic := middleware.RequireAdmin(gate, topicHandler.DeleteTopic)

	testutil.CreateTestPoem(t, st, "새싹", "새봄", "싹이 튼다")

	// Step 1: Admin logs in and adds a topic
	w := httptest.NewRecorder()
	adminHandler.Login(w, testutil.MakeRequest("POST", "/api/admin/login", models.LoginRequest{Password: testutil.TestAdminPassword}, nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("Step 1 - Login failed: %d - %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	createTopic(w, testutil.MakeRequest("POST", "/api/admin/topics", models.CreateTopicRequest{Word: "봄비"}, nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Step 1 - Expected topic creation without password to fail, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	createTopic(w, testutil.MakeRequest("POST", "/api/admin/topics", models.CreateTopicRequest{Word: " 봄비 "}, testutil.AdminHeaders()))
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Create topic failed: %d - %s", w.Code, w.Body.String())
	}
	var topic models.Topic
	testutil.AssertJSON(t, w, &topic)
	if topic.Word != "봄비" || topic.Category != cfg.FeaturedCategory {
		t.Fatalf("Step 1 - Unexpected topic: %+v", topic)
	}
	t.Logf("Step 1 - Created topic: %s", topic.ID)

	// Step 2: Today's topic is the only one in the pool
	w = httptest.NewRecorder()
	topicHandler.GetToday(w, httptest.NewRequest("GET", "/api/topics/today", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 2 - Get today failed: %d - %s", w.Code, w.Body.String())
	}
	var selection models.TopicSelectionResponse
	testutil.AssertJSON(t, w, &selection)
	if selection.Topic != "봄비" || len(selection.Lines) != 2 {
		t.Fatalf("Step 2 - Unexpected selection: %+v", selection)
	}

	// Step 3: Validate a draft, one line at a time
	draft := models.SubmitPoemRequest{Topic: selection.Topic, Lines: selection.Lines}
	draft.Lines[0] = "봄이 오면"

	w = httptest.NewRecorder()
	poemHandler.ValidatePoem(w, testutil.MakeRequest("POST", "/api/poems/validate", draft, nil))
	var check models.ValidateResponse
	testutil.AssertJSON(t, w, &check)
	if check.CanSubmit {
		t.Fatal("Step 3 - Expected half-written draft to be blocked")
	}

	draft.Lines[1] = "비가 내려요"
	w = httptest.NewRecorder()
	poemHandler.ValidatePoem(w, testutil.MakeRequest("POST", "/api/poems/validate", draft, nil))
	check = models.ValidateResponse{}
	testutil.AssertJSON(t, w, &check)
	if !check.CanSubmit {
		t.Fatalf("Step 3 - Expected complete draft to pass, got %+v", check)
	}

	// Step 4: Submit
	w = httptest.NewRecorder()
	poemHandler.CreatePoem(w, testutil.MakeRequest("POST", "/api/poems", draft, nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 4 - Submit failed: %d - %s", w.Code, w.Body.String())
	}
	var created models.Poem
	testutil.AssertJSON(t, w, &created)

	// Step 5: The new poem leads the list
	w = httptest.NewRecorder()
	poemHandler.ListPoems(w, httptest.NewRequest("GET", "/api/poems", nil))
	var list models.PoemListResponse
	testutil.AssertJSON(t, w, &list)
	if len(list.Poems) != 2 {
		t.Fatalf("Step 5 - Expected 2 poems, got %d", len(list.Poems))
	}
	if list.Poems[0].ID != created.ID || !slices.Equal(list.Poems[0].Lines, draft.Lines) {
		t.Errorf("Step 5 - Expected the submitted poem first, got %+v", list.Poems[0])
	}

	// Step 6: Delete the topic
	req := testutil.MakeRequest("DELETE", "/api/admin/topics/"+topic.ID, nil, testutil.AdminHeaders())
	req.SetPathValue("id", topic.ID)
	w = httptest.NewRecorder()
	deleteTopic(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Step 6 - Delete failed: %d - %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	topicHandler.GetToday(w, httptest.NewRequest("GET", "/api/topics/today", nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	// Poems keep their own copy of the word
	w = httptest.NewRecorder()
	poemHandler.ListPoems(w, httptest.NewRequest("GET", "/api/poems", nil))
	list = models.PoemListResponse{}
	testutil.AssertJSON(t, w, &list)
	if list.Poems[0].Topic != "봄비" {
		t.Errorf("Expected poem to outlive its topic, got %s", list.Poems[0].Topic)
	}
}
