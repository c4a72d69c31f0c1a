package coros

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newTestServer creates an httptest server that routes requests to handler
// functions keyed by path.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers["/"+strings.TrimPrefix(r.URL.Path, "/")]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"result":  "0000",
		"message": "OK",
		"data":    data,
	}); err != nil {
		t.Fatal(err)
	}
}

// loggedInClient returns a client with a session token against the test
// server.
func loggedInClient(t *testing.T, ts *httptest.Server) *Client {
	t.Helper()
	c := NewWithBaseURL(ts.URL)
	if err := c.LoadToken(`{"access_token":"tok123","user_info":{"user_id":"u1","nickname":"Test","email":"t@example.com"}}`); err != nil {
		t.Fatal(err)
	}
	return c
}

// TestLogin verifies the login request shape (md5 password, accountType 2)
// and that the session token and user info are captured.
func TestLogin(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/account/login": func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body["account"] != "runner@example.com" {
				t.Errorf("account = %v", body["account"])
			}
			if body["accountType"] != float64(2) {
				t.Errorf("accountType = %v, want 2", body["accountType"])
			}
			// md5("secret")
			if body["pwd"] != "5ebe2294ecd0e0f08eab7690d2a6ee69" {
				t.Errorf("pwd = %v, want md5 of password", body["pwd"])
			}
			writeEnvelope(t, w, map[string]any{
				"accessToken": "tok123",
				"userId":      "u1",
				"nickname":    "Runner",
				"email":       "runner@example.com",
			})
		},
	})
	defer ts.Close()

	c := NewWithBaseURL(ts.URL)
	info, err := c.Login(context.Background(), "runner@example.com", "secret")
	if err != nil {
		t.Fatal(err)
	}
	if info.Nickname != "Runner" {
		t.Errorf("nickname = %q, want Runner", info.Nickname)
	}
	if !c.IsLoggedIn() {
		t.Error("client should be logged in after Login")
	}
}

// TestRequestAuthHeaders verifies authenticated calls send the access token
// and yfheader.
func TestRequestAuthHeaders(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/dashboard/query": func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("accessToken"); got != "tok123" {
				t.Errorf("accessToken header = %q", got)
			}
			if got := r.Header.Get("yfheader"); !strings.Contains(got, `"userId":"u1"`) {
				t.Errorf("yfheader = %q, want userId u1", got)
			}
			writeEnvelope(t, w, map[string]any{"summaryInfo": map[string]any{}})
		},
	})
	defer ts.Close()

	c := loggedInClient(t, ts)
	if _, err := c.GetDashboard(context.Background()); err != nil {
		t.Fatal(err)
	}
}

// TestRequireAuth verifies authenticated endpoints refuse to fire without a
// session.
func TestRequireAuth(t *testing.T) {
	c := NewWithBaseURL("http://unused.invalid")
	_, err := c.GetDashboard(context.Background())
	if !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn, got %v", err)
	}
}

// TestAPIErrorResult verifies a non-0000 result code surfaces as *APIError
// with the upstream message.
func TestAPIErrorResult(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/dashboard/query": func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"result":  "1001",
				"apiCode": "E100",
				"message": "token expired",
			})
		},
	})
	defer ts.Close()

	c := loggedInClient(t, ts)
	_, err := c.GetDashboard(context.Background())
	if err == nil {
		t.Fatal("expected error for non-0000 result")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Result != "1001" || !strings.Contains(apiErr.Error(), "token expired") {
		t.Errorf("unexpected APIError: %v", apiErr)
	}
}

// TestTokenRoundTrip verifies ExportToken/LoadToken restore a session.
func TestTokenRoundTrip(t *testing.T) {
	c := New("eu")
	c.accessToken = "tok456"
	c.userInfo = &UserInfo{UserID: "u9", Nickname: "N", Email: "n@example.com"}

	token, err := c.ExportToken()
	if err != nil {
		t.Fatal(err)
	}

	restored := New("eu")
	if err := restored.LoadToken(token); err != nil {
		t.Fatal(err)
	}
	if !restored.IsLoggedIn() {
		t.Error("restored client should be logged in")
	}
	if restored.UserInfo() == nil || restored.UserInfo().UserID != "u9" {
		t.Errorf("restored user info = %+v", restored.UserInfo())
	}

	restored.Logout()
	if restored.IsLoggedIn() {
		t.Error("client should be logged out")
	}
}

// TestLoadTokenInvalid verifies malformed or empty tokens are rejected.
func TestLoadTokenInvalid(t *testing.T) {
	c := New("global")
	if err := c.LoadToken("not json"); err == nil {
		t.Error("expected error for malformed token")
	}
	if err := c.LoadToken(`{"user_info":{}}`); err == nil {
		t.Error("expected error for token without access_token")
	}
}

// TestGetTrainingSchedule verifies query params for the schedule endpoint.
func TestGetTrainingSchedule(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/training/schedule/query": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("startDate") != "20260801" || q.Get("endDate") != "20260807" {
				t.Errorf("dates = %s..%s", q.Get("startDate"), q.Get("endDate"))
			}
			if q.Get("supportRestExercise") != "1" {
				t.Error("missing supportRestExercise=1")
			}
			writeEnvelope(t, w, map[string]any{"pbVersion": 3, "maxIdInPlan": "7"})
		},
	})
	defer ts.Close()

	c := loggedInClient(t, ts)
	data, err := c.GetTrainingSchedule(context.Background(), 20260801, 20260807)
	if err != nil {
		t.Fatal(err)
	}
	if data["pbVersion"] != float64(3) {
		t.Errorf("pbVersion = %v, want 3", data["pbVersion"])
	}
}

// TestDeleteActivity verifies the delete endpoint receives the activity ID
// and requires authentication.
func TestDeleteActivity(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/activity/delete": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("labelId"); got != "act-7" {
				t.Errorf("labelId = %q, want act-7", got)
			}
			writeEnvelope(t, w, map[string]any{})
		},
	})
	defer ts.Close()

	c := loggedInClient(t, ts)
	if err := c.DeleteActivity(context.Background(), "act-7"); err != nil {
		t.Fatal(err)
	}

	anon := NewWithBaseURL(ts.URL)
	if err := anon.DeleteActivity(context.Background(), "act-7"); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("got %v, want ErrNotLoggedIn", err)
	}
}

// TestAddPlanIDShapes verifies plan/add tolerates both string and numeric
// id payloads.
func TestAddPlanIDShapes(t *testing.T) {
	for _, data := range []any{"12345", 12345} {
		ts := newTestServer(t, map[string]http.HandlerFunc{
			"/training/plan/add": func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(t, w, data)
			},
		})
		c := loggedInClient(t, ts)
		id, err := c.AddPlan(context.Background(), map[string]any{})
		ts.Close()
		if err != nil {
			t.Fatal(err)
		}
		if id != "12345" {
			t.Errorf("plan id = %q, want 12345", id)
		}
	}
}
