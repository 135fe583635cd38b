package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"thelab/config"
	"thelab/models"
	"thelab/signup"
	"thelab/web"
)

const (
	testAddress   = "localhost:8097"
	testRateLimit = 40
)

// testServer holds the sign-up server under test and a cookie-aware client.
type testServer struct {
	baseURL  string
	client   *http.Client
	accounts *httptest.Server
}

// newTestServer starts a fake account service and the web server on a test port.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	accounts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		data, err := models.DecodeSignUp(models.EncodingJSON, raw)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if data.Email == "taken@mail.com" {
			w.WriteHeader(http.StatusConflict)
			io.WriteString(w, "email already registered")
			return
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, "User successfully created")
	}))

	cfg := &config.Config{
		Address:         testAddress,
		AccountURL:      accounts.URL + "/user",
		AccountEncoding: models.EncodingJSON,
		SubmitTimeout:   5 * time.Second,
		FormVariant:     models.VariantFullName,
		RateLimit:       testRateLimit,
		LogLevel:        "info",
	}

	srv := web.NewServer(cfg, signup.New(cfg))

	// Start server in background goroutine
	go func() {
		srv.Run()
	}()

	// Wait for server to be ready
	time.Sleep(100 * time.Millisecond)

	return &testServer{
		baseURL:  "http://" + testAddress,
		client:   newClient(t),
		accounts: accounts,
	}
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	return &http.Client{Timeout: 5 * time.Second, Jar: jar}
}

func (ts *testServer) cleanup() {
	ts.accounts.Close()
}

// request makes a JSON request and returns status code and parsed JSON response
func (ts *testServer) request(client *http.Client, method, path string, body interface{}) (int, map[string]interface{}) {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, ts.baseURL+path, reqBody)
	if err != nil {
		return 0, nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)

	return resp.StatusCode, result
}

func stateOf(t *testing.T, resp map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := resp["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data map, got %v", resp)
	}
	return data
}

func (ts *testServer) fill(t *testing.T, email string) {
	t.Helper()
	values := []struct{ field, value string }{
		{"email", email},
		{"firstName", "Johnny"},
		{"surname", "Walker"},
		{"password", "secret123"},
		{"passwordConfirmation", "secret123"},
	}
	for _, v := range values {
		status, resp := ts.request(ts.client, "POST", "/api/v1/sign-up/field",
			map[string]string{"field": v.field, "value": v.value, "event": "change"})
		if status != http.StatusOK {
			t.Fatalf("set %s: expected status %d, got %d – %v", v.field, http.StatusOK, status, resp)
		}
	}
}

func TestSignUpAPI(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ts := newTestServer(t)
	defer ts.cleanup()

	t.Run("InitialState", func(t *testing.T) {
		status, resp := ts.request(ts.client, "GET", "/api/v1/sign-up/state", nil)
		if status != http.StatusOK {
			t.Fatalf("expected status %d, got %d – %v", http.StatusOK, status, resp)
		}
		state := stateOf(t, resp)
		if state["canSubmit"] != false || state["isDirty"] != false || state["isSubmitting"] != false {
			t.Errorf("unexpected initial flags: %v", state)
		}
	})

	t.Run("UnknownField", func(t *testing.T) {
		status, _ := ts.request(ts.client, "POST", "/api/v1/sign-up/field",
			map[string]string{"field": "username", "value": "johnny"})
		if status != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, status)
		}
	})

	t.Run("UnknownEvent", func(t *testing.T) {
		status, _ := ts.request(ts.client, "POST", "/api/v1/sign-up/field",
			map[string]string{"field": "email", "value": "x", "event": "focus"})
		if status != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, status)
		}
	})

	t.Run("PristineSubmitRefused", func(t *testing.T) {
		status, resp := ts.request(ts.client, "POST", "/api/v1/sign-up/submit", nil)
		if status != http.StatusUnprocessableEntity {
			t.Errorf("expected status %d, got %d – %v", http.StatusUnprocessableEntity, status, resp)
		}
		if resp["success"] != false {
			t.Errorf("expected success=false, got %v", resp["success"])
		}
	})

	t.Run("BlurRevealsError", func(t *testing.T) {
		ts.request(ts.client, "POST", "/api/v1/sign-up/field",
			map[string]string{"field": "email", "value": "john@", "event": "change"})
		status, resp := ts.request(ts.client, "POST", "/api/v1/sign-up/field",
			map[string]string{"field": "email", "event": "blur"})
		if status != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, status)
		}
		errs, _ := stateOf(t, resp)["errors"].(map[string]interface{})
		if errs["email"] != "E-mail should follow the pattern 'username@domain.TLD'" {
			t.Errorf("expected email pattern error, got %v", errs)
		}
	})

	t.Run("SubmitCreated", func(t *testing.T) {
		ts.fill(t, "new@mail.com")

		_, resp := ts.request(ts.client, "GET", "/api/v1/sign-up/state", nil)
		state := stateOf(t, resp)
		if state["canSubmit"] != true {
			t.Fatalf("expected canSubmit=true, got %v", state)
		}
		values, _ := state["values"].(map[string]interface{})
		if _, leaked := values["password"]; leaked {
			t.Error("password must not be echoed")
		}
		if values["firstName"] != "Johnny" {
			t.Errorf("firstName = %v", values["firstName"])
		}

		status, resp := ts.request(ts.client, "POST", "/api/v1/sign-up/submit", nil)
		if status != http.StatusOK {
			t.Fatalf("expected status %d, got %d – %v", http.StatusOK, status, resp)
		}
		state = stateOf(t, resp)
		if state["isDirty"] != false {
			t.Error("form should be reset after success")
		}
		notes, _ := state["notifications"].([]interface{})
		if len(notes) != 1 {
			t.Fatalf("expected one notification, got %v", state["notifications"])
		}
		note := notes[0].(map[string]interface{})
		if note["kind"] != "success" || note["message"] != "User successfully created" {
			t.Errorf("unexpected notification %v", note)
		}
	})

	t.Run("SubmitDuplicate", func(t *testing.T) {
		ts.fill(t, "taken@mail.com")

		status, resp := ts.request(ts.client, "POST", "/api/v1/sign-up/submit", nil)
		if status != http.StatusOK {
			t.Fatalf("expected status %d, got %d – %v", http.StatusOK, status, resp)
		}
		state := stateOf(t, resp)
		errs, _ := state["errors"].(map[string]interface{})
		if errs["email"] != "email already registered" {
			t.Errorf("expected conflict on email, got %v", errs)
		}
		if state["isDirty"] != true || state["canSubmit"] != false {
			t.Errorf("values should be kept and resubmit blocked: %v", state)
		}
	})

	t.Run("SessionsAreIsolated", func(t *testing.T) {
		other := newClient(t)
		_, resp := ts.request(other, "GET", "/api/v1/sign-up/state", nil)
		if stateOf(t, resp)["isDirty"] != false {
			t.Error("a new visitor should get a pristine form")
		}
	})

	t.Run("GoogleDisabled", func(t *testing.T) {
		status, _ := ts.request(ts.client, "POST", "/api/v1/sign-up/google",
			map[string]string{"credential": "a.b.c"})
		if status != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, status)
		}
	})

	t.Run("UnknownEndpoint", func(t *testing.T) {
		status, resp := ts.request(ts.client, "GET", "/api/v1/sign-up/nope", nil)
		if status != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, status)
		}
		if resp["success"] != false || resp["error"] == nil {
			t.Errorf("expected a JSON error body, got %v", resp)
		}
	})

	t.Run("RateLimitIsPerVisitor", func(t *testing.T) {
		busy := newClient(t)
		var status int
		var resp map[string]interface{}
		// The first request has no cookie yet and counts against the address
		for i := 0; i < testRateLimit+2; i++ {
			status, resp = ts.request(busy, "GET", "/api/v1/sign-up/state", nil)
		}
		if status != http.StatusTooManyRequests {
			t.Fatalf("expected status %d after %d requests, got %d", http.StatusTooManyRequests, testRateLimit+2, status)
		}
		if resp["error"] == nil {
			t.Errorf("throttled response should carry a JSON error, got %v", resp)
		}

		newcomer := newClient(t)
		for i := 0; i < 2; i++ {
			if status, resp := ts.request(newcomer, "GET", "/api/v1/sign-up/state", nil); status != http.StatusOK {
				t.Fatalf("another visitor was throttled: %d %v", status, resp)
			}
		}
	})

	t.Run("Health", func(t *testing.T) {
		status, resp := ts.request(ts.client, "GET", "/health", nil)
		if status != http.StatusOK || resp["status"] != "healthy" {
			t.Errorf("unexpected health response %d %v", status, resp)
		}
	})
}
