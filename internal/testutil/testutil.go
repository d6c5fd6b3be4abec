// Package testutil provides shared assertion and request helpers for
// handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// AssertEqual fails the test if expected and actual differ.
func AssertEqual(t *testing.T, expected, actual interface{}, msg string) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

// AssertStatusCode fails the test if the recorded status differs,
// quoting the body to make mismatches diagnosable.
func AssertStatusCode(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rr.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, rr.Code, rr.Body.String())
	}
}

// AssertJSONContains decodes body as a JSON object and fails the test
// unless key holds expected. Numbers decode as float64.
func AssertJSONContains(t *testing.T, body []byte, key string, expected interface{}) {
	t.Helper()
	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("parsing JSON body %q: %v", body, err)
	}
	if decoded[key] != expected {
		t.Errorf("expected %s to be %v, got %v", key, expected, decoded[key])
	}
}

// NewTestRequest builds a request with a JSON content type.
func NewTestRequest(method, path string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewTestRequestWithJSON builds a request carrying data marshalled as
// the JSON body.
func NewTestRequestWithJSON(t *testing.T, method, path string, data interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshalling request body: %v", err)
	}
	return NewTestRequest(method, path, bytes.NewReader(body))
}
