package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/msepulse/internal/logger"
	"github.com/rs/zerolog"
)

func TestToString(t *testing.T) {
	if s := toString(nil); s != "" {
		t.Fatalf("nil -> %q, want empty", s)
	}
	if s := toString("abc"); s != "abc" {
		t.Fatalf("string -> %q, want 'abc'", s)
	}
	if s := toString(123); s != "" {
		t.Fatalf("non-string -> %q, want empty", s)
	}
}

func TestRequestLogger_Fields(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "ok", status: http.StatusOK, wantLevel: "info"},
		{name: "client error", status: http.StatusNotFound, wantLevel: "warn"},
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger.Setup(&buf, zerolog.DebugLevel)
			t.Cleanup(logger.Init)

			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.Use(RequestID(), RequestLogger())
			router.GET("/companies/:ticker", func(c *gin.Context) { c.Status(tc.status) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/companies/NICO", nil))

			sc := bufio.NewScanner(&buf)
			if !sc.Scan() {
				t.Fatalf("no log line written")
			}
			var entry map[string]any
			if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
				t.Fatalf("invalid json log line: %v", err)
			}
			if entry["level"] != tc.wantLevel {
				t.Fatalf("level=%v want %s", entry["level"], tc.wantLevel)
			}
			if entry["route"] != "/companies/:ticker" || entry["path"] != "/companies/NICO" {
				t.Fatalf("unexpected route fields: %v", entry)
			}
			if entry["request_id"] != w.Header().Get(RequestIDHeader) {
				t.Fatalf("request id mismatch: %v", entry["request_id"])
			}
			if int(entry["status"].(float64)) != tc.status {
				t.Fatalf("status=%v want %d", entry["status"], tc.status)
			}
		})
	}
}
