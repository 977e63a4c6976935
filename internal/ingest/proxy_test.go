package ingest

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/finsight-app/finsight/internal/domain"
)

func TestForwardReencodesAsBase64JSON(t *testing.T) {
	content := []byte("date,description,amount\n2025-01-02,coffee,-150\n")

	var received triggerPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.Write([]byte("workflow started"))
	}))
	defer srv.Close()

	p := NewProxy(srv.URL, srv.Client(), nil, zerolog.Nop())

	ack, err := p.Forward(context.Background(), "statement.csv", "text/csv", content)
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}

	if ack != "workflow started" {
		t.Errorf("ack = %q, want the trigger's raw body", ack)
	}
	if received.FileName != "statement.csv" {
		t.Errorf("fileName = %q, want statement.csv", received.FileName)
	}
	if received.MimeType != "text/csv" {
		t.Errorf("mimeType = %q, want text/csv", received.MimeType)
	}

	decoded, err := base64.StdEncoding.DecodeString(received.Content)
	if err != nil {
		t.Fatalf("content is not valid base64: %v", err)
	}
	if string(decoded) != string(content) {
		t.Errorf("decoded content = %q, want original bytes", decoded)
	}
}

func TestForwardDefaultsMimeType(t *testing.T) {
	var received triggerPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	p := NewProxy(srv.URL, srv.Client(), nil, zerolog.Nop())
	if _, err := p.Forward(context.Background(), "f.csv", "", []byte("x")); err != nil {
		t.Fatalf("Forward: %v", err)
	}

	if received.MimeType != "text/csv" {
		t.Errorf("mimeType = %q, want default text/csv", received.MimeType)
	}
}

func TestForwardSurfacesUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "workflow not active", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewProxy(srv.URL, srv.Client(), nil, zerolog.Nop())

	_, err := p.Forward(context.Background(), "f.csv", "text/csv", []byte("x"))
	if err == nil {
		t.Fatal("expected error for 503 response")
	}

	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("err = %T, want UpstreamError", err)
	}
	if upstream.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want 503", upstream.StatusCode)
	}
	if !strings.Contains(upstream.Body, "workflow not active") {
		t.Errorf("Body = %q, want the upstream diagnostic preserved", upstream.Body)
	}
}

func TestForwardWithoutWebhookURL(t *testing.T) {
	p := NewProxy("", nil, nil, zerolog.Nop())

	_, err := p.Forward(context.Background(), "f.csv", "text/csv", []byte("x"))

	var cfgErr *domain.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("err = %v, want ConfigError", err)
	}
}

// failingArchiver always errors; forwarding must proceed regardless.
type failingArchiver struct{ calls int }

func (a *failingArchiver) Archive(ctx context.Context, filename, mimeType string, content []byte) (string, error) {
	a.calls++
	return "", errors.New("bucket unavailable")
}

func TestForwardArchiveFailureIsNotFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	archiver := &failingArchiver{}
	p := NewProxy(srv.URL, srv.Client(), archiver, zerolog.Nop())

	ack, err := p.Forward(context.Background(), "f.csv", "text/csv", []byte("x"))
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if ack != "ok" {
		t.Errorf("ack = %q, want ok", ack)
	}
	if archiver.calls != 1 {
		t.Errorf("archiver calls = %d, want 1", archiver.calls)
	}
}
