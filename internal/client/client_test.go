// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestWebhookClient_SendSuccess(t *testing.T) {
	var gotReq sendRequest
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(sendResponse{Text: "hello back"})
	})

	c := NewWebhookClient(srv.URL)
	reply, err := c.Send(context.Background(), "hello", "sess_1")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply != "hello back" {
		t.Errorf("reply = %q", reply)
	}
	if gotReq.Text != "hello" || gotReq.SessionID != "sess_1" {
		t.Errorf("request = %+v", gotReq)
	}
}

func TestWebhookClient_ErrorMessageBecomesSendError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sendResponse{ErrorMessage: "model unavailable"})
	})

	c := NewWebhookClient(srv.URL)
	_, err := c.Send(context.Background(), "hi", "sess_1")

	var sendErr *SendError
	if !errors.As(err, &sendErr) {
		t.Fatalf("want *SendError, got %v", err)
	}
	if sendErr.Message != "model unavailable" {
		t.Errorf("message = %q", sendErr.Message)
	}
}

func TestWebhookClient_NonOKStatus(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	c := NewWebhookClient(srv.URL)
	_, err := c.Send(context.Background(), "hi", "sess_1")

	var sendErr *SendError
	if !errors.As(err, &sendErr) {
		t.Fatalf("want *SendError for non-OK status, got %v", err)
	}
}

func TestWebhookClient_ContextCancellation(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	})

	c := NewWebhookClient(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := c.Send(ctx, "hi", "sess_1"); err == nil {
		t.Fatal("Send should fail when the context is cancelled")
	}
}

func TestSenderFunc_Adapts(t *testing.T) {
	var called bool
	s := SenderFunc(func(ctx context.Context, text, sessionID string) (string, error) {
		called = true
		return "echo: " + text, nil
	})

	reply, err := s.Send(context.Background(), "ping", "sess_1")
	if err != nil || reply != "echo: ping" || !called {
		t.Errorf("SenderFunc adapter misbehaved: %q %v", reply, err)
	}
}
