// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jeranaias/parley-tui/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter renders a conversation transcript to indented JSON.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// jsonDocument is the exported JSON shape.
type jsonDocument struct {
	Title      string        `json:"title"`
	Folder     string        `json:"folder"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	ExportedAt time.Time     `json:"exported_at"`
	Messages   []jsonMessage `json:"messages"`
}

type jsonMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Pinned    bool      `json:"pinned,omitempty"`
}

// Export renders the conversation and its turns to JSON.
func (e *JSONExporter) Export(conv model.Conversation, msgs []model.Message) ([]byte, error) {
	if len(msgs) == 0 {
		return nil, fmt.Errorf("conversation has no messages")
	}

	doc := jsonDocument{
		Title:      conv.Title,
		Folder:     conv.Folder,
		CreatedAt:  conv.CreatedAt,
		UpdatedAt:  conv.UpdatedAt,
		ExportedAt: time.Now(),
		Messages:   make([]jsonMessage, 0, len(msgs)),
	}
	for _, msg := range msgs {
		doc.Messages = append(doc.Messages, jsonMessage{
			ID:        msg.ID,
			Role:      string(msg.Role),
			Text:      msg.Text,
			CreatedAt: msg.CreatedAt,
			Pinned:    msg.Pinned,
		})
	}

	return json.MarshalIndent(doc, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
