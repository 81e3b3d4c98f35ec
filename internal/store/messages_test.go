// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"testing"

	"github.com/jeranaias/parley-tui/internal/model"
)

// =============================================================================
// MESSAGE STORE TESTS
// =============================================================================

func TestMessageStore_AppendPreservesOrder(t *testing.T) {
	s := NewMessageStore()

	a := s.Append(model.NewUserMessage("first"))
	b := s.Append(model.NewAIMessage("second"))
	c := s.Append(model.NewUserMessage("third"))

	all := s.All()
	if len(all) != 3 {
		t.Fatalf("Len = %d, want 3", len(all))
	}
	wantOrder := []string{a.ID, b.ID, c.ID}
	for i, msg := range all {
		if msg.ID != wantOrder[i] {
			t.Errorf("All()[%d].ID = %q, want %q", i, msg.ID, wantOrder[i])
		}
	}
}

func TestMessageStore_UpdateFlags(t *testing.T) {
	s := NewMessageStore()
	m := s.Append(model.NewUserMessage("pin me"))

	updated, ok := s.UpdateFlags(m.ID, FlagPatch{Pinned: Bool(true)})
	if !ok {
		t.Fatal("UpdateFlags on known id should succeed")
	}
	if !updated.Pinned {
		t.Error("returned record should have Pinned set")
	}
	if updated.Expanded {
		t.Error("Expanded should be untouched by a pin-only patch")
	}

	stored, _ := s.FindByID(m.ID)
	if !stored.Pinned {
		t.Error("stored record should have Pinned set")
	}
	if stored.Text != "pin me" {
		t.Error("text must never change on a flag update")
	}
}

func TestMessageStore_UpdateFlagsUnknownIDIsNoOp(t *testing.T) {
	s := NewMessageStore()
	s.Append(model.NewUserMessage("only"))

	_, ok := s.UpdateFlags("msg_missing", FlagPatch{Pinned: Bool(true)})
	if ok {
		t.Error("UpdateFlags on unknown id should report false")
	}
	if len(s.Pinned()) != 0 {
		t.Error("no message should have been pinned")
	}
}

func TestMessageStore_BindConversationIsWriteOnce(t *testing.T) {
	s := NewMessageStore()
	m := s.Append(model.NewUserMessage("q"))

	if !s.BindConversation(m.ID, "conv_1") {
		t.Fatal("first bind should succeed")
	}
	if s.BindConversation(m.ID, "conv_2") {
		t.Error("rebinding a tagged message should be refused")
	}

	stored, _ := s.FindByID(m.ID)
	if stored.ConversationID != "conv_1" {
		t.Errorf("ConversationID = %q, want conv_1", stored.ConversationID)
	}

	if s.BindConversation("msg_missing", "conv_1") {
		t.Error("binding an unknown id should be a no-op")
	}
}

func TestMessageStore_Position(t *testing.T) {
	s := NewMessageStore()
	a := s.Append(model.NewUserMessage("one"))
	b := s.Append(model.NewAIMessage("two"))

	if got := s.Position(a.ID); got != 1 {
		t.Errorf("Position(a) = %d, want 1", got)
	}
	if got := s.Position(b.ID); got != 2 {
		t.Errorf("Position(b) = %d, want 2", got)
	}
	if got := s.Position("msg_missing"); got != 0 {
		t.Errorf("Position(unknown) = %d, want 0", got)
	}
}

// =============================================================================
// PIN BOARD PROJECTION TESTS
// =============================================================================

func TestMessageStore_PinnedSpansConversations(t *testing.T) {
	s := NewMessageStore()
	a := s.Append(model.NewUserMessage("in conv one"))
	s.Append(model.NewAIMessage("not pinned"))
	c := s.Append(model.NewUserMessage("in conv two"))

	s.BindConversation(a.ID, "conv_1")
	s.BindConversation(c.ID, "conv_2")
	s.UpdateFlags(a.ID, FlagPatch{Pinned: Bool(true)})
	s.UpdateFlags(c.ID, FlagPatch{Pinned: Bool(true)})

	board := s.Pinned()
	if len(board) != 2 {
		t.Fatalf("pin board size = %d, want 2", len(board))
	}
	// Store order, regardless of conversation.
	if board[0].ID != a.ID || board[1].ID != c.ID {
		t.Error("pin board should list pinned messages in store order")
	}
}

func TestMessageStore_PinBoardSizeTracksToggles(t *testing.T) {
	s := NewMessageStore()
	m := s.Append(model.NewUserMessage("toggle me"))

	before := len(s.Pinned())
	s.UpdateFlags(m.ID, FlagPatch{Pinned: Bool(true)})
	if len(s.Pinned()) != before+1 {
		t.Errorf("single pin should grow the board by exactly 1")
	}
	s.UpdateFlags(m.ID, FlagPatch{Pinned: Bool(false)})
	if len(s.Pinned()) != before {
		t.Errorf("unpin should shrink the board back to %d", before)
	}
}
