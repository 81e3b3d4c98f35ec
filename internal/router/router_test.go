// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"testing"

	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/store"
)

func newTestRouter() (*Router, *store.ConversationRegistry, *store.FolderDirectory) {
	registry := store.NewConversationRegistry()
	folders := store.NewFolderDirectory()
	return New(registry, folders), registry, folders
}

// =============================================================================
// RECORD ANSWER TESTS
// =============================================================================

func TestRecordAnswer_CreatesExactlyOneConversation(t *testing.T) {
	rt, registry, _ := newTestRouter()
	rt.StartNewChat()

	first := rt.RecordAnswer("msg_1", "What is X?")
	if first == "" {
		t.Fatal("RecordAnswer should return the new conversation id")
	}
	if rt.State().Mode != ModeActive {
		t.Errorf("Mode = %q, want active", rt.State().Mode)
	}

	// Every subsequent answer in the same surface reuses the conversation.
	for i := 0; i < 5; i++ {
		if got := rt.RecordAnswer("msg_other", "follow-up"); got != first {
			t.Fatalf("RecordAnswer returned %q, want %q (idempotent while active)", got, first)
		}
	}
	if registry.Len() != 1 {
		t.Errorf("registry holds %d conversations, want 1", registry.Len())
	}
}

func TestRecordAnswer_TagsActiveFolder(t *testing.T) {
	rt, registry, _ := newTestRouter()
	rt.CreateProject("Research")

	if rt.State().ActiveFolder != "Research" {
		t.Fatalf("ActiveFolder = %q, want Research", rt.State().ActiveFolder)
	}
	if rt.State().Mode != ModeNewChat {
		t.Fatal("CreateProject should open a blank composing surface")
	}

	id := rt.RecordAnswer("msg_1", "question text")
	conv, _ := registry.Get(id)
	if conv.Folder != "Research" {
		t.Errorf("conversation folder = %q, want Research", conv.Folder)
	}
}

// =============================================================================
// NEW CHAT / DELETE TESTS
// =============================================================================

func TestStartNewChat_ClearsPointerAndBumpsEpoch(t *testing.T) {
	rt, registry, _ := newTestRouter()
	rt.RecordAnswer("msg_1", "q")

	before := rt.State().Epoch
	rt.StartNewChat()

	st := rt.State()
	if st.Mode != ModeNewChat || st.ActiveConversation != "" {
		t.Error("StartNewChat should clear the active-conversation pointer")
	}
	if st.Epoch == before {
		t.Error("StartNewChat should bump the epoch")
	}
	if registry.Len() != 1 {
		t.Error("StartNewChat must not touch the registry")
	}
}

func TestDeleteConversation_ActiveForcesNewChat(t *testing.T) {
	rt, registry, _ := newTestRouter()
	q1 := rt.RecordAnswer("msg_1", "What is X?")

	rt.DeleteConversation(q1)

	if rt.State().Mode != ModeNewChat {
		t.Error("deleting the active conversation should fall back to new-chat mode")
	}
	if _, ok := registry.Get(q1); ok {
		t.Error("conversation should be deleted")
	}

	// Unknown ids and repeats are silent no-ops.
	rt.DeleteConversation(q1)
	rt.DeleteConversation("conv_missing")
}

func TestDeleteConversation_InactiveKeepsState(t *testing.T) {
	rt, registry, _ := newTestRouter()
	q1 := rt.RecordAnswer("msg_1", "first")
	rt.StartNewChat()
	q2 := rt.RecordAnswer("msg_2", "second")

	rt.DeleteConversation(q1)

	st := rt.State()
	if st.Mode != ModeActive || st.ActiveConversation != q2 {
		t.Error("deleting an inactive conversation must not change routing state")
	}
	if registry.Len() != 1 {
		t.Errorf("registry holds %d conversations, want 1", registry.Len())
	}
}

// =============================================================================
// HISTORY NAVIGATION TESTS
// =============================================================================

func TestOpenHistoryItem_ActivatesAndAdoptsFolder(t *testing.T) {
	rt, _, _ := newTestRouter()
	rt.CreateProject("Research")
	q1 := rt.RecordAnswer("msg_anchor", "anchored question")

	rt.CreateProject("Cooking")
	if rt.State().ActiveFolder != "Cooking" {
		t.Fatal("setup: active folder should be Cooking")
	}

	conv, ok := rt.OpenHistoryItem("msg_anchor")
	if !ok {
		t.Fatal("OpenHistoryItem should resolve the anchor")
	}
	st := rt.State()
	if conv.ID != q1 || st.ActiveConversation != q1 {
		t.Error("OpenHistoryItem should activate the anchored conversation")
	}
	if st.ActiveFolder != "Research" {
		t.Errorf("ActiveFolder = %q, want Research (folder follows the opened conversation)", st.ActiveFolder)
	}
}

func TestOpenHistoryItem_UnknownAnchorIsNoOp(t *testing.T) {
	rt, _, _ := newTestRouter()
	rt.RecordAnswer("msg_1", "q")
	before := rt.State()

	if _, ok := rt.OpenHistoryItem("msg_not_an_anchor"); ok {
		t.Fatal("unknown anchor should not resolve")
	}
	if rt.State() != before {
		t.Error("state must be unchanged after a failed history lookup")
	}
}

func TestActivateConversation(t *testing.T) {
	rt, _, _ := newTestRouter()
	q1 := rt.RecordAnswer("msg_1", "q")
	rt.StartNewChat()

	if _, ok := rt.ActivateConversation(q1); !ok {
		t.Fatal("ActivateConversation should find the record")
	}
	if rt.State().ActiveConversation != q1 {
		t.Error("pointer should move to the activated conversation")
	}
	if _, ok := rt.ActivateConversation("conv_missing"); ok {
		t.Error("unknown id should not activate")
	}
}

// =============================================================================
// ALL-HISTORY VIEW TESTS
// =============================================================================

func TestAllHistoryView_RoundTrip(t *testing.T) {
	rt, _, _ := newTestRouter()
	q1 := rt.RecordAnswer("msg_1", "q")

	rt.ShowAllHistory()
	if rt.State().Mode != ModeAllHistory {
		t.Fatal("ShowAllHistory should switch mode")
	}
	if rt.State().ActiveConversation != q1 {
		t.Error("the pointer survives the all-history view")
	}

	rt.CloseAllHistory()
	if rt.State().Mode != ModeActive {
		t.Error("closing all-history should restore the active conversation")
	}

	rt.StartNewChat()
	rt.ShowAllHistory()
	rt.CloseAllHistory()
	if rt.State().Mode != ModeNewChat {
		t.Error("closing all-history with no selection should restore new-chat mode")
	}
}

// =============================================================================
// BINDING / STALENESS TESTS
// =============================================================================

func TestBinding_ActiveConversation(t *testing.T) {
	rt, _, _ := newTestRouter()
	q1 := rt.RecordAnswer("msg_1", "q")

	b := rt.CurrentBinding()
	if b.ConversationID != q1 {
		t.Fatalf("binding conversation = %q, want %q", b.ConversationID, q1)
	}
	if !rt.Matches(b) {
		t.Error("binding should match while the conversation stays active")
	}

	rt.StartNewChat()
	if rt.Matches(b) {
		t.Error("binding should be stale after switching to a new chat")
	}

	rt.ActivateConversation(q1)
	if !rt.Matches(b) {
		t.Error("binding should match again once the conversation is re-activated")
	}

	rt.DeleteConversation(q1)
	if rt.Matches(b) {
		t.Error("binding should be stale after the conversation is deleted")
	}
}

func TestBinding_NewChatEpoch(t *testing.T) {
	rt, _, _ := newTestRouter()
	rt.StartNewChat()

	b := rt.CurrentBinding()
	if b.ConversationID != "" {
		t.Fatal("new-chat binding should carry no conversation id")
	}
	if !rt.Matches(b) {
		t.Error("binding should match on the same new-chat surface")
	}

	rt.StartNewChat()
	if rt.Matches(b) {
		t.Error("a fresh new-chat surface should invalidate the old binding")
	}
}

// =============================================================================
// INVARIANT TESTS
// =============================================================================

func TestInvariant_ActiveImpliesRegistered(t *testing.T) {
	rt, registry, _ := newTestRouter()
	rt.RecordAnswer("msg_1", "q")

	st := rt.State()
	if st.Mode == ModeActive {
		if _, ok := registry.Get(st.ActiveConversation); !ok {
			t.Error("active conversation must exist in the registry")
		}
	}

	rt.DeleteConversation(st.ActiveConversation)
	st = rt.State()
	if st.Mode == ModeActive {
		t.Error("mode must leave active once the record is gone")
	}
}

func TestDefaultFolderEnsured(t *testing.T) {
	_, _, folders := newTestRouter()
	if !folders.Contains(model.DefaultFolder) {
		t.Errorf("router should ensure the %q folder on startup", model.DefaultFolder)
	}
}
