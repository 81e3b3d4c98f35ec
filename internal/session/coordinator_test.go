// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/parley-tui/internal/client"
	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/router"
	"github.com/jeranaias/parley-tui/internal/view"
)

// echoSender answers every send with a fixed reply.
func echoSender(reply string) client.Sender {
	return client.SenderFunc(func(ctx context.Context, text, sessionID string) (string, error) {
		return reply, nil
	})
}

// =============================================================================
// SEND / APPLY LIFECYCLE
// =============================================================================

func TestSend_AppendsUserTurn(t *testing.T) {
	c := New(echoSender("ok"))
	c.StartNewChat()

	flight := c.Send("What is X?")

	require.NotEmpty(t, flight.Token)
	require.NotNil(t, flight.Context)
	assert.Equal(t, model.RoleUser, flight.UserMessage.Role)
	assert.Empty(t, flight.UserMessage.ConversationID, "new-chat turns stay untagged until answered")
	assert.Equal(t, 1, c.Messages().Len())
	assert.Equal(t, 1, c.InFlight())
}

func TestApplyReply_FirstAnswerCreatesConversation(t *testing.T) {
	c := New(echoSender("42"))
	c.StartNewChat()

	flight := c.Send("What is X?")
	reply, err := c.Dispatch(flight)
	require.NoError(t, err)

	ai, err := c.ApplyReply(flight.Token, reply)
	require.NoError(t, err)

	st := c.State()
	require.Equal(t, router.ModeActive, st.Mode)
	q1 := st.ActiveConversation
	require.NotEmpty(t, q1)

	assert.Equal(t, model.RoleAI, ai.Role)
	assert.Equal(t, q1, ai.ConversationID)

	// The answered user turn is tagged as part of the same transition.
	user, ok := c.Messages().FindByID(flight.UserMessage.ID)
	require.True(t, ok)
	assert.Equal(t, q1, user.ConversationID)

	// The dependent read immediately sees both turns - no intermediate state.
	visible := c.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, flight.UserMessage.ID, visible[0].ID)
	assert.Equal(t, ai.ID, visible[1].ID)

	assert.Equal(t, 0, c.InFlight())
}

func TestApplyReply_SecondAnswerReusesConversation(t *testing.T) {
	c := New(echoSender("answer"))
	c.StartNewChat()

	first := c.Send("What is X?")
	_, err := c.ApplyReply(first.Token, "first answer")
	require.NoError(t, err)
	q1 := c.State().ActiveConversation

	second := c.Send("And why?")
	_, err = c.ApplyReply(second.Token, "second answer")
	require.NoError(t, err)

	assert.Equal(t, q1, c.State().ActiveConversation, "answers within one surface reuse the conversation")
	assert.Equal(t, 1, c.Registry().Len(), "a conversation is never created twice for the same surface")
	assert.Len(t, c.Visible(), 4)
}

func TestApplyReply_OverlappingNewChatSends(t *testing.T) {
	c := New(echoSender("ok"))
	c.StartNewChat()

	// Two sends issued back to back, both before the first answer lands.
	f1 := c.Send("What is X?")
	f2 := c.Send("And what is Y?")
	require.Equal(t, 2, c.InFlight())

	_, err := c.ApplyReply(f1.Token, "X is a thing")
	require.NoError(t, err)
	q1 := c.State().ActiveConversation
	require.NotEmpty(t, q1)

	// The surface resolved into q1, so the still-pending turn belongs to it.
	user2, ok := c.Messages().FindByID(f2.UserMessage.ID)
	require.True(t, ok)
	assert.Equal(t, q1, user2.ConversationID, "the waiting turn is tagged when the surface resolves")

	// Its answer is live, not stale: the user never left the surface.
	ai2, err := c.ApplyReply(f2.Token, "Y is another thing")
	require.NoError(t, err)
	assert.Equal(t, q1, ai2.ConversationID)

	assert.Equal(t, 1, c.Registry().Len(), "both answers land in the one conversation")
	assert.Len(t, c.Visible(), 4)
	assert.Equal(t, 0, c.InFlight())
}

func TestApplyReply_RebindDoesNotResurrectOtherSurfaces(t *testing.T) {
	c := New(echoSender("ok"))

	// A flight abandoned on an earlier surface...
	stale := c.Send("left behind")
	c.StartNewChat()

	// ...must stay stale when a later surface resolves.
	live := c.Send("fresh question")
	_, err := c.ApplyReply(live.Token, "fresh answer")
	require.NoError(t, err)

	_, err = c.ApplyReply(stale.Token, "late reply")
	assert.ErrorIs(t, err, ErrStaleReply, "rebinding is scoped to the resolving surface's epoch")
}

func TestApplyReply_ActiveTurnTaggedImmediately(t *testing.T) {
	c := New(echoSender("ok"))
	flight := c.Send("opening")
	_, err := c.ApplyReply(flight.Token, "opening answer")
	require.NoError(t, err)
	q1 := c.State().ActiveConversation

	followUp := c.Send("follow-up")
	assert.Equal(t, q1, followUp.UserMessage.ConversationID,
		"turns composed in an active conversation are tagged on append")
}

// =============================================================================
// STALENESS TESTS
// =============================================================================

func TestApplyReply_StaleAfterStartNewChat(t *testing.T) {
	c := New(echoSender("late"))
	flight := c.Send("question on old surface")

	c.StartNewChat() // user walks away while the reply is in flight

	_, err := c.ApplyReply(flight.Token, "late reply")
	require.ErrorIs(t, err, ErrStaleReply)

	// Discarded, not applied: no assistant turn, no conversation.
	assert.Equal(t, 1, c.Messages().Len())
	assert.Equal(t, 0, c.Registry().Len())
	assert.Error(t, flight.Context.Err(), "the flight context should be cancelled")
}

func TestApplyReply_StaleAfterSwitchingConversation(t *testing.T) {
	c := New(echoSender("x"))

	// Build two conversations.
	f1 := c.Send("first question")
	_, err := c.ApplyReply(f1.Token, "first answer")
	require.NoError(t, err)
	q1 := c.State().ActiveConversation

	c.StartNewChat()
	f2 := c.Send("second question")
	_, err = c.ApplyReply(f2.Token, "second answer")
	require.NoError(t, err)
	q2 := c.State().ActiveConversation
	require.NotEqual(t, q1, q2)

	// A reply still in flight for q2 while the user jumps back to q1.
	inFlight := c.Send("q2 follow-up")
	_, ok := c.ActivateConversation(q1)
	require.True(t, ok)

	_, err = c.ApplyReply(inFlight.Token, "q2 late reply")
	assert.ErrorIs(t, err, ErrStaleReply)

	// Re-activating q2 does not resurrect the taken flight.
	c.ActivateConversation(q2)
	_, err = c.ApplyReply(inFlight.Token, "q2 late reply")
	assert.ErrorIs(t, err, ErrStaleReply, "a taken token can never be applied")
}

func TestApplyReply_StaleAfterDeletingActiveConversation(t *testing.T) {
	c := New(echoSender("x"))
	f1 := c.Send("question")
	_, err := c.ApplyReply(f1.Token, "answer")
	require.NoError(t, err)
	q1 := c.State().ActiveConversation

	pendingFlight := c.Send("follow-up")
	c.DeleteConversation(q1)

	assert.Equal(t, router.ModeNewChat, c.State().Mode)
	_, err = c.ApplyReply(pendingFlight.Token, "late")
	assert.ErrorIs(t, err, ErrStaleReply)
	assert.Error(t, pendingFlight.Context.Err())
}

func TestApplyError(t *testing.T) {
	sendFailure := errors.New("webhook unreachable")
	c := New(client.SenderFunc(func(ctx context.Context, text, sessionID string) (string, error) {
		return "", sendFailure
	}))

	flight := c.Send("doomed question")
	_, err := c.Dispatch(flight)
	require.Error(t, err)

	got := c.ApplyError(flight.Token, err)
	assert.ErrorIs(t, got, sendFailure, "live failures surface to the caller")
	assert.Equal(t, 0, c.Registry().Len(), "a failed turn never creates a conversation")

	// A stale failure is absorbed like a stale reply.
	flight2 := c.Send("also doomed")
	c.StartNewChat()
	assert.ErrorIs(t, c.ApplyError(flight2.Token, sendFailure), ErrStaleReply)
}

// =============================================================================
// SCENARIO TESTS (END TO END)
// =============================================================================

func TestScenario_QuestionLifecycle(t *testing.T) {
	c := New(echoSender("it depends"))

	// Empty session, fresh surface.
	c.StartNewChat()
	assert.Empty(t, c.Visible())

	// First answered turn creates q1.
	f := c.Send("What is X?")
	_, err := c.ApplyReply(f.Token, "X is a placeholder")
	require.NoError(t, err)
	q1 := c.State().ActiveConversation

	// A second answer in the same surface returns q1 again.
	f2 := c.Send("elaborate")
	_, err = c.ApplyReply(f2.Token, "gladly")
	require.NoError(t, err)
	assert.Equal(t, q1, c.State().ActiveConversation)

	// Deleting q1 while active falls back to new-chat mode.
	c.DeleteConversation(q1)
	assert.Equal(t, router.ModeNewChat, c.State().Mode)
	assert.Empty(t, c.State().ActiveConversation)

	// History survives the fallback.
	c.ShowAllHistory()
	assert.Len(t, c.Visible(), 4)
}

func TestScenario_ProjectFolderTagging(t *testing.T) {
	c := New(echoSender("ok"))

	c.CreateProject("Research")
	st := c.State()
	require.Equal(t, "Research", st.ActiveFolder)
	require.Equal(t, router.ModeNewChat, st.Mode)

	f := c.Send("What do rip currents do?")
	_, err := c.ApplyReply(f.Token, "they pull you out")
	require.NoError(t, err)

	conv, ok := c.Registry().Get(c.State().ActiveConversation)
	require.True(t, ok)
	assert.Equal(t, "Research", conv.Folder)

	// Opening an old history item drags the folder along.
	c.CreateProject("Cooking")
	_, ok = c.OpenHistoryItem(conv.AnchorMessageID)
	require.True(t, ok)
	assert.Equal(t, "Research", c.State().ActiveFolder)
}

func TestScenario_JumpToAcrossViews(t *testing.T) {
	c := New(echoSender("ok"))

	f1 := c.Send("first question")
	_, err := c.ApplyReply(f1.Token, "first answer")
	require.NoError(t, err)
	q1Anchor := f1.UserMessage.ID

	c.StartNewChat()
	f2 := c.Send("second question")
	_, err = c.ApplyReply(f2.Token, "second answer")
	require.NoError(t, err)

	// The first conversation's turns are not in the current view.
	_, err = c.JumpTo(q1Anchor)
	require.ErrorIs(t, err, view.ErrNotFound)

	// Caller switches view mode and retries.
	c.ShowAllHistory()
	idx, err := c.JumpTo(q1Anchor)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestSessionID_Stable(t *testing.T) {
	c := New(echoSender("ok"))
	id := c.SessionID()
	require.NotEmpty(t, id)
	assert.Equal(t, id, c.SessionID(), "the session id must be stable for the session lifetime")
}
