package feedback

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/eslsoft/tutorpad/internal/entity"
)

var intermediate = entity.Level{
	Label:       "Intermediate",
	Description: "중급 수준의 학습자입니다. 기본 문법을 이해하고 있으나 복잡한 문장 구조에 어려움을 느낄 수 있습니다.",
}

const greeting = "안녕하세요! AI 영어 튜터입니다. 현재 당신의 레벨은 **{{.Level}}**입니다. {{.Description}} 영어 학습에 관한 어떤 질문이든 물어보세요!"

func newTestTutor(t *testing.T, delay time.Duration) *Tutor {
	t.Helper()
	tutor, err := NewTutor(newDefaultDispatcher(t), intermediate, greeting, delay)
	if err != nil {
		t.Fatalf("NewTutor returned error: %v", err)
	}
	return tutor
}

func TestTutorGreeting(t *testing.T) {
	tutor := newTestTutor(t, 0)
	want := "안녕하세요! AI 영어 튜터입니다. 현재 당신의 레벨은 **Intermediate**입니다. " + intermediate.Description + " 영어 학습에 관한 어떤 질문이든 물어보세요!"
	if tutor.Greeting() != want {
		t.Fatalf("unexpected greeting %q", tutor.Greeting())
	}

	if _, err := NewTutor(newDefaultDispatcher(t), intermediate, "{{.Unknown}}", 0); err == nil {
		t.Fatalf("expected error for unknown greeting field")
	}
}

func TestTutorAskZeroDelayResolvesImmediately(t *testing.T) {
	tutor := newTestTutor(t, 0)
	fut := tutor.Ask(context.Background(), "What is the present perfect?")

	select {
	case <-fut.Done():
	default:
		t.Fatalf("expected future to be resolved")
	}
	msg, err := fut.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if msg.Role != entity.RoleAssistant || !strings.HasPrefix(msg.Content, "**현재완료(Present Perfect)**") {
		t.Fatalf("unexpected reply %+v", msg)
	}
}

func TestTutorAskHonoursDelayAndCancellation(t *testing.T) {
	tutor := newTestTutor(t, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	fut := tutor.Ask(ctx, "가정법")

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer waitCancel()
	if _, err := fut.Wait(waitCtx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected reply to still be pending, got %v", err)
	}

	cancel()
	if _, err := fut.Wait(context.Background()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTutorAskRejectsBlankQuestion(t *testing.T) {
	tutor := newTestTutor(t, 0)
	if _, err := tutor.Ask(context.Background(), "  \n").Wait(context.Background()); !errors.Is(err, entity.ErrEmptyQuestion) {
		t.Fatalf("expected ErrEmptyQuestion, got %v", err)
	}
}

func TestConversationSend(t *testing.T) {
	conv := NewConversation(newTestTutor(t, 0))

	initial := conv.Messages()
	if len(initial) != 1 || initial[0].ID != 1 || initial[0].Role != entity.RoleAssistant {
		t.Fatalf("expected greeting only, got %+v", initial)
	}

	userMsg, fut, err := conv.Send(context.Background(), "어휘 학습 방법")
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if userMsg.ID != 2 || userMsg.Role != entity.RoleUser || userMsg.Content != "어휘 학습 방법" {
		t.Fatalf("unexpected user message %+v", userMsg)
	}

	reply, err := fut.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if reply.ID != 3 || !strings.HasPrefix(reply.Content, "어휘 학습 방법을 알려드리겠습니다!") {
		t.Fatalf("unexpected reply %+v", reply)
	}

	msgs := conv.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	for i, m := range msgs {
		if m.ID != i+1 {
			t.Fatalf("message %d has id %d", i, m.ID)
		}
	}
	if conv.Pending() {
		t.Fatalf("expected no pending reply")
	}
}

func TestConversationRejectsBlankAndConcurrentSends(t *testing.T) {
	conv := NewConversation(newTestTutor(t, time.Hour))

	if _, _, err := conv.Send(context.Background(), "   "); !errors.Is(err, entity.ErrEmptyQuestion) {
		t.Fatalf("expected ErrEmptyQuestion, got %v", err)
	}
	if got := len(conv.Messages()); got != 1 {
		t.Fatalf("blank input must not be recorded, got %d messages", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, fut, err := conv.Send(ctx, "번역 연습")
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if !conv.Pending() {
		t.Fatalf("expected pending reply")
	}
	if _, _, err := conv.Send(context.Background(), "another"); !errors.Is(err, entity.ErrReplyPending) {
		t.Fatalf("expected ErrReplyPending, got %v", err)
	}

	cancel()
	if _, err := fut.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected the caller's wait to end with context.Canceled, got %v", err)
	}
	if !conv.Pending() {
		t.Fatalf("reply must stay pending after the caller gives up")
	}
}

func TestConversationReplyOutlivesCallerContext(t *testing.T) {
	conv := NewConversation(newTestTutor(t, 20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	_, fut, err := conv.Send(ctx, "현재완료 시제")
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	cancel()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer waitCancel()
	reply, err := fut.Wait(waitCtx)
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if reply.Role != entity.RoleAssistant || reply.ID != 3 {
		t.Fatalf("unexpected reply %+v", reply)
	}

	msgs := conv.Messages()
	if len(msgs) != 3 || msgs[1].Role != entity.RoleUser || msgs[2].Role != entity.RoleAssistant {
		t.Fatalf("expected user question followed by reply, got %+v", msgs)
	}
	if conv.Pending() {
		t.Fatalf("expected no pending reply")
	}
	if _, _, err := conv.Send(context.Background(), "next question"); err != nil {
		t.Fatalf("Send after reply returned error: %v", err)
	}
}
