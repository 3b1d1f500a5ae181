package rest

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/eslsoft/tutorpad/internal/adapter/mapping"
	adapterrepo "github.com/eslsoft/tutorpad/internal/adapter/repository"
	"github.com/eslsoft/tutorpad/internal/infrastructure/fixtures"
	"github.com/eslsoft/tutorpad/internal/usecase"
	"github.com/eslsoft/tutorpad/internal/usecase/backup"
	"github.com/eslsoft/tutorpad/internal/usecase/feedback"
	"github.com/eslsoft/tutorpad/internal/usecase/writing"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	fx, err := fixtures.Default()
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}

	repo := adapterrepo.NewMemoryDiaryRepository()
	diaryUC := usecase.NewDiaryUsecase(repo)
	seeds, err := fx.DiaryEntries()
	if err != nil {
		t.Fatalf("seed entries: %v", err)
	}
	if err := diaryUC.Seed(context.Background(), seeds); err != nil {
		t.Fatalf("seed: %v", err)
	}
	exporter, err := backup.NewService(repo)
	if err != nil {
		t.Fatalf("backup service: %v", err)
	}

	dispatcher, err := feedback.NewDispatcher(feedback.RuleSet{Rules: fx.Tutor.Rules, Default: fx.Tutor.Default})
	if err != nil {
		t.Fatalf("dispatcher: %v", err)
	}
	level, err := fx.Level("Intermediate")
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	tutor, err := feedback.NewTutor(dispatcher, level, fx.Tutor.Greeting, 0)
	if err != nil {
		t.Fatalf("tutor: %v", err)
	}

	timer, err := writing.NewTimer(180)
	if err != nil {
		t.Fatalf("timer: %v", err)
	}
	session := writing.NewSession("topic", fx.Writing.Feedback, timer)

	return NewRouter(
		NewDiaryHandler(diaryUC, exporter),
		NewTutorHandler(feedback.NewConversation(tutor), fx.Suggestions),
		NewWritingHandler(session),
	)
}

func do(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("unexpected health response %d %s", rec.Code, rec.Body.String())
	}
}

func TestDiaryCRUD(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/diary/entries", `{"date":"2024-01-20","category":"speaking","difficulty":"medium","notes":""}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d body %s", rec.Code, rec.Body.String())
	}
	created := decode[mapping.DiaryEntryResponse](t, rec)
	if created.ID == "" || created.CategoryLabel != "말하기" || created.DifficultyLabel != "중" {
		t.Fatalf("unexpected created entry %+v", created)
	}

	rec = do(t, router, http.MethodGet, "/api/diary/dates/2024-01-20", "")
	lookup := decode[dateLookupResponse](t, rec)
	if rec.Code != http.StatusOK || lookup.Entry == nil || lookup.Entry.ID != created.ID {
		t.Fatalf("expected created entry for 2024-01-20, got %d %+v", rec.Code, lookup)
	}

	rec = do(t, router, http.MethodPut, "/api/diary/entries/"+created.ID, `{"category":"쓰기","difficulty":"상","notes":"updated"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status %d body %s", rec.Code, rec.Body.String())
	}
	updated := decode[mapping.DiaryEntryResponse](t, rec)
	if updated.Category != "writing" || updated.Difficulty != "high" || updated.Date != "2024-01-20" {
		t.Fatalf("unexpected updated entry %+v", updated)
	}

	rec = do(t, router, http.MethodDelete, "/api/diary/entries/"+created.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", rec.Code)
	}
	rec = do(t, router, http.MethodDelete, "/api/diary/entries/"+created.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("second delete must succeed, got %d", rec.Code)
	}
	rec = do(t, router, http.MethodGet, "/api/diary/entries/"+created.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestDiaryErrors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"bad category", http.MethodPost, "/api/diary/entries", `{"date":"2024-01-20","category":"listening","difficulty":"low"}`, http.StatusBadRequest},
		{"bad date", http.MethodPost, "/api/diary/entries", `{"date":"2024-02-30","category":"reading","difficulty":"low"}`, http.StatusBadRequest},
		{"bad json", http.MethodPost, "/api/diary/entries", `{`, http.StatusBadRequest},
		{"unknown update", http.MethodPut, "/api/diary/entries/missing", `{"category":"reading","difficulty":"low"}`, http.StatusNotFound},
		{"bad lookup date", http.MethodGet, "/api/diary/dates/yesterday", "", http.StatusBadRequest},
		{"bad filter", http.MethodGet, "/api/diary/entries?filter=unknown%20%3D%3D%20'x'", "", http.StatusBadRequest},
		{"bad page", http.MethodGet, "/api/diary/entries?page_size=-1", "", http.StatusBadRequest},
		{"bad month", http.MethodGet, "/api/diary/calendar/2024/13", "", http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, router, tc.method, tc.target, tc.body)
			if rec.Code != tc.want {
				t.Fatalf("status %d, want %d (body %s)", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestDiaryListAndCalendar(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/diary/entries?order_by=date%20desc&page_size=1", "")
	list := decode[mapping.ListDiaryResponse](t, rec)
	if rec.Code != http.StatusOK || list.Total != 2 || len(list.Entries) != 1 || list.Entries[0].Date != "2024-01-16" {
		t.Fatalf("unexpected list %d %+v", rec.Code, list)
	}

	rec = do(t, router, http.MethodGet, "/api/diary/dates/2024-01-17", "")
	lookup := decode[dateLookupResponse](t, rec)
	if rec.Code != http.StatusOK || lookup.Entry != nil {
		t.Fatalf("expected no entry on 2024-01-17, got %+v", lookup)
	}

	rec = do(t, router, http.MethodGet, "/api/diary/calendar/2024/1", "")
	cal := decode[mapping.CalendarResponse](t, rec)
	if rec.Code != http.StatusOK || len(cal.Weeks) != 5 || cal.Weekdays[0] != "일" {
		t.Fatalf("unexpected calendar %d %+v", rec.Code, cal)
	}
	marked := 0
	for _, week := range cal.Weeks {
		for _, cell := range week {
			if cell.EntryID != "" {
				marked++
			}
		}
	}
	if marked != 2 || cal.Weeks[2][1].Label != "말하기" {
		t.Fatalf("expected the two seeded days to be marked, got %d / %+v", marked, cal.Weeks[2])
	}
}

func TestDiaryExport(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/diary/export", "")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "application/x-ndjson" {
		t.Fatalf("unexpected export response %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}
	if lines := strings.Count(rec.Body.String(), "\n"); lines != 3 {
		t.Fatalf("expected meta plus two entries, got %d lines", lines)
	}

	rec = do(t, router, http.MethodGet, "/api/diary/export?gzip=true", "")
	gz, err := gzip.NewReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	scanner := bufio.NewScanner(gz)
	lines := 0
	for scanner.Scan() {
		lines++
	}
	if lines != 3 {
		t.Fatalf("expected 3 compressed lines, got %d", lines)
	}
}

func TestTutorConversation(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/tutor/level", "")
	level := decode[mapping.LevelResponse](t, rec)
	if level.Level != "Intermediate" || len(level.Suggestions) == 0 {
		t.Fatalf("unexpected level %+v", level)
	}

	rec = do(t, router, http.MethodPost, "/api/tutor/messages", `{"question":"What is the present perfect?"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("ask: status %d body %s", rec.Code, rec.Body.String())
	}
	ask := decode[mapping.AskResponse](t, rec)
	if ask.Question.ID != 2 || ask.Reply.ID != 3 || ask.Reply.Role != "assistant" {
		t.Fatalf("unexpected ask response %+v", ask)
	}
	if !strings.HasPrefix(ask.Reply.HTML, "<strong>현재완료(Present Perfect)</strong>") {
		t.Fatalf("expected rendered reply, got %q", ask.Reply.HTML)
	}

	rec = do(t, router, http.MethodPost, "/api/tutor/messages", `{"question":"   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank question: status %d", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/api/tutor/messages", "")
	var transcript struct {
		Messages []mapping.MessageResponse `json:"messages"`
		Pending  bool                      `json:"pending"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &transcript); err != nil {
		t.Fatalf("decode transcript: %v", err)
	}
	if len(transcript.Messages) != 3 || transcript.Pending {
		t.Fatalf("unexpected transcript %+v", transcript)
	}
}

func TestWritingFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/writing/submit", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty submit: status %d", rec.Code)
	}

	rec = do(t, router, http.MethodPost, "/api/writing/start", "")
	snap := decode[writing.Snapshot](t, rec)
	if snap.State != writing.TimerRunning || snap.Clock != "3:00" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	rec = do(t, router, http.MethodPut, "/api/writing/text", `{"text":"Technology makes life easier"}`)
	snap = decode[writing.Snapshot](t, rec)
	if snap.WordCount != 4 {
		t.Fatalf("expected 4 words, got %+v", snap)
	}

	rec = do(t, router, http.MethodPost, "/api/writing/submit", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: status %d body %s", rec.Code, rec.Body.String())
	}
	submitted := decode[submitResponse](t, rec)
	if submitted.Feedback.Grammar == "" || submitted.Session.Feedback == nil {
		t.Fatalf("expected feedback, got %+v", submitted)
	}

	rec = do(t, router, http.MethodPost, "/api/writing/reset", "")
	snap = decode[writing.Snapshot](t, rec)
	if snap.State != writing.TimerIdle || snap.Text != "" {
		t.Fatalf("unexpected snapshot after reset %+v", snap)
	}
}
