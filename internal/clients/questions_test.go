package clients

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"squarebuzz/internal/domain"
)

func TestFetchQuestionsParsesAndSanitizes(t *testing.T) {
	var gotAuth, gotTheme string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotTheme = r.URL.Query().Get("theme")
		w.Write([]byte(`{"questions":[
			{"question":"q1","answer":"a1","wrongAnswers":["w1","w2","w3"],"funFact":"f1"},
			{"question":"","answer":"a2","wrongAnswers":["w1","w2","w3"]},
			{"question":"q3","answer":"a3","wrongAnswers":["w1"]},
			{"question":"q4","answer":"a4","wrongAnswers":["w1","w2","w3","w4"]}
		]}`))
	}))
	defer server.Close()

	client := NewQuestionClient(server.URL, func() string { return "tok-123" }, zerolog.Nop())
	questions, err := client.FetchQuestions(context.Background(), "history", "english", "medium", 10)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotTheme != "history" {
		t.Fatalf("expected theme query param, got %q", gotTheme)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 playable questions, got %d", len(questions))
	}
	if len(questions[1].WrongAnswers) != 3 {
		t.Fatalf("expected distractors trimmed to 3, got %d", len(questions[1].WrongAnswers))
	}
}

func TestFetchQuestionsEmptyIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"questions":[]}`))
	}))
	defer server.Close()

	client := NewQuestionClient(server.URL, nil, zerolog.Nop())
	if _, err := client.FetchQuestions(context.Background(), "t", "en", "easy", 5); !errors.Is(err, domain.ErrEmptyQuestionSet) {
		t.Fatalf("expected ErrEmptyQuestionSet, got %v", err)
	}
}

func TestFetchQuestionsMalformedNormalizesToEmptySet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"questions": "not an array"`))
	}))
	defer server.Close()

	client := NewQuestionClient(server.URL, nil, zerolog.Nop())
	if _, err := client.FetchQuestions(context.Background(), "t", "en", "easy", 5); !errors.Is(err, domain.ErrEmptyQuestionSet) {
		t.Fatalf("expected ErrEmptyQuestionSet, got %v", err)
	}
}

func TestFetchQuestionsAuthStatuses(t *testing.T) {
	for status, want := range map[int]error{
		http.StatusUnauthorized: domain.ErrSessionExpired,
		http.StatusForbidden:    domain.ErrAccessDenied,
	} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		client := NewQuestionClient(server.URL, nil, zerolog.Nop())
		if _, err := client.FetchQuestions(context.Background(), "t", "en", "easy", 5); !errors.Is(err, want) {
			t.Fatalf("status %d: expected %v, got %v", status, want, err)
		}
		server.Close()
	}
}

func TestFetchQuestionsUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewQuestionClient(server.URL, nil, zerolog.Nop())
	if _, err := client.FetchQuestions(context.Background(), "t", "en", "easy", 5); !errors.Is(err, domain.ErrEmptyQuestionSet) {
		t.Fatalf("expected failure normalized to ErrEmptyQuestionSet, got %v", err)
	}
}
