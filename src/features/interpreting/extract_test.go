package interpreting

import (
	"errors"
	"reflect"
	"testing"

	"github.com/contre95/voicemusic/src/music"
)

func TestExtract_FencedBlock(t *testing.T) {
	songs, err := Extract("Sure! ```json\n[{\"comment\":\"x\",\"searchTerm\":\"y\"}]\n```")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []music.SongInterpretation{{Comment: "x", SearchTerm: "y"}}
	if !reflect.DeepEqual(songs, want) {
		t.Fatalf("expected %+v, got %+v", want, songs)
	}
}

func TestExtract_UntaggedFence(t *testing.T) {
	songs, err := Extract("```\n[{\"comment\":\"a\",\"searchTerm\":\"b\"}]\n```\nEnjoy!")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(songs) != 1 || songs[0].SearchTerm != "b" {
		t.Fatalf("unexpected songs %+v", songs)
	}
}

func TestExtract_ArrayInsideProse(t *testing.T) {
	text := `Here are some picks: [{"comment": "Classic", "searchTerm": "Take Five Dave Brubeck"}, {"comment": "Modal", "searchTerm": "So What Miles Davis"}] Hope you like them.`
	songs, err := Extract(text)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(songs) != 2 || songs[0].SearchTerm != "Take Five Dave Brubeck" || songs[1].SearchTerm != "So What Miles Davis" {
		t.Fatalf("unexpected songs %+v", songs)
	}
}

func TestExtract_IdempotentOnCleanJSON(t *testing.T) {
	clean := `[{"comment":"The classic Eagles rock anthem","searchTerm":"Hotel California Eagles"},{"comment":"","searchTerm":"Desperado"}]`
	songs, err := Extract(clean)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []music.SongInterpretation{
		{Comment: "The classic Eagles rock anthem", SearchTerm: "Hotel California Eagles"},
		{Comment: "", SearchTerm: "Desperado"},
	}
	if !reflect.DeepEqual(songs, want) {
		t.Fatalf("expected %+v, got %+v", want, songs)
	}
}

func TestExtract_EmptyArrayIsInvalidShape(t *testing.T) {
	if _, err := Extract("[]"); !errors.Is(err, ErrInvalidShape) {
		t.Fatalf("expected ErrInvalidShape, got %v", err)
	}
	if _, err := Extract("```json\n[]\n```"); !errors.Is(err, ErrInvalidShape) {
		t.Fatalf("expected ErrInvalidShape for fenced empty array, got %v", err)
	}
}

func TestExtract_WrongShapes(t *testing.T) {
	tests := map[string]string{
		"numbers":          `[1, 2, 3]`,
		"missing term":     `[{"comment":"no term"}]`,
		"missing comment":  `[{"searchTerm":"x"}]`,
		"empty term":       `[{"comment":"c","searchTerm":""}]`,
		"non string field": `[{"comment":5,"searchTerm":"x"}]`,
		"object":           `{"comment":"c","searchTerm":"x"}`,
		"null":             `null`,
	}
	for name, text := range tests {
		if _, err := Extract(text); !errors.Is(err, ErrInvalidShape) {
			t.Errorf("%s: expected ErrInvalidShape, got %v", name, err)
		}
	}
}

func TestExtract_NoJSON(t *testing.T) {
	if _, err := Extract("I'm sorry, I can only help with music."); !errors.Is(err, ErrMalformedJSON) {
		t.Fatalf("expected ErrMalformedJSON, got %v", err)
	}
}

func TestExtract_MultipleArraysUseGreedySpan(t *testing.T) {
	// The span runs from the first '[' to the last ']', which is not valid JSON here.
	text := `Options [a] or [{"comment":"c","searchTerm":"s"}]`
	if _, err := Extract(text); !errors.Is(err, ErrMalformedJSON) {
		t.Fatalf("expected ErrMalformedJSON, got %v", err)
	}
}

func TestExtract_BrokenFenceFallsBackToSpan(t *testing.T) {
	text := "```json\n[{\"comment\":\"c\",\"searchTerm\":\"s\"},]\n```"
	if _, err := Extract(text); !errors.Is(err, ErrMalformedJSON) {
		t.Fatalf("expected ErrMalformedJSON, got %v", err)
	}
}
