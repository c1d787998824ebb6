package caption

import (
	"context"
	"errors"
	"testing"
)

type stubService struct {
	text string
	err  error
}

func (s stubService) Generate(context.Context, []string, string) (string, error) {
	return s.text, s.err
}

func TestGenerateCaptionFallbacks(t *testing.T) {
	cases := []struct {
		name string
		svc  Service
		want string
	}{
		{"service error", stubService{err: errors.New("boom")}, DefaultFallback},
		{"typed service error", stubService{err: ErrService}, DefaultFallback},
		{"blank result", stubService{text: "   "}, DefaultFallback},
		{"empty result", stubService{text: ""}, DefaultFallback},
		{"usable result", stubService{text: "Nice day"}, "Nice day"},
		{"untrimmed result", stubService{text: "  Nice day\n"}, "Nice day"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorkflow(tc.svc)
			got := w.GenerateCaption(context.Background(), []string{"file:///a.jpg"}, "")
			if got != tc.want {
				t.Errorf("GenerateCaption = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGenerateCaptionCustomFallback(t *testing.T) {
	w := NewWorkflow(stubService{err: errors.New("down")}, WithFallback("Write something here."))
	if got := w.GenerateCaption(context.Background(), nil, ""); got != "Write something here." {
		t.Errorf("GenerateCaption = %q", got)
	}

	// Blank overrides keep the default; the contract requires non-empty text.
	w = NewWorkflow(stubService{err: errors.New("down")}, WithFallback("  "))
	if got := w.GenerateCaption(context.Background(), nil, ""); got != DefaultFallback {
		t.Errorf("GenerateCaption = %q, want default fallback", got)
	}
}

// countingService verifies the at-most-one-attempt contract.
type countingService struct {
	calls int
}

func (c *countingService) Generate(context.Context, []string, string) (string, error) {
	c.calls++
	return "", errors.New("always failing")
}

func TestGenerateCaptionSingleAttempt(t *testing.T) {
	svc := &countingService{}
	w := NewWorkflow(svc)
	w.GenerateCaption(context.Background(), []string{"file:///a.jpg"}, "sunset")
	if svc.calls != 1 {
		t.Errorf("service called %d times, want 1", svc.calls)
	}
}
