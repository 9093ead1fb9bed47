package llm

import (
	"context"
	"errors"
	"testing"
)

func TestMockProvider(t *testing.T) {
	mock := NewMockProvider(MockJSON(map[string]string{"summary": "a", "next_step": "b"}))
	mock.Enqueue(MockResponse{Err: errors.New("scripted")})

	resp, err := mock.Generate(context.Background(), Prompt("sys", "first", reviewSchema(), 64))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Model != "mock" || resp.StopReason != StopEnd {
		t.Errorf("got %+v", resp)
	}

	if _, err := mock.Generate(context.Background(), Request{}); err == nil || err.Error() != "scripted" {
		t.Errorf("got %v, want scripted error", err)
	}

	_, err = mock.Generate(context.Background(), Request{})
	var un *ErrProviderUnavailable
	if !errors.As(err, &un) {
		t.Errorf("got %T, want ErrProviderUnavailable on empty queue", err)
	}

	calls := mock.Calls()
	if len(calls) != 3 || calls[0].System != "sys" {
		t.Errorf("got calls %+v", calls)
	}
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(MockJSON(map[string]string{"summary": "missing next step"}))
	_, err := mock.Generate(context.Background(), Prompt("", "x", reviewSchema(), 64))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("got %T, want ErrInvalidResponse", err)
	}
}
