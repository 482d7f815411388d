package insight

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/signalquiz/internal/llm"
	"github.com/abhisek/signalquiz/internal/quiz"
)

func finished(t *testing.T) Input {
	t.Helper()
	s := quiz.NewSession(quiz.DefaultBank(), quiz.Flow{}, nil)
	for !s.Done() {
		_, err := s.Answer(2)
		require.NoError(t, err)
	}
	return Input{Score: s.Score(), Category: s.Result(), Picks: s.Picks()}
}

func TestGenerate(t *testing.T) {
	m := llm.NewMock(llm.MockReply{Content: json.RawMessage(`{"headline":" You teach from experience. ","advice":"Post less, go deeper."}`)})
	svc := NewService(m, DefaultConfig())

	got, err := svc.Generate(context.Background(), finished(t))
	require.NoError(t, err)
	assert.Equal(t, "You teach from experience.", got.Headline)
	assert.Equal(t, "Post less, go deeper.", got.Advice)

	calls := m.Calls()
	require.Len(t, calls, 1)
	assert.Same(t, Schema, calls[0].Schema)
	assert.Contains(t, calls[0].Prompt, "Total: 30 of 40")
	assert.Equal(t, 10, strings.Count(calls[0].Prompt, "\n- "))
}

func TestGenerateProviderError(t *testing.T) {
	m := llm.NewMock(llm.MockReply{Err: &llm.ErrUnavailable{}})
	_, err := NewService(m, DefaultConfig()).Generate(context.Background(), finished(t))
	var un *llm.ErrUnavailable
	assert.True(t, errors.As(err, &un))
}

func TestGenerateRejectsInvalidShape(t *testing.T) {
	m := llm.NewMock(llm.MockReply{Content: json.RawMessage(`{"headline":"x"}`)})
	_, err := NewService(m, DefaultConfig()).Generate(context.Background(), finished(t))
	var inv *llm.ErrInvalidResponse
	assert.True(t, errors.As(err, &inv))
}

func TestGenerateRejectsBlankFields(t *testing.T) {
	m := llm.NewMock(llm.MockReply{Content: json.RawMessage(`{"headline":"  ","advice":"a"}`)})
	_, err := NewService(m, DefaultConfig()).Generate(context.Background(), finished(t))
	assert.Error(t, err)
}

func TestPurposeIsInsight(t *testing.T) {
	var purpose string
	p := providerFunc(func(ctx context.Context, _ llm.Request) (*llm.Response, error) {
		purpose = llm.PurposeFrom(ctx)
		return &llm.Response{Content: json.RawMessage(`{"headline":"h","advice":"a"}`)}, nil
	})
	_, err := NewService(p, DefaultConfig()).Generate(context.Background(), finished(t))
	require.NoError(t, err)
	assert.Equal(t, "insight", purpose)
}

type providerFunc func(context.Context, llm.Request) (*llm.Response, error)

func (f providerFunc) Generate(ctx context.Context, r llm.Request) (*llm.Response, error) {
	return f(ctx, r)
}
func (providerFunc) ModelID() string { return "func" }
