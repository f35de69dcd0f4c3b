package typing

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodePolicySelectsTables(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CodeMode = true
	cfg.Language = " Python "
	p := NewCodePolicy(cfg)

	assert.Equal(t, "python", p.Language())
	kw, ok := p.Keyword("lambda")
	require.True(t, ok)
	assert.Equal(t, "lambda", kw)
	_, ok = p.Keyword("function")
	assert.False(t, ok)

	skel, ok := p.Skeleton("def")
	require.True(t, ok)
	assert.Equal(t, "def ():", skel)
}

func TestCodePolicyEmptyOutsideCodeMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Language = "javascript"
	p := NewCodePolicy(cfg)
	assert.Zero(t, p.KeywordCount())
	_, ok := p.Skeleton("if")
	assert.False(t, ok)
}

func TestCodePolicySkeletonsNeedAutoComplete(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CodeMode = true
	cfg.Language = "php"
	cfg.AutoComplete = false
	p := NewCodePolicy(cfg)
	assert.NotZero(t, p.KeywordCount())
	_, ok := p.Skeleton("foreach")
	assert.False(t, ok)
	assert.False(t, p.Formatting().AutoComplete)
}

func TestCodeModeDoesNotChangeOutputOrTiming(t *testing.T) {
	text := "def run(self):\n    return \"ok\" if True else None"
	plain := DefaultConfig()
	code := plain
	code.CodeMode = true
	code.Language = "python"

	kbPlain := newFakeKeyboard()
	plainTypist, plainSleeps := newTestTypist(t, plain, kbPlain, rand.New(rand.NewSource(9)))
	_, err := plainTypist.Run(context.Background(), text)
	require.NoError(t, err)

	kbCode := newFakeKeyboard()
	codeTypist, codeSleeps := newTestTypist(t, code, kbCode, rand.New(rand.NewSource(9)))
	_, err = codeTypist.Run(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, kbPlain.strokes, kbCode.strokes)
	assert.Equal(t, plainSleeps.durations, codeSleeps.durations)
	assert.Equal(t, text, string(kbCode.text))
}

type doublingPolicy struct{}

func (doublingPolicy) Expand(r rune) []rune {
	if r == 'x' {
		return []rune{'x', 'x'}
	}
	return nil
}

func TestCustomPolicyIsConsulted(t *testing.T) {
	kb := newFakeKeyboard()
	typist, _ := newTestTypist(t, DefaultConfig(), kb, rand.New(rand.NewSource(1)), WithPolicy(doublingPolicy{}))
	res, err := typist.Run(context.Background(), "axb")
	require.NoError(t, err)
	// Empty expansions fall back to the input rune.
	assert.Equal(t, "axxb", string(kb.text))
	assert.Equal(t, 4, res.Stats.Chars)
}

func TestNewPicksPolicyByMode(t *testing.T) {
	plain, _ := newTestTypist(t, DefaultConfig(), newFakeKeyboard(), rand.New(rand.NewSource(1)))
	assert.IsType(t, PassThrough{}, plain.policy)

	cfg := DefaultConfig()
	cfg.CodeMode = true
	cfg.Language = "go"
	code, _ := newTestTypist(t, cfg, newFakeKeyboard(), rand.New(rand.NewSource(1)))
	p, ok := code.policy.(*CodePolicy)
	require.True(t, ok)
	assert.Equal(t, "go", p.Language())
}
