package typing

import "strings"

// EmissionPolicy decides which runes are emitted for one input rune. A policy
// must return at least one rune for every input to keep every character of
// the text accounted for.
type EmissionPolicy interface {
	Expand(r rune) []rune
}

// PassThrough emits every rune unchanged.
type PassThrough struct{}

// Expand implements EmissionPolicy.
func (PassThrough) Expand(r rune) []rune {
	return []rune{r}
}

// CodePolicy carries the per-language keyword and auto-complete tables
// selected by the config. The tables are looked up on demand but do not
// change what is emitted yet.
type CodePolicy struct {
	language  string
	keywords  map[string]string
	skeletons map[string]string
	toggles   Formatting
}

// Formatting groups the reserved formatting toggles.
type Formatting struct {
	AutoIndent    bool
	SmartQuotes   bool
	SmartBrackets bool
	AutoComplete  bool
	ShiftEnter    bool
}

// NewCodePolicy selects tables for cfg.Language. Outside code mode both
// tables are empty; skeletons also require AutoComplete.
func NewCodePolicy(cfg Config) *CodePolicy {
	lang := strings.ToLower(strings.TrimSpace(cfg.Language))
	p := &CodePolicy{
		language:  lang,
		keywords:  map[string]string{},
		skeletons: map[string]string{},
		toggles: Formatting{
			AutoIndent:    cfg.AutoIndent,
			SmartQuotes:   cfg.SmartQuotes,
			SmartBrackets: cfg.SmartBrackets,
			AutoComplete:  cfg.AutoComplete,
			ShiftEnter:    cfg.ShiftEnter,
		},
	}
	if !cfg.CodeMode {
		return p
	}
	for _, kw := range codeKeywords[lang] {
		p.keywords[kw] = kw
	}
	if cfg.AutoComplete {
		for construct, skeleton := range autoCompletePatterns[lang] {
			p.skeletons[construct] = skeleton
		}
	}
	return p
}

// Expand implements EmissionPolicy.
func (p *CodePolicy) Expand(r rune) []rune {
	return []rune{r}
}

// Language returns the normalized language tag.
func (p *CodePolicy) Language() string {
	return p.language
}

// Formatting returns the toggles the policy was built with.
func (p *CodePolicy) Formatting() Formatting {
	return p.toggles
}

// Keyword reports whether word is a keyword of the selected language.
func (p *CodePolicy) Keyword(word string) (string, bool) {
	kw, ok := p.keywords[word]
	return kw, ok
}

// Skeleton returns the auto-complete snippet for a construct.
func (p *CodePolicy) Skeleton(construct string) (string, bool) {
	s, ok := p.skeletons[construct]
	return s, ok
}

// KeywordCount returns the size of the selected keyword table.
func (p *CodePolicy) KeywordCount() int {
	return len(p.keywords)
}
