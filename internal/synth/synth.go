// Package synth fills missing theme fields with locally generated content.
//
// Content is table driven: each theme owns lookups keyed by MBTI code and,
// for some fields, by the dominant element. Keys missing from a table resolve
// to the table's default key, so synthesis never fails.
package synth

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/pbaille/lifestore/internal/domain"
)

const (
	// DefaultMBTI is used for codes a table has no entry for
	DefaultMBTI = "ENTP"
	// DefaultElement is used for elements a table has no entry for
	DefaultElement = "Earth"
)

// Source is the random source consumed by the synthesizer.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns an unseeded-in-practice source for production use
func NewSource() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Input is everything synthesis may draw on for one analysis result
type Input struct {
	User     domain.UserInfo
	Analysis domain.SajuAnalysis
	Supplied *domain.ThemeData

	// Top-level receipt fields of the analysis response
	ReceiptItems []domain.ReceiptItem
	TotalPrice   *int
}

// InputFrom builds an Input from an analysis response
func InputFrom(resp *domain.AnalyzeResponse) Input {
	return Input{
		User:         resp.UserInfo,
		Analysis:     resp.SajuAnalysis,
		Supplied:     resp.ThemeData,
		ReceiptItems: resp.ReceiptItems,
		TotalPrice:   resp.TotalPrice,
	}
}

// Synthesizer completes partial theme data
type Synthesizer struct {
	mu  sync.Mutex
	src Source
}

// New creates a Synthesizer drawing from src
func New(src Source) *Synthesizer {
	if src == nil {
		src = NewSource()
	}
	return &Synthesizer{src: src}
}

// Complete returns theme data with every variant fully populated.
// Supplied fields are copied unchanged; only absent ones are generated.
func (s *Synthesizer) Complete(in Input) *domain.ThemeData {
	out := &domain.ThemeData{}
	for _, id := range domain.Themes {
		s.fillInto(out, id, in)
	}
	return out
}

// Fill returns theme data where only the given theme is guaranteed complete
func (s *Synthesizer) Fill(id domain.ThemeID, in Input) *domain.ThemeData {
	out := &domain.ThemeData{}
	s.fillInto(out, id, in)
	return out
}

func (s *Synthesizer) fillInto(out *domain.ThemeData, id domain.ThemeID, in Input) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sup := in.Supplied
	if sup == nil {
		sup = &domain.ThemeData{}
	}

	switch id {
	case domain.ThemeReceipt:
		out.Receipt = s.receipt(in, sup.Receipt)
	case domain.ThemeWanted:
		out.Wanted = s.wanted(in, sup.Wanted)
	case domain.ThemeHospital:
		out.Hospital = s.hospital(in, sup.Hospital)
	case domain.ThemePastLife:
		out.PastLife = s.pastLife(in, sup.PastLife)
	case domain.ThemeLove:
		out.Love = s.love(in, sup.Love)
	case domain.ThemeMeme:
		out.Meme = s.meme(in, sup.Meme)
	case domain.ThemeChart:
		out.Chart = s.chart(in, sup.Chart)
	case domain.ThemeScandal:
		out.Scandal = s.scandal(in, sup.Scandal)
	}
}

// pick chooses one candidate uniformly
func (s *Synthesizer) pick(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	return candidates[s.src.IntN(len(candidates))]
}

// between returns an integer in [lo, hi]
func (s *Synthesizer) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.src.IntN(hi-lo+1)
}

// serial returns a zero padded decorative number in [1, max]
func (s *Synthesizer) serial(max, width int) string {
	return fmt.Sprintf("%0*d", width, s.src.IntN(max)+1)
}

// lookup resolves key in table, falling back to def
func lookup[V any](table map[string]V, key, def string) V {
	if v, ok := table[key]; ok {
		return v
	}
	return table[def]
}

// resolveKey returns key when table has it, otherwise def
func resolveKey[V any](table map[string]V, key, def string) string {
	if _, ok := table[key]; ok {
		return key
	}
	return def
}

func fillString(dst *string, gen func() string) {
	if *dst == "" {
		*dst = gen()
	}
}

func fillStrings(dst *[]string, gen func() []string) {
	if len(*dst) == 0 {
		*dst = gen()
	}
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

// ElementKorean returns the display label of an element
func ElementKorean(element string) string {
	if label, ok := elementKorean[element]; ok {
		return label
	}
	return element
}

var elementKorean = map[string]string{
	"Wood":    "목(木)",
	"Fire":    "화(火)",
	"Earth":   "토(土)",
	"Metal":   "금(金)",
	"Water":   "수(水)",
	"Unknown": "?",
}

// KnownMBTI reports whether the tables carry entries for code
func KnownMBTI(code string) bool {
	_, ok := memeByMBTI[code]
	return ok
}

// KnownElement reports whether the tables carry entries for element
func KnownElement(element string) bool {
	_, ok := wealthPatternByElement[element]
	return ok
}
