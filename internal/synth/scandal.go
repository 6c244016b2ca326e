package synth

import (
	"fmt"
	"math"

	"github.com/pbaille/lifestore/internal/domain"
)

type celebrity struct {
	name      string
	mbti      string
	keyword   string
	birthdate string
	element   string
	profile   domain.FiveElements
}

func (s *Synthesizer) scandal(in Input, sup *domain.ScandalTheme) *domain.ScandalTheme {
	out := &domain.ScandalTheme{}
	if sup != nil {
		*out = *sup
		out.ArticleReasons = cloneStrings(sup.ArticleReasons)
	}

	candidates := lookup(celebritiesByElement, in.Analysis.MainTrait, DefaultElement)
	c := candidates[s.src.IntN(len(candidates))]

	fillString(&out.CelebrityName, func() string { return c.name })
	fillString(&out.CelebrityMBTI, func() string { return c.mbti })
	fillString(&out.CelebrityKeyword, func() string { return c.keyword })
	fillString(&out.CelebrityBirthdate, func() string { return c.birthdate })
	fillString(&out.CelebrityImageQuery, func() string { return out.CelebrityName })
	fillString(&out.CelebrityMainElement, func() string { return c.element })
	if out.CompatibilityScore == nil {
		out.CompatibilityScore = intPtr(compatibility(in.Analysis.FiveElements, c.profile))
	}

	mine := ElementKorean(in.Analysis.MainTrait)
	theirs := ElementKorean(out.CelebrityMainElement)
	fillString(&out.MatchReason, func() string {
		return fmt.Sprintf("%s 기운과 %s 기운이 서로를 채워주는 구조", mine, theirs)
	})
	fillStrings(&out.ArticleReasons, func() []string {
		return []string{
			fmt.Sprintf("오행 궁합: %s × %s", mine, theirs),
			fmt.Sprintf("MBTI 케미: %s의 '%s' 매력에 끌림", out.CelebrityMBTI, out.CelebrityKeyword),
			s.pick(scandalReasons),
		}
	})
	fillString(&out.Headline, func() string {
		return fmt.Sprintf("[단독] %s, 일반인 A씨와 열애설… \"궁합 %d%%\"", out.CelebrityName, *out.CompatibilityScore)
	})
	fillString(&out.ArticleBody, func() string {
		return fmt.Sprintf(
			"%s(%s)이(가) %s 기운의 일반인 A씨와 운명적 궁합을 보인다는 분석이 나왔다. "+
				"관계자는 \"두 사람의 사주 궁합은 %d%%로, %s\"라고 밝혔다. "+
				"소속사는 \"사실무근\"이라는 입장이지만 팬들 사이에서는 이미 \"%s\"라는 반응이 이어지고 있다.",
			out.CelebrityName, out.CelebrityMBTI, mine, *out.CompatibilityScore,
			out.MatchReason, s.pick(scandalReactions),
		)
	})
	return out
}

// compatibility maps element-profile similarity into a 60..99 score
func compatibility(user, celeb domain.FiveElements) int {
	sim := CosineSimilarity(user.Vector(), celeb.Vector())
	return min(max(60+int(math.Round(sim*39)), 60), 99)
}

// CosineSimilarity computes similarity between two vectors
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

var scandalReasons = []string{
	"서로의 부족한 기운을 정확히 보완",
	"대화 코드가 완벽하게 일치",
	"둘 다 야식 취향이 같음",
	"전생에 이미 한 번 만난 사이",
}

var scandalReactions = []string{
	"어쩐지 눈빛이 달랐다",
	"이건 운명이다",
	"A씨 누구냐",
	"사주는 과학",
}

var celebritiesByElement = map[string][]celebrity{
	"Wood": {
		{"배우 한솔잎", "INFP", "청순 감성", "1995.04.12", "Water", domain.FiveElements{Wood: 1, Fire: 1, Earth: 1, Metal: 1, Water: 4}},
		{"가수 류하람", "ENFJ", "국민 남친", "1993.09.03", "Fire", domain.FiveElements{Wood: 2, Fire: 3, Earth: 1, Metal: 1, Water: 1}},
	},
	"Fire": {
		{"아이돌 강태양", "ESTP", "무대 장인", "1998.07.21", "Wood", domain.FiveElements{Wood: 4, Fire: 2, Earth: 1, Metal: 0, Water: 1}},
		{"배우 서다온", "ISFJ", "힐링 미소", "1996.12.08", "Earth", domain.FiveElements{Wood: 1, Fire: 2, Earth: 3, Metal: 1, Water: 1}},
	},
	"Earth": {
		{"예능인 박든든", "ESFJ", "예능 치트키", "1990.03.15", "Fire", domain.FiveElements{Wood: 1, Fire: 4, Earth: 2, Metal: 1, Water: 0}},
		{"배우 윤보석", "INTJ", "차도남", "1992.10.30", "Metal", domain.FiveElements{Wood: 0, Fire: 1, Earth: 2, Metal: 4, Water: 1}},
	},
	"Metal": {
		{"가수 이바다", "ISFP", "음색 깡패", "1997.08.19", "Water", domain.FiveElements{Wood: 1, Fire: 0, Earth: 1, Metal: 2, Water: 4}},
		{"아이돌 최대지", "ENTP", "4차원 매력", "1999.01.27", "Earth", domain.FiveElements{Wood: 1, Fire: 1, Earth: 4, Metal: 1, Water: 1}},
	},
	"Water": {
		{"배우 김나무", "ENFP", "비타민", "1994.05.05", "Wood", domain.FiveElements{Wood: 4, Fire: 1, Earth: 0, Metal: 1, Water: 2}},
		{"모델 정금비", "ESTJ", "카리스마", "1991.11.11", "Metal", domain.FiveElements{Wood: 0, Fire: 1, Earth: 1, Metal: 4, Water: 2}},
	},
}
