package synth

import "github.com/pbaille/lifestore/internal/domain"

var chartAges = []string{"10대", "20대", "30대", "40대", "50대", "60대", "70대"}

// chartShapes are base curves per pattern, one value per age bucket
var chartShapes = map[string][]int{
	"growth":       {20, 30, 45, 55, 70, 80, 85},
	"late_bloomer": {25, 20, 30, 40, 65, 85, 90},
	"pump_dump":    {40, 85, 70, 50, 35, 30, 25},
	"volatility":   {30, 80, 25, 75, 20, 70, 40},
	"stable":       {50, 55, 60, 60, 65, 60, 60},
}

var patternKorean = map[string]string{
	"growth":       "우상향형",
	"late_bloomer": "대기만성형",
	"pump_dump":    "초년 대박형",
	"volatility":   "롤러코스터형",
	"stable":       "무난무난형",
}

var wealthPatternByElement = map[string][]string{
	"Wood":  {"growth", "late_bloomer"},
	"Fire":  {"pump_dump", "volatility"},
	"Earth": {"stable", "late_bloomer"},
	"Metal": {"growth", "stable"},
	"Water": {"volatility", "late_bloomer"},
}

var lovePatternByMBTI = map[string][]string{
	"ENTP": {"volatility", "pump_dump"},
	"ENTJ": {"late_bloomer", "stable"},
	"ENFP": {"pump_dump", "volatility"},
	"ENFJ": {"growth", "stable"},
	"INTP": {"late_bloomer"},
	"INTJ": {"late_bloomer", "growth"},
	"INFP": {"volatility", "late_bloomer"},
	"INFJ": {"stable", "late_bloomer"},
	"ESTP": {"pump_dump", "volatility"},
	"ESTJ": {"stable", "growth"},
	"ESFP": {"pump_dump"},
	"ESFJ": {"growth", "stable"},
	"ISTP": {"stable", "late_bloomer"},
	"ISTJ": {"stable"},
	"ISFP": {"volatility", "stable"},
	"ISFJ": {"growth", "stable"},
}

var wealthEvents = struct{ high, low []string }{
	high: []string{"코인 대박", "승진 러시", "부동산 로또", "사이드잡 떡상", "주식 10배"},
	low:  []string{"전세 사기", "코인 폭락", "카드값 폭탄", "퇴사 충동 실행", "친구 보증"},
}

var loveEvents = struct{ high, low []string }{
	high: []string{"운명의 상대 등장", "인생 연애 시작", "결혼 골인", "썸 대폭발", "재회 성공"},
	low:  []string{"잠수 이별", "환승 이별 당함", "솔로 만렙 달성", "연애 세포 소멸", "짝사랑 실패"},
}

func (s *Synthesizer) chart(in Input, sup *domain.ChartTheme) *domain.ChartTheme {
	out := &domain.ChartTheme{}
	if sup != nil {
		*out = *sup
		out.Data = append([]domain.ChartPoint(nil), sup.Data...)
		if len(sup.Data) == 0 {
			out.Data = nil
		}
	}

	fillString(&out.WealthPattern, func() string {
		return s.pick(lookup(wealthPatternByElement, in.Analysis.MainTrait, DefaultElement))
	})
	fillString(&out.LovePattern, func() string {
		return s.pick(lookup(lovePatternByMBTI, in.User.MBTI, DefaultMBTI))
	})
	fillString(&out.WealthPatternKorean, func() string { return patternLabel(out.WealthPattern) })
	fillString(&out.LovePatternKorean, func() string { return patternLabel(out.LovePattern) })

	if len(out.Data) == 0 {
		out.Data = s.chartData(out.WealthPattern, out.LovePattern)
	}

	wealthHi, wealthLo := extremes(out.Data, func(p domain.ChartPoint) int { return p.Wealth })
	loveHi, loveLo := extremes(out.Data, func(p domain.ChartPoint) int { return p.Love })

	fillString(&out.WealthPeakAge, func() string { return out.Data[wealthHi].Age })
	fillString(&out.WealthLowAge, func() string { return out.Data[wealthLo].Age })
	fillString(&out.LovePeakAge, func() string { return out.Data[loveHi].Age })
	fillString(&out.LoveLowAge, func() string { return out.Data[loveLo].Age })

	fillString(&out.WealthPeakEvent, func() string {
		return s.eventAt(out.Data, out.WealthPeakAge, true, wealthEvents.high)
	})
	fillString(&out.WealthLowEvent, func() string {
		return s.eventAt(out.Data, out.WealthLowAge, true, wealthEvents.low)
	})
	fillString(&out.LovePeakEvent, func() string {
		return s.eventAt(out.Data, out.LovePeakAge, false, loveEvents.high)
	})
	fillString(&out.LoveLowEvent, func() string {
		return s.eventAt(out.Data, out.LoveLowAge, false, loveEvents.low)
	})
	fillString(&out.Advice, func() string { return chartAdvice(out.WealthPattern, out.LovePattern) })
	return out
}

func (s *Synthesizer) chartData(wealthPattern, lovePattern string) []domain.ChartPoint {
	wealth := lookup(chartShapes, wealthPattern, "stable")
	love := lookup(chartShapes, lovePattern, "stable")

	points := make([]domain.ChartPoint, len(chartAges))
	for i, age := range chartAges {
		points[i] = domain.ChartPoint{
			Age:    age,
			Wealth: s.jitter(wealth[i]),
			Love:   s.jitter(love[i]),
		}
	}

	wHi, wLo := extremes(points, func(p domain.ChartPoint) int { return p.Wealth })
	lHi, lLo := extremes(points, func(p domain.ChartPoint) int { return p.Love })
	points[wHi].WealthEvent = strPtr(s.pick(wealthEvents.high))
	points[wLo].WealthEvent = strPtr(s.pick(wealthEvents.low))
	points[lHi].LoveEvent = strPtr(s.pick(loveEvents.high))
	points[lLo].LoveEvent = strPtr(s.pick(loveEvents.low))
	return points
}

// jitter moves v by up to 8 points, clamped to [0, 100]
func (s *Synthesizer) jitter(v int) int {
	v += s.src.IntN(17) - 8
	return min(max(v, 0), 100)
}

// eventAt returns the event recorded at age, or a generated one
func (s *Synthesizer) eventAt(data []domain.ChartPoint, age string, wealth bool, candidates []string) string {
	for _, p := range data {
		if p.Age != age {
			continue
		}
		if wealth && p.WealthEvent != nil && *p.WealthEvent != "" {
			return *p.WealthEvent
		}
		if !wealth && p.LoveEvent != nil && *p.LoveEvent != "" {
			return *p.LoveEvent
		}
	}
	return s.pick(candidates)
}

// extremes returns the indexes of the first maximum and first minimum
func extremes(data []domain.ChartPoint, value func(domain.ChartPoint) int) (hi, lo int) {
	for i, p := range data {
		if value(p) > value(data[hi]) {
			hi = i
		}
		if value(p) < value(data[lo]) {
			lo = i
		}
	}
	return hi, lo
}

func patternLabel(pattern string) string {
	if label, ok := patternKorean[pattern]; ok {
		return label
	}
	return pattern
}

func chartAdvice(wealth, love string) string {
	switch {
	case wealth == "late_bloomer" && love == "late_bloomer":
		return "돈도 사랑도 나중에 옵니다. 그냥 존버하세요."
	case wealth == "pump_dump" && love == "stable":
		return "젊을 때 돈 벌고, 사랑은 평생 꾸준히. 럭키!"
	case love == "pump_dump":
		return "20대 불태우고, 30대부터는 혼자가 편함."
	case wealth == "growth" && love == "growth":
		return "인생 승리자 예감. 부럽습니다."
	case wealth == "volatility":
		return "재물운 롤러코스터... 멘탈 꽉 잡으세요."
	case love == "volatility":
		return "연애도 주식처럼 등락합니다. 감정 컨트롤 필수."
	default:
		return "재물과 사랑, 둘 다 잡으려다 둘 다 놓칠 수 있어요. 선택과 집중!"
	}
}
