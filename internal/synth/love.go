package synth

import "github.com/pbaille/lifestore/internal/domain"

func (s *Synthesizer) love(in Input, sup *domain.LoveTheme) *domain.LoveTheme {
	out := &domain.LoveTheme{}
	if sup != nil {
		*out = *sup
	}

	mbti := in.User.MBTI
	if out.Difficulty == nil {
		out.Difficulty = intPtr(lookup(loveDifficulty, mbti, DefaultMBTI))
	}
	fillString(&out.Tip, func() string { return s.pick(lookup(loveTips, mbti, DefaultMBTI)) })

	traits := lookup(loveTraits, mbti, DefaultMBTI)
	fillString(&out.Charm, func() string { return traits[0] })
	fillString(&out.Weakness, func() string { return traits[1] })
	if out.InitialLove == nil {
		out.InitialLove = intPtr(s.between(1, 3))
	}
	return out
}

// loveDifficulty is the 1..5 star conquest difficulty
var loveDifficulty = map[string]int{
	"INTJ": 5, "INTP": 5, "INFJ": 5, "ISTP": 4,
	"ENTJ": 4, "ISTJ": 4, "INFP": 4, "ISFP": 3,
	"ENTP": 3, "ENFJ": 3, "ISFJ": 3, "ESTP": 2,
	"ENFP": 2, "ESFJ": 2, "ESFP": 1, "ESTJ": 2,
}

var loveTips = map[string][]string{
	"ENTP": {"논쟁에서 일부러 져주면 호감 UP", "새로운 아이디어를 던져주세요", "지루하면 바로 도망갑니다"},
	"ENTJ": {"능력을 보여주면 관심 상승", "효율적인 데이트 코스 필수", "칭찬보다 인정이 중요"},
	"ENFP": {"관심을 많이 주세요!! 많이!!", "즉흥 이벤트 = 호감 폭발", "3일 안에 고백 타이밍 잡기"},
	"ENFJ": {"고민 상담 들어주기", "선물보다 진심 어린 말 한마디", "다른 사람 칭찬하면 질투함"},
	"INTP": {"혼자 있는 시간 존중하기", "지적 대화로 어필", "감정 표현 강요 금지"},
	"INTJ": {"먼저 다가가야 합니다", "쓸데없는 잡담 자제", "장기 계획을 함께 세우기"},
	"INFP": {"감성적인 선물 효과 만점", "이상과 꿈을 응원해주기", "상처 주면 영원히 기억함"},
	"INFJ": {"속마음을 먼저 보여주기", "1:1 대화를 선호합니다", "문 닫히면 끝... 조심!"},
	"ESTP": {"스릴 넘치는 데이트 추천", "행동으로 보여주세요", "잔소리 = 게임 오버"},
	"ESTJ": {"약속은 무조건 지키기", "명확한 의사표현 필수", "칭찬하면 의외로 약함"},
	"ESFP": {"파티나 모임에 함께 가기", "즐거운 분위기 유지", "먹을 걸 주면 조용해짐"},
	"ESFJ": {"가족과 친구 소개받으면 승리", "기념일 절대 잊지 마세요", "칭찬 많이, 관심 많이!"},
	"ISTP": {"취미 존중이 핵심", "간섭하지 않기", "행동으로 진심 표현하기"},
	"ISTJ": {"신뢰가 최우선", "일관된 모습 보여주기", "급작스러운 변화 금지"},
	"ISFP": {"예술적 감각 인정해주기", "조용한 데이트 선호", "강요하면 도망갑니다"},
	"ISFJ": {"진심 어린 감사 표현", "안정적인 모습 어필", "가끔은 리드해주세요"},
}

// loveTraits holds {charm, weakness}
var loveTraits = map[string][2]string{
	"ENTP": {"말빨 + 재치", "오래 못 붙잡음"},
	"ENTJ": {"카리스마", "무서움"},
	"ENFP": {"밝은 에너지", "변덕"},
	"ENFJ": {"따뜻한 배려", "오지랖"},
	"INTP": {"신비로움", "연락두절"},
	"INTJ": {"똑똑함", "냉정함"},
	"INFP": {"순수함", "현실도피"},
	"INFJ": {"깊은 공감", "문닫기"},
	"ESTP": {"자유로움", "바람끼(?)"},
	"ESTJ": {"듬직함", "꼰대력"},
	"ESFP": {"Fun Fun!", "계획 없음"},
	"ESFJ": {"살림 능력", "눈치 집착"},
	"ISTP": {"쿨함", "말수 적음"},
	"ISTJ": {"신뢰감", "재미없음"},
	"ISFP": {"감성", "우유부단"},
	"ISFJ": {"헌신", "자기희생"},
}
