package synth

import (
	"fmt"

	"github.com/pbaille/lifestore/internal/domain"
)

type pastLifeProfile struct {
	existence string
	identity  string
	story     string
	death     string
	karma     string
	ability   string
}

type eraSetting struct {
	era      string
	year     string
	location string
}

func (s *Synthesizer) pastLife(in Input, sup *domain.PastLifeTheme) *domain.PastLifeTheme {
	out := &domain.PastLifeTheme{}
	if sup != nil {
		*out = *sup
	}

	p := lookup(pastLifeByMBTI, in.User.MBTI, DefaultMBTI)
	eras := lookup(erasByElement, in.Analysis.MainTrait, DefaultElement)
	setting := eras[s.src.IntN(len(eras))]

	fillString(&out.Era, func() string { return setting.era })
	fillString(&out.EraYear, func() string { return setting.year })
	fillString(&out.Location, func() string { return setting.location })
	fillString(&out.Existence, func() string { return p.existence })
	fillString(&out.Identity, func() string { return p.identity })
	fillString(&out.Story, func() string { return p.story })
	fillString(&out.DeathCause, func() string { return p.death })
	fillString(&out.Karma, func() string { return p.karma })
	fillString(&out.SpecialAbility, func() string { return p.ability })
	fillString(&out.RecordNo, func() string {
		return fmt.Sprintf("AK-%s-%s", in.User.BirthDigits(), s.serial(9999, 4))
	})
	return out
}

var erasByElement = map[string][]eraSetting{
	"Wood": {
		{"선사시대", "기원전 10000년경", "울창한 원시림"},
		{"공룡시대", "약 6600만 년 전", "백악기 양치식물 숲"},
	},
	"Fire": {
		{"고대 로마", "서기 64년", "불타는 로마 시내"},
		{"산업혁명기", "1830년대", "맨체스터 방직 공장"},
	},
	"Earth": {
		{"고대 이집트", "기원전 2560년", "기자 피라미드 공사장"},
		{"조선시대", "1592년", "한양 저잣거리"},
	},
	"Metal": {
		{"중세 유럽", "1347년", "프랑스 기사단 병영"},
		{"미래", "2387년", "화성 제3 식민지"},
	},
	"Water": {
		{"빙하기", "약 2만 년 전", "얼어붙은 베링 해협"},
		{"에도시대 일본", "1688년", "에도 항구 어시장"},
	},
}

var pastLifeByMBTI = map[string]pastLifeProfile{
	"ENTP": {"인간", "궁정 광대 겸 비공식 책사", "왕 앞에서 농담으로 정책을 세 번 바꿨고, 네 번째 농담에서 추방당했다.", "말싸움 도중 흥분해서 계단에서 굴러떨어짐", "이번 생에도 입이 먼저 움직인다", "논리로 벽 뚫기"},
	"ENTJ": {"인간", "작은 섬나라의 자칭 황제", "주민 열두 명을 군대로 편성해 이웃 섬 정복을 시도했다.", "과로로 보고서 위에 쓰러짐", "이번 생도 쉬는 법을 배우러 왔다", "회의 10분 컷"},
	"ENFP": {"동물", "서커스단 인기 원숭이", "매일 다른 묘기를 개발했지만 같은 묘기는 두 번 하지 않았다.", "새로운 나무를 타보려다 추락", "이번 생에도 한 우물을 못 판다", "처음 본 사람과 절친 되기"},
	"ENFJ": {"인간", "마을 중매쟁이", "마을 커플의 80%를 이어줬지만 정작 본인은 평생 독신이었다.", "남의 결혼식 준비하다 과로", "남 챙기다 나를 잃는 카르마", "분위기 읽기"},
	"INTP": {"원소", "연금술사 실험실의 수은 한 방울", "수백 년간 플라스크 안에서 우주의 원리를 사색했다.", "실험실 청소부가 하수구에 버림", "이번 생에도 생각만 하다 끝난다", "잡지식 무한 저장"},
	"INTJ": {"인간", "탑에 은둔한 천문학자", "혼자 달력을 개정했지만 아무도 몰랐다.", "계산 실수를 발견하고 충격으로 기절", "세상은 여전히 당신을 이해 못 한다", "10수 앞 읽기"},
	"INFP": {"식물", "시인의 정원에 핀 들꽃", "매일 시인이 당신을 보며 시를 썼지만 정작 시는 다른 꽃 이야기였다.", "감성에 젖어 시들어버림", "이번 생에도 짝사랑 전문", "혼자만의 세계 창조"},
	"INFJ": {"신화적 존재", "신탁을 전하던 신전의 무녀", "모두의 미래를 봤지만 본인 앞날만 못 봤다.", "예언이 너무 정확해서 신전에서 쫓겨남", "이번 생에도 혼자 다 알고 있다", "거짓말 탐지"},
	"ESTP": {"인간", "해적선 돌격대장", "보물 지도 없이 감으로 항해해 세 번 보물을 찾고 네 번 침몰했다.", "상어와 수영 대결을 하다가 패배", "이번 생에도 일단 뛰어든다", "위기 순간 초인적 반사신경"},
	"ESTJ": {"인간", "로마 군단 백인대장", "병사들의 투구 광택까지 검사해 군단 역사상 가장 깔끔한 부대를 만들었다.", "규정에 없는 전술을 거부하다 포위됨", "이번 생에도 규칙을 만든다", "일정표 지배"},
	"ESFP": {"음식", "축제날의 꿀떡", "모든 사람의 입에서 행복을 주다 생을 마감했다.", "인기가 너무 많아 가장 먼저 먹힘", "이번 생에도 파티의 주인공", "분위기 심폐소생술"},
	"ESFJ": {"인간", "왕궁 수라간 최고 상궁", "왕부터 내시까지 모두의 입맛을 기억해 궁궐의 평화를 지켰다.", "잔치 음식 준비하다 과로", "이번 생에도 모두를 먹여 살린다", "기념일 절대 기억"},
	"ISTP": {"인간", "떠돌이 대장장이", "말 한마디 없이 마을마다 칼을 고쳐주고 사라졌다.", "실험 중 폭발", "이번 생에도 손으로 말한다", "고장 난 것 고치기"},
	"ISTJ": {"인간", "왕실 문서 보관관", "40년간 단 하나의 문서도 잃어버리지 않았다.", "문서 더미가 무너져 깔림", "이번 생에도 기록을 남긴다", "완벽한 기억력"},
	"ISFP": {"동물", "화가의 작업실 고양이", "붓을 밟고 다닌 발자국이 명화가 되었다.", "햇볕 좋은 창가에서 너무 오래 잠듦", "이번 생에도 예술혼이 살아있다", "아름다운 것 알아보기"},
	"ISFJ": {"AI 로봇", "가정용 돌봄 로봇 1호기", "주인 가족 삼대를 돌보며 한 번도 불평하지 않았다.", "배터리가 방전될 때까지 일함", "이번 생에는 자신도 돌봐야 한다", "남의 필요를 미리 알기"},
}
