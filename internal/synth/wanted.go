package synth

import (
	"fmt"
	"strings"

	"github.com/pbaille/lifestore/internal/domain"
)

type wantedProfile struct {
	crimes     []string
	aliases    []string
	story      string
	actions    []string
	warning    string
	baseBounty int64
}

func (s *Synthesizer) wanted(in Input, sup *domain.WantedTheme) *domain.WantedTheme {
	out := &domain.WantedTheme{}
	if sup != nil {
		*out = *sup
		out.Crimes = cloneStrings(sup.Crimes)
		out.NotoriousActions = cloneStrings(sup.NotoriousActions)
	}

	key := resolveKey(wantedByMBTI, in.User.MBTI, DefaultMBTI)
	p := wantedByMBTI[key]

	fillStrings(&out.Crimes, func() []string { return cloneStrings(p.crimes) })
	if out.Bounty == nil {
		// base bounty scaled by 1.0x..2.0x
		out.Bounty = int64Ptr(p.baseBounty * int64(100+s.src.IntN(101)) / 100)
	}
	fillString(&out.DangerLevel, func() string { return dangerLevel(*out.Bounty) })
	fillString(&out.CriminalAlias, func() string { return s.pick(p.aliases) })
	fillString(&out.PortraitID, func() string {
		return fmt.Sprintf("%s_%02d", strings.ToLower(key), s.between(1, 4))
	})
	fillString(&out.CrimeStory, func() string { return p.story })
	fillStrings(&out.NotoriousActions, func() []string { return cloneStrings(p.actions) })
	fillString(&out.LastSeen, func() string {
		return s.pick(lookup(lastSeenByElement, in.Analysis.MainTrait, DefaultElement))
	})
	fillString(&out.SpecialWarning, func() string { return p.warning })
	fillString(&out.PosterNumber, func() string { return "NO. " + s.serial(9999, 4) })
	return out
}

// dangerLevel derives the poster's danger label from the bounty
func dangerLevel(bounty int64) string {
	switch {
	case bounty >= 1_000_000_000:
		return "EXTREMELY DANGEROUS"
	case bounty >= 500_000_000:
		return "HIGHLY DANGEROUS"
	case bounty >= 100_000_000:
		return "DANGEROUS"
	default:
		return "WANTED"
	}
}

var wantedByMBTI = map[string]wantedProfile{
	"ENTP": {
		crimes:     []string{"상습 논쟁 유발죄", "계획 무단 파기죄", "악마의 변호인 사칭죄"},
		aliases:    []string{"말빨의 무법자", "토론장의 총잡이"},
		story:      "마을 회관에서 사소한 질문 하나로 3시간짜리 토론을 일으키고, 결론이 나기 직전 유유히 사라졌다.",
		actions:    []string{"단톡방 논쟁 점화", "새 프로젝트 7개 동시 착수", "반박 불가 드립 남발"},
		warning:    "대화를 시도하지 마시오. 당신이 설득당합니다.",
		baseBounty: 500_000_000,
	},
	"ENTJ": {
		crimes:     []string{"무단 조직 장악죄", "효율 강요죄", "회의 독재죄"},
		aliases:    []string{"철의 보안관 사냥꾼", "서부의 CEO"},
		story:      "마을에 도착한 지 사흘 만에 보안관 사무소를 주식회사로 바꾸고 스스로 대표에 취임했다.",
		actions:    []string{"5개년 계획 강제 배포", "비효율 인력 즉시 해고", "주말 워크숍 소집"},
		warning:    "눈을 마주치면 업무가 배정됩니다.",
		baseBounty: 900_000_000,
	},
	"ENFP": {
		crimes:     []string{"과잉 친화 교란죄", "3일 열정 사기죄", "즉흥 여행 교사죄"},
		aliases:    []string{"웃음의 무법자", "떠돌이 햇살"},
		story:      "술집 손님 전원과 의형제를 맺은 뒤 다음 날 아침 모두의 이름을 잊은 채 다른 마을로 떠났다.",
		actions:    []string{"새 취미 무단 개설", "모르는 사람 생일파티 주최", "한밤중 고백 난사"},
		warning:    "가까이 가면 당신도 같이 떠나게 됩니다.",
		baseBounty: 300_000_000,
	},
	"ENFJ": {
		crimes:     []string{"과잉 참견죄", "감동 강요죄", "모임 무단 결성죄"},
		aliases:    []string{"서부의 카운슬러", "오지랖 보안관"},
		story:      "결투 직전의 두 총잡이를 붙잡고 밤새 상담해 결국 둘을 화해시켜 마을의 볼거리를 빼앗았다.",
		actions:    []string{"타인 연애사 개입", "단체 편지 작성 강요", "위로 폭격"},
		warning:    "고민을 털어놓지 마시오. 3시간 상담이 시작됩니다.",
		baseBounty: 350_000_000,
	},
	"INTP": {
		crimes:     []string{"현실 무단 이탈죄", "연락 두절죄", "이론 과몰입죄"},
		aliases:    []string{"방구석 현자", "침묵의 가설"},
		story:      "보안관이 체포하러 왔지만 체포의 정의에 대한 질문을 받고 고민하는 사이 사라졌다.",
		actions:    []string{"새벽 3시 위키 탐험", "답장 없이 읽기만 하기", "쓸모없는 발명품 제작"},
		warning:    "질문하지 마시오. 답이 열두 시간 동안 이어집니다.",
		baseBounty: 400_000_000,
	},
	"INTJ": {
		crimes:     []string{"인류 불신죄", "비밀 계획 은닉죄", "스몰토크 거부죄"},
		aliases:    []string{"그림자 설계자", "체스판의 유령"},
		story:      "아무도 모르는 사이 마을 전체의 물류를 재설계해 놓고, 감사 인사를 받기 전에 떠났다.",
		actions:    []string{"10년 계획 수립", "멍청한 질문 무시", "혼자 다 해버리기"},
		warning:    "그는 이미 당신의 다음 수를 알고 있습니다.",
		baseBounty: 800_000_000,
	},
	"INFP": {
		crimes:     []string{"상습 망상죄", "감성 과다 유포죄", "현실 부정죄"},
		aliases:    []string{"몽상의 방랑자", "달빛 시인"},
		story:      "현상수배 포스터를 보고 감동받아 시를 써서 보안관에게 보냈으나 본인 얼굴인 줄은 몰랐다.",
		actions:    []string{"일기장 300권 집필", "상처를 10년간 기억", "혼자 우는 밤 산책"},
		warning:    "상처 주지 마시오. 영원히 기억됩니다.",
		baseBounty: 200_000_000,
	},
	"INFJ": {
		crimes:     []string{"무단 문 닫기죄", "독심술 남용죄", "이중 생활죄"},
		aliases:    []string{"침묵의 예언자", "닫힌 문의 주인"},
		story:      "마을 사람들의 속마음을 모두 꿰뚫어 보고도 아무 말 없이 웃기만 하다가 어느 날 통째로 손절했다.",
		actions:    []string{"말없이 인연 정리", "선의의 거짓말 유포", "새벽 일기 장문 작성"},
		warning:    "문이 닫히면 다시는 열리지 않습니다.",
		baseBounty: 600_000_000,
	},
	"ESTP": {
		crimes:     []string{"무모한 행동죄", "선 실행 후 사고죄", "과속 질주죄"},
		aliases:    []string{"번개 손 총잡이", "아드레날린 키드"},
		story:      "은행을 털려고 들어갔다가 재미가 없어 대신 카지노를 털고 다음 날 전액 탕진했다.",
		actions:    []string{"일단 점프", "경고문 무시", "잔소리 듣고 즉시 도주"},
		warning:    "그가 생각하기 전에 이미 행동했습니다.",
		baseBounty: 700_000_000,
	},
	"ESTJ": {
		crimes:     []string{"규칙 강요죄", "꼰대 발언죄", "일정 독재죄"},
		aliases:    []string{"규정집 보안관", "서부의 부장님"},
		story:      "무법 마을에 도착해 하루 만에 출퇴근 기록부를 도입하고 무법자들의 지각을 단속했다.",
		actions:    []string{"체크리스트 배포", "요즘 애들 훈계", "회식 참석 의무화"},
		warning:    "지각하지 마시오. 기록됩니다.",
		baseBounty: 450_000_000,
	},
	"ESFP": {
		crimes:     []string{"풍기 문란 파티죄", "충동 구매죄", "무계획 생활죄"},
		aliases:    []string{"살롱의 무희", "파티 트레인"},
		story:      "술집 하나를 통째로 빌려 사흘 밤낮 파티를 열고, 계산서는 다음 마을로 보냈다.",
		actions:    []string{"즉석 댄스 배틀", "통장 잔고 탕진", "한밤 노래방 점거"},
		warning:    "음악이 들리면 이미 늦었습니다.",
		baseBounty: 250_000_000,
	},
	"ESFJ": {
		crimes:     []string{"눈치 과민죄", "인정 욕구 남용죄", "기념일 집착죄"},
		aliases:    []string{"마을의 어머니", "기념일의 수호자"},
		story:      "무법자 소굴에 도시락을 배달하며 모두의 안부를 챙기다 두목의 총애를 받아 소굴을 접수했다.",
		actions:    []string{"단체 선물 회비 걷기", "눈치 레이더 상시 가동", "뒷담화 정보 수집"},
		warning:    "생일을 잊지 마시오. 그녀는 잊지 않습니다.",
		baseBounty: 200_000_000,
	},
	"ISTP": {
		crimes:     []string{"감정 은닉죄", "무단 기계 분해죄", "읽씹죄"},
		aliases:    []string{"말없는 정비공", "강철의 방관자"},
		story:      "보안관의 총을 고쳐주고 수리비 대신 보안관의 말을 받아 조용히 떠났다.",
		actions:    []string{"카톡 99+ 방치", "고장 난 물건 몰래 수리", "위기 상황 혼자 해결"},
		warning:    "말을 걸어도 대답을 기대하지 마시오.",
		baseBounty: 550_000_000,
	},
	"ISTJ": {
		crimes:     []string{"변화 거부죄", "규칙 맹신죄", "재미 말살죄"},
		aliases:    []string{"원칙의 총잡이", "장부의 파수꾼"},
		story:      "마차 강도를 저지른 뒤 정확히 시간표대로 다음 마을에 도착해 영수증까지 발급했다.",
		actions:    []string{"10년째 같은 점심 메뉴", "엑셀 장부 정리", "예정 없는 약속 거절"},
		warning:    "그의 일정표에 당신은 없습니다.",
		baseBounty: 400_000_000,
	},
	"ISFP": {
		crimes:     []string{"결정 장애 방치죄", "갈등 회피죄", "집 밖 외출 거부죄"},
		aliases:    []string{"사막의 화가", "조용한 방랑자"},
		story:      "현상금 사냥꾼이 문을 두드렸지만 나가기 귀찮아 사흘 동안 집에 없는 척했다.",
		actions:    []string{"메뉴 고르다 해 지기", "감성 사진 무단 촬영", "약속 당일 취소"},
		warning:    "강요하면 도망갑니다.",
		baseBounty: 150_000_000,
	},
	"ISFJ": {
		crimes:     []string{"자기희생 중독죄", "참았다 폭발죄", "기억력 남용죄"},
		aliases:    []string{"헌신의 그림자", "조용한 수호자"},
		story:      "10년 동안 마을 사람들을 묵묵히 돌보다가 어느 날 쌓인 서운함을 장부로 정리해 공개했다.",
		actions:    []string{"남의 일 대신 하기", "서운함 장부 작성", "거절 대신 미소"},
		warning:    "그녀는 당신이 한 말을 전부 기억합니다.",
		baseBounty: 300_000_000,
	},
}

var lastSeenByElement = map[string][]string{
	"Wood":  {"숲속 오두막 근처", "묘목 시장 뒷골목"},
	"Fire":  {"불타는 살롱 앞", "대장간 화로 옆"},
	"Earth": {"황야의 흙먼지 길", "마을 곡물 창고"},
	"Metal": {"은행 금고 앞", "철도 조차장"},
	"Water": {"강가 나룻터", "비 내리는 역 플랫폼"},
}
