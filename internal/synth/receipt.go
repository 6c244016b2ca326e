package synth

import "github.com/pbaille/lifestore/internal/domain"

func (s *Synthesizer) receipt(in Input, sup *domain.ReceiptTheme) *domain.ReceiptTheme {
	out := &domain.ReceiptTheme{}
	if sup != nil {
		*out = *sup
		out.Items = append([]domain.ReceiptItem(nil), sup.Items...)
		if len(sup.Items) == 0 {
			out.Items = nil
		}
	}

	if len(out.Items) == 0 {
		if len(in.ReceiptItems) > 0 {
			out.Items = append([]domain.ReceiptItem(nil), in.ReceiptItems...)
		} else {
			out.Items = s.receiptItems(in)
		}
	}

	if out.Total == nil {
		if in.TotalPrice != nil {
			out.Total = intPtr(*in.TotalPrice)
		} else {
			sum := 0
			for _, item := range out.Items {
				sum += item.Price
			}
			out.Total = intPtr(sum)
		}
	}

	fillString(&out.OrderNumber, func() string { return s.serial(9999, 4) })
	fillString(&out.Barcode, func() string {
		return in.User.BirthDigits() + "-" + out.OrderNumber
	})
	return out
}

func (s *Synthesizer) receiptItems(in Input) []domain.ReceiptItem {
	var items []domain.ReceiptItem

	for _, candidates := range lookup(receiptByMBTI, in.User.MBTI, DefaultMBTI) {
		items = append(items, candidates[s.src.IntN(len(candidates))])
	}
	items = append(items, lookup(receiptByElement, in.Analysis.MainTrait, DefaultElement))

	for _, lacking := range in.Analysis.LackingTraits {
		if item, ok := receiptLacking[lacking]; ok {
			items = append(items, item)
		}
	}
	return items
}

// receiptByMBTI holds, per code, slots of interchangeable line items
var receiptByMBTI = map[string][][]domain.ReceiptItem{
	"ENTP": {
		{{Name: "말빨 (무한 리필)", Price: 50000}, {Name: "아이디어 폭격기", Price: 45000}},
		{{Name: "벌려놓은 일 수습비", Price: -70000}, {Name: "논쟁 후 인간관계 A/S", Price: -40000}},
	},
	"ENTJ": {
		{{Name: "리더십 (강제 장착)", Price: 80000}, {Name: "목표 달성 추진력", Price: 70000}},
		{{Name: "팀원 멘탈 파손 배상금", Price: -60000}, {Name: "쉼 없는 야근 청구서", Price: -50000}},
	},
	"ENFP": {
		{{Name: "인싸 에너지 충전", Price: 60000}, {Name: "3초 친화력", Price: 40000}},
		{{Name: "3일 열정 폐기물 처리비", Price: -55000}, {Name: "충동 결제 할부금", Price: -45000}},
	},
	"ENFJ": {
		{{Name: "따뜻한 공감력", Price: 55000}, {Name: "모임 총무 능력", Price: 35000}},
		{{Name: "오지랖 과태료", Price: -40000}, {Name: "거절 못 한 부탁 이자", Price: -50000}},
	},
	"INTP": {
		{{Name: "잡지식 데이터베이스", Price: 60000}, {Name: "논리 회로 (고성능)", Price: 55000}},
		{{Name: "연락두절 연체료", Price: -45000}, {Name: "미완성 프로젝트 보관료", Price: -35000}},
	},
	"INTJ": {
		{{Name: "10년 계획표", Price: 75000}, {Name: "냉철한 판단력", Price: 65000}},
		{{Name: "인간관계 유지보수 미납", Price: -60000}, {Name: "스몰토크 회피 위약금", Price: -30000}},
	},
	"INFP": {
		{{Name: "감수성 (무제한 요금제)", Price: 50000}, {Name: "상상력 구독권", Price: 45000}},
		{{Name: "현실도피 여행 경비", Price: -50000}, {Name: "새벽 감성 후회 비용", Price: -30000}},
	},
	"INFJ": {
		{{Name: "통찰력 (투시 가능)", Price: 70000}, {Name: "깊은 공감 서비스", Price: 50000}},
		{{Name: "문 닫기 후 재개통비", Price: -65000}, {Name: "혼자 끙끙 앓기 치료비", Price: -40000}},
	},
	"ESTP": {
		{{Name: "순발력 (실시간)", Price: 55000}, {Name: "현장 적응력", Price: 50000}},
		{{Name: "일단 저지르기 수습비", Price: -70000}, {Name: "과속 범칙금", Price: -45000}},
	},
	"ESTJ": {
		{{Name: "체계 정리 능력", Price: 65000}, {Name: "약속 이행률 100%", Price: 50000}},
		{{Name: "꼰대력 누진세", Price: -55000}, {Name: "융통성 결핍 가산금", Price: -40000}},
	},
	"ESFP": {
		{{Name: "분위기 메이커 자격증", Price: 60000}, {Name: "흥 (무한 동력)", Price: 55000}},
		{{Name: "계획 없음 지연료", Price: -50000}, {Name: "파티 후 통장 잔고", Price: -60000}},
	},
	"ESFJ": {
		{{Name: "살림 만렙", Price: 55000}, {Name: "기념일 알림 서비스", Price: 40000}},
		{{Name: "눈치 과부하 진료비", Price: -45000}, {Name: "인정욕구 충전비", Price: -35000}},
	},
	"ISTP": {
		{{Name: "손재주 (만능 공구)", Price: 60000}, {Name: "위기 대처 쿨함", Price: 50000}},
		{{Name: "감정 표현 번역비", Price: -45000}, {Name: "카톡 미확인 누적료", Price: -30000}},
	},
	"ISTJ": {
		{{Name: "성실함 (정품 인증)", Price: 70000}, {Name: "기록 보관 능력", Price: 45000}},
		{{Name: "변화 거부 위약금", Price: -50000}, {Name: "재미없음 할증", Price: -30000}},
	},
	"ISFP": {
		{{Name: "감성 셀카 기술", Price: 45000}, {Name: "예술 감각", Price: 55000}},
		{{Name: "우유부단 대기료", Price: -40000}, {Name: "집 밖 외출 할증", Price: -35000}},
	},
	"ISFJ": {
		{{Name: "헌신 (무상 AS)", Price: 60000}, {Name: "세심한 배려", Price: 50000}},
		{{Name: "자기희생 누적 피로", Price: -55000}, {Name: "참다가 터진 분노 수리비", Price: -45000}},
	},
}

var receiptByElement = map[string]domain.ReceiptItem{
	"Wood":  {Name: "목(木) 기운: 성장 욕구", Price: 30000},
	"Fire":  {Name: "화(火) 기운: 열정 과다", Price: 35000},
	"Earth": {Name: "토(土) 기운: 묵직한 신뢰", Price: 30000},
	"Metal": {Name: "금(金) 기운: 결단력", Price: 40000},
	"Water": {Name: "수(水) 기운: 잔머리", Price: 35000},
}

var receiptLacking = map[string]domain.ReceiptItem{
	"Wood":  {Name: "목(木) 결핍: 추진력 미탑재", Price: -20000},
	"Fire":  {Name: "화(火) 결핍: 텐션 부족", Price: -20000},
	"Earth": {Name: "토(土) 결핍: 멘탈 지반 약함", Price: -25000},
	"Metal": {Name: "금(金) 결핍: 결정장애", Price: -25000},
	"Water": {Name: "수(水) 결핍: 융통성 제로", Price: -20000},
}
