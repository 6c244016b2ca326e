package synth

import (
	"fmt"

	"github.com/pbaille/lifestore/internal/domain"
)

type diagnosis struct {
	name string
	code string
}

func (s *Synthesizer) hospital(in Input, sup *domain.HospitalTheme) *domain.HospitalTheme {
	out := &domain.HospitalTheme{}
	if sup != nil {
		*out = *sup
		out.Diseases = cloneStrings(sup.Diseases)
		out.DiagnosisCodes = cloneStrings(sup.DiagnosisCodes)
		out.Prescriptions = cloneStrings(sup.Prescriptions)
	}

	if len(out.Diseases) == 0 {
		table := lookup(diagnosisByMBTI, in.User.MBTI, DefaultMBTI)
		out.Diseases = make([]string, len(table))
		codes := make([]string, len(table))
		for i, d := range table {
			out.Diseases[i] = d.name
			codes[i] = d.code
		}
		if len(out.DiagnosisCodes) == 0 {
			out.DiagnosisCodes = codes
		}
	}

	// one code per disease; supplied names get generated codes
	if len(out.DiagnosisCodes) < len(out.Diseases) {
		for i := len(out.DiagnosisCodes); i < len(out.Diseases); i++ {
			out.DiagnosisCodes = append(out.DiagnosisCodes, fmt.Sprintf("F%d.%d", 60+i, s.src.IntN(9)))
		}
	}

	fillStrings(&out.Prescriptions, func() []string {
		return []string{s.pick(prescriptions)}
	})
	fillString(&out.Severity, func() string {
		if s.src.IntN(10) >= 3 {
			return domain.SeverityAdmit
		}
		return domain.SeverityIncurable
	})
	fillString(&out.PatientNo, func() string {
		return fmt.Sprintf("PT-%s-%d", in.User.BirthDigits(), s.src.IntN(999)+1)
	})
	return out
}

var diagnosisByMBTI = map[string][]diagnosis{
	"ENTP": {{"만성 논쟁중독 증후군", "F91.3"}, {"계획 회피 장애", "F60.7"}},
	"ENTJ": {{"독재자 망상 증후군", "F22.0"}, {"완벽주의 강박 장애", "F42.8"}},
	"ENFP": {{"관심결핍 과잉행동 증후군", "F90.0"}, {"3일 열정 주기성 장애", "F34.0"}},
	"ENFJ": {{"오지랖 과다 증후군", "F60.4"}, {"거절불능 복종장애", "F60.6"}},
	"INTP": {{"현실도피성 망상장애", "F23.9"}, {"사회성 결핍 증후군", "F84.5"}},
	"INTJ": {{"인간혐오성 고립장애", "F60.1"}, {"냉소적 현실주의 증후군", "F21"}},
	"INFP": {{"만성 이상주의 중증", "F33.2"}, {"현실 부적응 증후군", "F43.2"}},
	"INFJ": {{"문닫기 충동조절 장애", "F63.8"}, {"겉바속촉 이중인격 장애", "F44.81"}},
	"ESTP": {{"YOLO 충동조절 장애", "F63.9"}, {"아드레날린 중독증", "F15.2"}},
	"ESTJ": {{"권위적 꼰대화 증후군", "F60.5"}, {"융통성 경직 장애", "F60.0"}},
	"ESFP": {{"파티 중독 증후군", "F10.1"}, {"충동구매 강박장애", "F42.2"}},
	"ESFJ": {{"눈치 과민 반응 증후군", "F41.1"}, {"인정욕구 결핍 장애", "F33.1"}},
	"ISTP": {{"감정 표현 불능증", "R45.4"}, {"고립선호 은둔장애", "F40.1"}},
	"ISTJ": {{"변화 공포 경직 장애", "F40.2"}, {"규칙 강박 증후군", "F42.1"}},
	"ISFP": {{"결정장애 만성화", "F41.9"}, {"갈등회피 도피 장애", "F60.6"}},
	"ISFJ": {{"자기희생 중독증", "F60.7"}, {"억압형 분노 폭발 장애", "F63.81"}},
}

var prescriptions = []string{
	"금융 치료 시급 (현금 수혈 3회/일)",
	"사회적 격리 권고 (인터넷 차단)",
	"강제 휴식 (드라마 정주행 처방)",
	"현실 직시 훈련 필요",
	"자아 성찰 명상 3시간/일",
	"타인 신경 끄기 연습 권고",
	"일단 자고 일어나서 생각하기",
	"치킨 섭취 후 재진단 필요",
}
