package synth

import (
	"sort"

	"github.com/pbaille/lifestore/internal/domain"
)

func (s *Synthesizer) meme(in Input, sup *domain.MemeTheme) *domain.MemeTheme {
	out := &domain.MemeTheme{}
	if sup != nil {
		*out = *sup
	}

	m := lookup(memeByMBTI, in.User.MBTI, DefaultMBTI)
	fillString(&out.Image, func() string { return m.Image })
	fillString(&out.TextTop, func() string { return m.TextTop })
	fillString(&out.TextBottom, func() string { return m.TextBottom })
	return out
}

var memeByMBTI = map[string]domain.MemeTheme{
	"ISTJ": {Image: "drake_no.jpg", TextTop: "금요일 회식 공지", TextBottom: "나 (ISTJ): 주말 계획 다 틀어짐"},
	"ISFJ": {Image: "drowning_highfive.jpg", TextTop: "친구: 부탁 하나만~", TextBottom: "나 (ISFJ): 또 당함"},
	"INFJ": {Image: "exit_this_way.jpg", TextTop: "갑자기 술자리 분위기", TextBottom: "나 (INFJ): 슬쩍 퇴장"},
	"INTJ": {Image: "galaxy_brain.jpg", TextTop: "INTJ가 스몰토크 성공했을 때", TextBottom: "이게 되네?"},
	"ISTP": {Image: "cold_stare.jpg", TextTop: "카톡 99+", TextBottom: "나 (ISTP): 내일 읽음"},
	"ISFP": {Image: "pepe_comfy.jpg", TextTop: "친구: 밖에 나와", TextBottom: "나 (ISFP): 집이 최고야 ㅠㅠ"},
	"INFP": {Image: "imagination.jpg", TextTop: "INFP 머릿속", TextBottom: "현실: 방구석 / 망상: 세계여행"},
	"INTP": {Image: "thinking_hard.jpg", TextTop: "나 (INTP) 새벽 3시", TextBottom: "위키피디아 서핑 중 (내일 출근)"},
	"ESTP": {Image: "hold_my_beer.jpg", TextTop: "ESTP: 이거 해도 됨?", TextBottom: "이미 저지르고 후회 없음"},
	"ESFP": {Image: "elmo_fire.jpg", TextTop: "ESFP 회식날", TextBottom: "텐션 200% (집 가면 뻗음)"},
	"ENFP": {Image: "distracted_bf.jpg", TextTop: "ENFP (여친 있음)", TextBottom: "새 취미 발견! (3일 후 버림)"},
	"ENTP": {Image: "this_is_fine.jpg", TextTop: "나 (ENTP) 팩폭 후", TextBottom: "ㄱㅊ 사실인데 뭐 (관계 불타는 중)"},
	"ESTJ": {Image: "pointing_man.jpg", TextTop: "후배가 야근 안 하고 퇴근", TextBottom: "나 (ESTJ): 요즘 애들은..."},
	"ESFJ": {Image: "sweating_guy.jpg", TextTop: "ESFJ: 다들 재밌어?", TextBottom: "혼자 오만가지 걱정 중 (아무도 신경 안 씀)"},
	"ENFJ": {Image: "clown_makeup.jpg", TextTop: "ENFJ 친구들한테", TextBottom: "내가 다 해줄게~ (번아웃 예정)"},
	"ENTJ": {Image: "thanos_snap.jpg", TextTop: "ENTJ 자기계발 후", TextBottom: "월급 두 배 각"},
}

// MemeImages returns every image file the meme table can assign
func MemeImages() []string {
	seen := make(map[string]bool, len(memeByMBTI))
	var images []string
	for _, m := range memeByMBTI {
		if !seen[m.Image] {
			seen[m.Image] = true
			images = append(images, m.Image)
		}
	}
	sort.Strings(images)
	return images
}
