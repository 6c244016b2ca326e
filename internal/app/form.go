package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pbaille/lifestore/internal/domain"
	"github.com/pbaille/lifestore/internal/synth"
)

const (
	msgDateRequired = "생년월일을 입력해주세요."
	msgDateInvalid  = "생년월일 형식이 올바르지 않습니다. (예: 1998.05.05)"
	msgTimeInvalid  = "출생 시간 형식이 올바르지 않습니다. (예: 13:30)"
	msgGender       = "성별을 선택해주세요."
	msgMBTI         = "MBTI를 올바르게 선택해주세요."
)

// Form is the raw user input of one submission
type Form struct {
	BirthDate string        `json:"birthDate"`
	BirthTime string        `json:"birthTime"`
	Gender    domain.Gender `json:"gender"`
	MBTI      string        `json:"mbti"`
}

// ValidationError is a rejected form. Message is user-visible.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ParseDate accepts YYYYMMDD with optional -, ., / or space separators
func ParseDate(s string) (year, month, day int, err error) {
	if strings.TrimSpace(s) == "" {
		return 0, 0, 0, &ValidationError{Field: "birthDate", Message: msgDateRequired}
	}

	digits := strings.Map(func(r rune) rune {
		switch r {
		case '-', '.', '/', ' ':
			return -1
		}
		return r
	}, s)

	invalid := &ValidationError{Field: "birthDate", Message: msgDateInvalid}
	if len(digits) != 8 || !allDigits(digits) {
		return 0, 0, 0, invalid
	}

	year, _ = strconv.Atoi(digits[:4])
	month, _ = strconv.Atoi(digits[4:6])
	day, _ = strconv.Atoi(digits[6:])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, 0, invalid
	}
	return year, month, day, nil
}

// ParseTime accepts HH:MM, HHMM or an empty string (unknown time).
// known is false for the empty string.
func ParseTime(s string) (hour, minute int, known bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, false, nil
	}

	invalid := &ValidationError{Field: "birthTime", Message: msgTimeInvalid}
	digits := strings.Replace(s, ":", "", 1)
	if len(digits) != 4 || !allDigits(digits) || (len(s) == 5 && s[2] != ':') {
		return 0, 0, false, invalid
	}

	hour, _ = strconv.Atoi(digits[:2])
	minute, _ = strconv.Atoi(digits[2:])
	if hour > 23 || minute > 59 {
		return 0, 0, false, invalid
	}
	return hour, minute, true, nil
}

// ValidMBTI reports whether code is one of the sixteen types
func ValidMBTI(code string) bool {
	if len(code) != 4 {
		return false
	}
	axes := [4]string{"EI", "NS", "TF", "PJ"}
	for i, axis := range axes {
		if !strings.ContainsRune(axis, rune(code[i])) {
			return false
		}
	}
	return true
}

// submission is a validated form
type submission struct {
	request domain.AnalyzeRequest
	entry   domain.HistoryEntry
}

func (f Form) validate() (*submission, error) {
	year, month, day, err := ParseDate(f.BirthDate)
	if err != nil {
		return nil, err
	}
	hour, minute, known, err := ParseTime(f.BirthTime)
	if err != nil {
		return nil, err
	}

	gender := f.Gender
	if gender == "" {
		gender = domain.GenderMale
	}
	if gender != domain.GenderMale && gender != domain.GenderFemale {
		return nil, &ValidationError{Field: "gender", Message: msgGender}
	}

	mbti := strings.ToUpper(strings.TrimSpace(f.MBTI))
	if mbti == "" {
		mbti = synth.DefaultMBTI
	}
	if !ValidMBTI(mbti) {
		return nil, &ValidationError{Field: "mbti", Message: msgMBTI}
	}

	birthTime := ""
	if known {
		birthTime = fmt.Sprintf("%02d:%02d", hour, minute)
	}

	return &submission{
		request: domain.AnalyzeRequest{
			Year: year, Month: month, Day: day,
			Hour: hour, Minute: minute,
			Gender: gender, MBTI: mbti,
		},
		entry: domain.HistoryEntry{
			BirthDate: fmt.Sprintf("%04d.%02d.%02d", year, month, day),
			BirthTime: birthTime,
			Gender:    gender,
			MBTI:      mbti,
		},
	}, nil
}

// FormFromHistory rebuilds the form a history entry was saved from
func FormFromHistory(e domain.HistoryEntry) Form {
	return Form{
		BirthDate: e.BirthDate,
		BirthTime: e.BirthTime,
		Gender:    e.Gender,
		MBTI:      e.MBTI,
	}
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
