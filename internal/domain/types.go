package domain

import "fmt"

// Gender is the birth gender sent to the analysis service
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// UserInfo is the birth data and personality type of one submission
type UserInfo struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Day    int    `json:"day"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
	Gender Gender `json:"gender"`
	MBTI   string `json:"mbti"`
}

// BirthDigits returns the birth date as YYYYMMDD
func (u UserInfo) BirthDigits() string {
	return fmt.Sprintf("%04d%02d%02d", u.Year, u.Month, u.Day)
}

// BirthDate returns the birth date in display form (YYYY.MM.DD)
func (u UserInfo) BirthDate() string {
	return fmt.Sprintf("%04d.%02d.%02d", u.Year, u.Month, u.Day)
}

// Pillar is one stem/branch pair of the four pillars
type Pillar struct {
	Stem         string `json:"stem"`
	Branch       string `json:"branch"`
	StemKorean   string `json:"stem_korean"`
	BranchKorean string `json:"branch_korean"`
}

// FiveElements holds the elemental weights as reported by the analysis service.
// Whether they sum to a fixed total is up to the service.
type FiveElements struct {
	Wood  float64 `json:"Wood"`
	Fire  float64 `json:"Fire"`
	Earth float64 `json:"Earth"`
	Metal float64 `json:"Metal"`
	Water float64 `json:"Water"`
}

// Vector returns the weights in Wood, Fire, Earth, Metal, Water order
func (f FiveElements) Vector() []float64 {
	return []float64{f.Wood, f.Fire, f.Earth, f.Metal, f.Water}
}

// SajuAnalysis is the canonical analysis produced by the external service
type SajuAnalysis struct {
	YearPillar          Pillar       `json:"year_pillar"`
	MonthPillar         Pillar       `json:"month_pillar"`
	DayPillar           Pillar       `json:"day_pillar"`
	HourPillar          *Pillar      `json:"hour_pillar"`
	DayMaster           string       `json:"day_master"`
	DayMasterKorean     string       `json:"day_master_korean"`
	DayMasterElement    string       `json:"day_master_element"`
	FiveElements        FiveElements `json:"five_elements"`
	MainTrait           string       `json:"main_trait"`
	MainTraitKorean     string       `json:"main_trait_korean"`
	LackingTraits       []string     `json:"lacking_traits"`
	LackingTraitsKorean []string     `json:"lacking_traits_korean"`
}

// RankInfo is an optional badge drawn over any artifact
type RankInfo struct {
	Grade       string `json:"grade"`
	Title       string `json:"title"`
	TitleKorean string `json:"title_korean"`
	Color       string `json:"color"`
}

// ReceiptItem is one priced trait line on the receipt
type ReceiptItem struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// AnalyzeRequest is the body sent to the analysis service
type AnalyzeRequest struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Day    int    `json:"day"`
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
	Gender Gender `json:"gender"`
	MBTI   string `json:"mbti"`
}

// AnalyzeResponse is the successful response of the analysis service
type AnalyzeResponse struct {
	UserInfo     UserInfo      `json:"user_info"`
	SajuAnalysis SajuAnalysis  `json:"saju_analysis"`
	ReceiptItems []ReceiptItem `json:"receipt_items,omitempty"`
	TotalPrice   *int          `json:"total_price,omitempty"`
	ThemeData    *ThemeData    `json:"theme_data,omitempty"`
	Rank         *RankInfo     `json:"rank,omitempty"`
}

// HistoryEntry is one remembered form input
type HistoryEntry struct {
	BirthDate string `json:"birthDate"`
	BirthTime string `json:"birthTime"`
	Gender    Gender `json:"gender"`
	MBTI      string `json:"mbti"`
	Timestamp int64  `json:"timestamp"`
}

// SameKey reports whether two entries share the (birthDate, mbti) key
func (e HistoryEntry) SameKey(o HistoryEntry) bool {
	return e.BirthDate == o.BirthDate && e.MBTI == o.MBTI
}
