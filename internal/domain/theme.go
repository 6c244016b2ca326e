package domain

// ThemeID identifies one artifact presentation
type ThemeID string

const (
	ThemeReceipt  ThemeID = "receipt"
	ThemeWanted   ThemeID = "wanted"
	ThemeHospital ThemeID = "hospital"
	ThemePastLife ThemeID = "pastlife"
	ThemeLove     ThemeID = "love"
	ThemeMeme     ThemeID = "meme"
	ThemeChart    ThemeID = "chart"
	ThemeScandal  ThemeID = "scandal"
)

// Themes lists every theme in tab order
var Themes = []ThemeID{
	ThemeReceipt,
	ThemeWanted,
	ThemeHospital,
	ThemePastLife,
	ThemeLove,
	ThemeMeme,
	ThemeChart,
	ThemeScandal,
}

// ThemeData carries the theme payloads keyed by theme id.
// Every variant and every field may be absent on input.
type ThemeData struct {
	Receipt  *ReceiptTheme  `json:"receipt,omitempty"`
	Wanted   *WantedTheme   `json:"wanted,omitempty"`
	Hospital *HospitalTheme `json:"hospital,omitempty"`
	PastLife *PastLifeTheme `json:"pastlife,omitempty"`
	Love     *LoveTheme     `json:"love,omitempty"`
	Meme     *MemeTheme     `json:"meme,omitempty"`
	Chart    *ChartTheme    `json:"chart,omitempty"`
	Scandal  *ScandalTheme  `json:"scandal,omitempty"`
}

type ReceiptTheme struct {
	Items       []ReceiptItem `json:"items,omitempty"`
	Total       *int          `json:"total,omitempty"`
	OrderNumber string        `json:"order_number,omitempty"`
	Barcode     string        `json:"barcode,omitempty"`
}

type WantedTheme struct {
	Crimes           []string `json:"crimes,omitempty"`
	Bounty           *int64   `json:"bounty,omitempty"`
	DangerLevel      string   `json:"danger_level,omitempty"`
	CriminalAlias    string   `json:"criminal_alias,omitempty"`
	PortraitID       string   `json:"portrait_id,omitempty"`
	CrimeStory       string   `json:"crime_story,omitempty"`
	NotoriousActions []string `json:"notorious_actions,omitempty"`
	LastSeen         string   `json:"last_seen,omitempty"`
	SpecialWarning   string   `json:"special_warning,omitempty"`
	PosterNumber     string   `json:"poster_number,omitempty"`
}

type HospitalTheme struct {
	Diseases       []string `json:"diseases,omitempty"`
	DiagnosisCodes []string `json:"diagnosis_codes,omitempty"`
	Prescriptions  []string `json:"prescriptions,omitempty"`
	Severity       string   `json:"severity,omitempty"`
	PatientNo      string   `json:"patient_no,omitempty"`
}

// NeedsAdmission reports whether the severity calls for the red stamp
func (h *HospitalTheme) NeedsAdmission() bool {
	return h.Severity == SeverityAdmit || h.Severity == SeverityIsolate
}

const (
	SeverityAdmit     = "입원 요망"
	SeverityIsolate   = "즉시 격리"
	SeverityIncurable = "치료 불가"
)

type PastLifeTheme struct {
	Era            string `json:"era,omitempty"`
	EraYear        string `json:"era_year,omitempty"`
	Location       string `json:"location,omitempty"`
	Existence      string `json:"existence,omitempty"`
	Identity       string `json:"identity,omitempty"`
	Story          string `json:"story,omitempty"`
	DeathCause     string `json:"death_cause,omitempty"`
	Karma          string `json:"karma,omitempty"`
	SpecialAbility string `json:"special_ability,omitempty"`
	RecordNo       string `json:"record_no,omitempty"`
}

type LoveTheme struct {
	Difficulty  *int   `json:"difficulty,omitempty"`
	Tip         string `json:"tip,omitempty"`
	Charm       string `json:"charm,omitempty"`
	Weakness    string `json:"weakness,omitempty"`
	InitialLove *int   `json:"initial_love,omitempty"`
}

type MemeTheme struct {
	Image      string `json:"image,omitempty"`
	TextTop    string `json:"text_top,omitempty"`
	TextBottom string `json:"text_bottom,omitempty"`
}

// ChartPoint is one age bucket of the life chart
type ChartPoint struct {
	Age         string  `json:"age"`
	Wealth      int     `json:"wealth"`
	WealthEvent *string `json:"wealth_event"`
	Love        int     `json:"love"`
	LoveEvent   *string `json:"love_event"`
}

type ChartTheme struct {
	Data                []ChartPoint `json:"data,omitempty"`
	WealthPattern       string       `json:"wealth_pattern,omitempty"`
	WealthPatternKorean string       `json:"wealth_pattern_korean,omitempty"`
	LovePattern         string       `json:"love_pattern,omitempty"`
	LovePatternKorean   string       `json:"love_pattern_korean,omitempty"`
	WealthPeakAge       string       `json:"wealth_peak_age,omitempty"`
	WealthPeakEvent     string       `json:"wealth_peak_event,omitempty"`
	WealthLowAge        string       `json:"wealth_low_age,omitempty"`
	WealthLowEvent      string       `json:"wealth_low_event,omitempty"`
	LovePeakAge         string       `json:"love_peak_age,omitempty"`
	LovePeakEvent       string       `json:"love_peak_event,omitempty"`
	LoveLowAge          string       `json:"love_low_age,omitempty"`
	LoveLowEvent        string       `json:"love_low_event,omitempty"`
	Advice              string       `json:"advice,omitempty"`
}

type ScandalTheme struct {
	CelebrityName        string   `json:"celebrity_name,omitempty"`
	CelebrityMBTI        string   `json:"celebrity_mbti,omitempty"`
	CelebrityKeyword     string   `json:"celebrity_keyword,omitempty"`
	CelebrityBirthdate   string   `json:"celebrity_birthdate,omitempty"`
	CelebrityImageQuery  string   `json:"celebrity_image_query,omitempty"`
	CompatibilityScore   *int     `json:"compatibility_score,omitempty"`
	MatchReason          string   `json:"match_reason,omitempty"`
	ArticleReasons       []string `json:"article_reasons,omitempty"`
	CelebrityMainElement string   `json:"celebrity_main_element,omitempty"`
	Headline             string   `json:"headline,omitempty"`
	ArticleBody          string   `json:"article_body,omitempty"`
}
