package localize

import (
	"testing"

	"github.com/smokemap/smokemap/internal/core/domain"
)

func TestDetect(t *testing.T) {
	e := DefaultEngine()

	tests := []struct {
		text string
		want domain.Lang
	}{
		{"渋谷駅 喫煙所", domain.LangJA},
		{"ひらがな", domain.LangJA},
		{"カタカナ", domain.LangJA},
		{"서울역 흡연구역", domain.LangKO},
		{"Shibuya Station", domain.LangEN},
		{"3rd Floor, Bldg. 2", domain.LangEN},
		{"", domain.LangUnknown},
		{"Привет", domain.LangUnknown},
	}

	for _, tt := range tests {
		if got := e.Detect(tt.text); got != tt.want {
			t.Errorf("Detect(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestDetectJapaneseBeatsKorean(t *testing.T) {
	e := DefaultEngine()

	// mixed-script text: kana presence classifies as Japanese
	if got := e.Detect("흡연 スペース"); got != domain.LangJA {
		t.Errorf("Detect mixed = %q, want ja", got)
	}
}

func TestLocalizeJapanese(t *testing.T) {
	e := DefaultEngine()

	lt := e.Localize("渋谷駅 喫煙所")
	if lt == nil {
		t.Fatal("expected bundle, got nil")
	}
	if lt.Original != "渋谷駅 喫煙所" {
		t.Errorf("original = %q", lt.Original)
	}
	if lt.OriginalLang != domain.LangJA {
		t.Errorf("lang = %q, want ja", lt.OriginalLang)
	}
	if lt.Ko != "시부야역 흡연구역" {
		t.Errorf("ko = %q, want 시부야역 흡연구역", lt.Ko)
	}
	if lt.En != "Shibuya Station Smoking Area" {
		t.Errorf("en = %q, want Shibuya Station Smoking Area", lt.En)
	}
}

func TestLocalizeLongestMatchFirst(t *testing.T) {
	e := DefaultEngine()

	// 屋外喫煙所 must match as a unit, not as 屋外 + 喫煙所
	lt := e.Localize("屋外喫煙所")
	if lt == nil {
		t.Fatal("expected bundle, got nil")
	}
	if lt.Ko != "실외 흡연구역" {
		t.Errorf("ko = %q, want 실외 흡연구역", lt.Ko)
	}
	if lt.En != "Outdoor Smoking Area" {
		t.Errorf("en = %q, want Outdoor Smoking Area", lt.En)
	}
}

func TestLocalizeKanjiNumerals(t *testing.T) {
	e := DefaultEngine()

	lt := e.Localize("三階 喫煙室")
	if lt == nil {
		t.Fatal("expected bundle, got nil")
	}
	if lt.Ko != "3층 흡연실" {
		t.Errorf("ko = %q, want 3층 흡연실", lt.Ko)
	}
	if lt.En != "3 Floor Smoking Room" {
		t.Errorf("en = %q, want 3 Floor Smoking Room", lt.En)
	}
}

func TestLocalizeKorean(t *testing.T) {
	e := DefaultEngine()

	lt := e.Localize("서울역 앞")
	if lt == nil {
		t.Fatal("expected bundle, got nil")
	}
	if lt.Ko != "서울역 앞" {
		t.Errorf("ko = %q, want original carried over", lt.Ko)
	}
	if lt.En != "" {
		t.Errorf("en = %q, want unset", lt.En)
	}
}

func TestLocalizeEnglishAndEmpty(t *testing.T) {
	e := DefaultEngine()

	lt := e.Localize("Narita Airport Terminal 1")
	if lt == nil {
		t.Fatal("expected bundle, got nil")
	}
	if lt.Ko != "" || lt.En != "" {
		t.Errorf("translated fields should stay unset for English input: %+v", lt)
	}

	if got := e.Localize(""); got != nil {
		t.Errorf("Localize(\"\") = %+v, want nil", got)
	}
}

func TestLocalizeUnmatchedPassesThrough(t *testing.T) {
	e := DefaultEngine()

	lt := e.Localize("謎の場然")
	if lt == nil {
		t.Fatal("expected bundle, got nil")
	}
	// no dictionary hit: both variants keep the source text
	if lt.Ko != "謎の場然" || lt.En != "謎の場然" {
		t.Errorf("unmatched text should pass through, got ko=%q en=%q", lt.Ko, lt.En)
	}
}

func TestCustomDictionaryOverride(t *testing.T) {
	e := New(Terms(), map[string]Entry{"駅": {Ko: "정거장", En: "Stop"}})

	lt := e.Localize("駅")
	if lt.Ko != "정거장" {
		t.Errorf("override ko = %q, want 정거장", lt.Ko)
	}
}
