package library

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/matzehuels/libpanel/pkg/errors"
)

func TestDecodeFile(t *testing.T) {
	lib, err := DecodeFile("testdata/library.json")
	if err != nil {
		t.Fatalf("DecodeFile() error: %v", err)
	}

	if lib.NpmPkg != "react-native-reanimated" {
		t.Errorf("NpmPkg = %q", lib.NpmPkg)
	}
	if !lib.VegaOS.Set || lib.VegaOS.Value == "" {
		t.Errorf("VegaOS = %+v, want set from string", lib.VegaOS)
	}
	if lib.NewArchitecture != NewArchSupported {
		t.Errorf("NewArchitecture = %v, want supported", lib.NewArchitecture)
	}
	if lib.GitHub.ModuleType != ModuleTypeTurbo {
		t.Errorf("ModuleType = %q", lib.GitHub.ModuleType)
	}
	if deps, ok := lib.Dependencies(); !ok || deps != 1 {
		t.Errorf("Dependencies() = %d, %v", deps, ok)
	}
	if size, ok := lib.PackageSize(); !ok || size != 1048576 {
		t.Errorf("PackageSize() = %d, %v", size, ok)
	}
	if lib.Popularity == nil || *lib.Popularity != 0.31 {
		t.Errorf("Popularity = %v", lib.Popularity)
	}
	want := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	if !lib.GitHub.Stats.UpdatedAt.Equal(want) {
		t.Errorf("UpdatedAt = %v, want %v", lib.GitHub.Stats.UpdatedAt, want)
	}
}

func TestDecodeMinimal(t *testing.T) {
	lib, err := DecodeFile("testdata/minimal.json")
	if err != nil {
		t.Fatalf("DecodeFile() error: %v", err)
	}
	if lib.Npm != nil {
		t.Error("Npm should be nil when absent")
	}
	if _, ok := lib.Downloads(); ok {
		t.Error("Downloads() should be unknown")
	}
	if _, ok := lib.Dependencies(); ok {
		t.Error("Dependencies() should be unknown")
	}
	if lib.GitHub.URLs.Homepage != "" {
		t.Errorf("Homepage = %q, want empty for null", lib.GitHub.URLs.Homepage)
	}
	if lib.Popularity != nil {
		t.Error("Popularity should be nil")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "{"},
		{"missing npmPkg", `{"githubUrl":"https://github.com/a/b"}`},
		{"invalid npmPkg", `{"npmPkg":"../x"}`},
		{"bad flag", `{"npmPkg":"a","vegaos":3}`},
		{"bad new arch", `{"npmPkg":"a","newArchitecture":"maybe"}`},
		{"numeric timestamp", `{"npmPkg":"a","github":{"stats":{"updatedAt":5}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Decode() should fail")
			}
			if !errors.IsInput(err) {
				t.Errorf("Decode() error code = %v, want an input error", errors.GetCode(err))
			}
		})
	}
}

func TestDecodeLenientTimestamps(t *testing.T) {
	tests := []struct {
		name  string
		stats string
		want  time.Time
	}{
		{"empty string", `{"updatedAt":""}`, time.Time{}},
		{"null", `{"updatedAt":null}`, time.Time{}},
		{"free text", `{"updatedAt":"recently"}`, time.Time{}},
		{"rfc3339", `{"updatedAt":"2026-10-15T12:00:00Z"}`, time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := `{"npmPkg":"a","github":{"stats":` + tt.stats + `}}`
			lib, err := Decode(strings.NewReader(input))
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if got := lib.GitHub.Stats.UpdatedAt; !got.Equal(tt.want) {
				t.Errorf("UpdatedAt = %v, want %v", got, tt.want)
			}
			if tt.want.IsZero() && TimeSince(lib.GitHub.Stats.UpdatedAt, time.Now()) != Unknown {
				t.Error("blank timestamp should render as unknown")
			}
		})
	}
}

func TestDecodeFileMissing(t *testing.T) {
	_, err := DecodeFile("testdata/does-not-exist.json")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("DecodeFile() error = %v, want INVALID_INPUT", err)
	}
}

func TestFlagJSON(t *testing.T) {
	tests := []struct {
		input string
		want  Flag
		out   string
	}{
		{`true`, Flag{Set: true}, `true`},
		{`false`, Flag{}, `false`},
		{`null`, Flag{}, `false`},
		{`""`, Flag{}, `false`},
		{`"https://x"`, Flag{Set: true, Value: "https://x"}, `"https://x"`},
	}
	for _, tt := range tests {
		var f Flag
		if err := json.Unmarshal([]byte(tt.input), &f); err != nil {
			t.Fatalf("Unmarshal(%s) error: %v", tt.input, err)
		}
		if f != tt.want {
			t.Errorf("Unmarshal(%s) = %+v, want %+v", tt.input, f, tt.want)
		}
		out, _ := json.Marshal(f)
		if string(out) != tt.out {
			t.Errorf("Marshal(%+v) = %s, want %s", f, out, tt.out)
		}
	}
}

func TestNewArchSupportJSON(t *testing.T) {
	tests := []struct {
		input string
		want  NewArchSupport
	}{
		{`true`, NewArchSupported},
		{`false`, NewArchUnsupported},
		{`"new-arch-only"`, NewArchOnly},
		{`null`, NewArchUnknown},
	}
	for _, tt := range tests {
		var n NewArchSupport
		if err := json.Unmarshal([]byte(tt.input), &n); err != nil {
			t.Fatalf("Unmarshal(%s) error: %v", tt.input, err)
		}
		if n != tt.want {
			t.Errorf("Unmarshal(%s) = %v, want %v", tt.input, n, tt.want)
		}
		if tt.want == NewArchUnknown {
			continue
		}
		out, _ := json.Marshal(n)
		if string(out) != tt.input {
			t.Errorf("Marshal(%v) = %s, want %s", n, out, tt.input)
		}
	}
}

func TestCompatibilityTags(t *testing.T) {
	tests := []struct {
		name string
		lib  Library
		want []string
	}{
		{"none", Library{}, nil},
		{"new arch from entry", Library{NewArchitecture: NewArchSupported}, []string{TagNewArchitecture}},
		{"new arch from github", Library{GitHub: GitHub{NewArchitecture: true}}, []string{TagNewArchitecture}},
		{"entry overrides github", Library{NewArchitecture: NewArchUnsupported, GitHub: GitHub{NewArchitecture: true}}, nil},
		{"new arch only", Library{NewArchitecture: NewArchOnly}, []string{TagNewArchitectureOnly}},
		{
			"everything",
			Library{NewArchitecture: NewArchSupported, ExpoGo: true, NightlyProgram: true, Dev: true, Template: true, Unmaintained: true, GitHub: GitHub{IsArchived: true}},
			[]string{TagNewArchitecture, TagExpoGo, TagNightlyProgram, TagDevTool, TagTemplate, TagUnmaintained, TagArchived},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompatibilityTags(&tt.lib); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CompatibilityTags() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSupportedPlatforms(t *testing.T) {
	lib := Library{Android: true, IOS: true, VegaOS: Flag{Set: true}, Horizon: true}
	want := []string{PlatformIOS, PlatformAndroid, PlatformHorizon, PlatformVegaOS}
	if got := SupportedPlatforms(&lib); !reflect.DeepEqual(got, want) {
		t.Errorf("SupportedPlatforms() = %v, want %v", got, want)
	}
	if got := SupportedPlatforms(&Library{}); len(got) != 0 {
		t.Errorf("SupportedPlatforms() = %v, want none", got)
	}
}

func TestModuleTypeLabels(t *testing.T) {
	tests := []struct {
		moduleType ModuleType
		want       []string
	}{
		{ModuleTypeExpo, []string{"Expo Module"}},
		{ModuleTypeNitro, []string{"Nitro Module"}},
		{ModuleTypeTurbo, []string{"Turbo Module"}},
		{"", nil},
		{"fabric", nil},
	}
	for _, tt := range tests {
		lib := Library{GitHub: GitHub{ModuleType: tt.moduleType}}
		if got := ModuleTypeLabels(&lib); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ModuleTypeLabels(%q) = %v, want %v", tt.moduleType, got, tt.want)
		}
	}
}

func TestHasConfigPlugin(t *testing.T) {
	if HasConfigPlugin(&Library{}) {
		t.Error("empty library should not have a config plugin")
	}
	if !HasConfigPlugin(&Library{ConfigPlugin: Flag{Set: true, Value: "https://x"}}) {
		t.Error("string config plugin should count")
	}
	if !HasConfigPlugin(&Library{GitHub: GitHub{ConfigPlugin: true}}) {
		t.Error("detected config plugin should count")
	}
}

func TestPopularityLabel(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	tests := []struct {
		name      string
		score     *float64
		wantLabel string
		wantHot   bool
	}{
		{"unknown", nil, PopularityUnknown, false},
		{"declining", f(-0.2), PopularityDeclining, false},
		{"stable", f(0), PopularityStable, false},
		{"growing", f(0.1), PopularityGrowing, false},
		{"just below threshold", f(HotThreshold - 0.0001), PopularityGrowing, false},
		{"at threshold", f(HotThreshold), PopularityPopular, true},
		{"above threshold", f(0.49), PopularityPopular, true},
		{"very popular", f(0.8), PopularityVeryPopular, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, hot := PopularityLabel(tt.score)
			if label != tt.wantLabel || hot != tt.wantHot {
				t.Errorf("PopularityLabel() = %q, %v; want %q, %v", label, hot, tt.wantLabel, tt.wantHot)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.n); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}

	if got := NewNumberFormatter(language.German).Format(1234567); got != "1.234.567" {
		t.Errorf("German Format() = %q, want %q", got, "1.234.567")
	}
}

func TestFormatBytes(t *testing.T) {
	got := FormatBytes(1024)
	if got != "1.0 kB" {
		t.Errorf("FormatBytes(1024) = %q, want %q", got, "1.0 kB")
	}
	if got := FormatBytes(1048576); !strings.HasSuffix(got, "MB") {
		t.Errorf("FormatBytes(1048576) = %q, want MB scale", got)
	}
	if got := FormatBytes(-5); got != "0 B" {
		t.Errorf("FormatBytes(-5) = %q", got)
	}
}

func TestTimeSince(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	if got := TimeSince(now.Add(-72*time.Hour), now); got != "3 days ago" {
		t.Errorf("TimeSince(3 days) = %q", got)
	}
	if got := TimeSince(now, now); got != "now" {
		t.Errorf("TimeSince(now) = %q", got)
	}
	if got := TimeSince(time.Time{}, now); got != Unknown {
		t.Errorf("TimeSince(zero) = %q, want %q", got, Unknown)
	}
}
