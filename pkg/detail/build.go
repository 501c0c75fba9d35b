package detail

import (
	"fmt"
	"time"

	"github.com/matzehuels/libpanel/pkg/library"
)

const (
	// DefaultScoringURL explains how the directory score is computed.
	DefaultScoringURL = "https://reactnative.directory/scoring"

	// DefaultPackageURL is the npm website page prefix of a package.
	DefaultPackageURL = "https://www.npmjs.com/package/"

	// DefaultApplication is the application hint attached to actions.
	DefaultApplication = "Google Chrome"

	unrecognizedLicense = "Unrecognized License"
)

// Options configures [Build]. The zero value is usable.
type Options struct {
	// Now is the reference time for "Updated". Defaults to time.Now.
	Now time.Time

	ScoringURL  string
	PackageURL  string
	Application string

	// Tagger supplies compatibility, platform and module-type tags.
	// Defaults to DefaultTagger.
	Tagger Tagger

	// Numbers formats counters. The zero value uses English separators.
	Numbers library.NumberFormatter
}

func (o Options) withDefaults() Options {
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	if o.ScoringURL == "" {
		o.ScoringURL = DefaultScoringURL
	}
	if o.PackageURL == "" {
		o.PackageURL = DefaultPackageURL
	}
	if o.Application == "" {
		o.Application = DefaultApplication
	}
	if o.Tagger == nil {
		o.Tagger = DefaultTagger{}
	}
	return o
}

// builder appends rows in display order.
type builder struct {
	opts Options
	rows []Row
}

func (b *builder) separator() {
	b.rows = append(b.rows, Row{Kind: KindSeparator})
}

func (b *builder) tags(title string, tags ...Tag) {
	b.rows = append(b.rows, Row{Kind: KindTagList, Title: title, Tags: tags})
}

func (b *builder) label(title, text string, icon Icon) {
	b.rows = append(b.rows, Row{Kind: KindLabel, Title: title, Text: text, Icon: icon})
}

func (b *builder) link(title, target string) {
	b.rows = append(b.rows, Row{Kind: KindLink, Title: title, Text: target, Target: target})
}

func (b *builder) open(url string) *Action {
	return &Action{URL: url, Application: b.opts.Application}
}

func (b *builder) number(n int64) string {
	return b.opts.Numbers.Format(n)
}

// Build returns the metadata tree of lib. authorName is omitted when empty.
// Build never fails: missing optional fields only suppress their rows.
func Build(lib *library.Library, authorName string, opts Options) Metadata {
	b := &builder{opts: opts.withDefaults()}
	tagger := b.opts.Tagger

	if tags := tagger.Compatibility(lib); len(tags) > 0 {
		b.tags("Compatibility", tags...)
	}
	b.tags("Platforms", tagger.Platforms(lib)...)
	if tags := tagger.ModuleTypes(lib); len(tags) > 0 {
		b.tags("Module Type", tags...)
	}

	b.separator()
	b.tags("Popularity", popularityTag(lib.Popularity))
	if authorName != "" {
		b.label("Author", authorName, IconPerson)
	}

	b.separator()
	b.about(lib)

	b.separator()
	b.stats(lib)

	if len(lib.GitHub.Topics) > 0 {
		b.separator()
		topics := make([]Tag, len(lib.GitHub.Topics))
		for i, topic := range lib.GitHub.Topics {
			topics[i] = Tag{Text: topic, Color: ColorBlue}
		}
		b.tags("Topics", topics...)
	}

	return Metadata{Rows: b.rows}
}

func popularityTag(score *float64) Tag {
	label, hot := library.PopularityLabel(score)
	if hot {
		return Tag{Text: label, Icon: IconBolt, Color: ColorOrange}
	}
	return Tag{Text: label, Icon: IconLineChart, Color: ColorSecondaryText}
}

func (b *builder) about(lib *library.Library) {
	if home := lib.GitHub.URLs.Homepage; home != "" {
		b.link("Website", home)
	}
	if len(lib.Examples) > 0 {
		examples := make([]Tag, len(lib.Examples))
		for i, ex := range lib.Examples {
			examples[i] = Tag{Text: fmt.Sprintf("#%d", i+1), Color: ColorBlue, Action: b.open(ex)}
		}
		b.tags("Examples", examples...)
	}
	if lib.GitHub.HasNativeCode {
		b.label("Native Code", "", IconCodeBlock)
	}
	if lib.GitHub.HasTypes {
		b.label("TypeScript Types", "", IconTypeScript)
	}
	if library.HasConfigPlugin(lib) {
		b.label("Config Plugin", "", IconGear)
	}
	if name := lib.GitHub.License.Name; name != "" {
		if name == "Other" {
			name = unrecognizedLicense
		}
		b.label("License", name, IconDocument)
	}
}

func (b *builder) stats(lib *library.Library) {
	stats := lib.GitHub.Stats
	repo := lib.GitHub.URLs.Repo
	pkgURL := b.opts.PackageURL + lib.NpmPkg

	b.tags("Directory Score", Tag{
		Text:   fmt.Sprintf("%d / 100", lib.Score),
		Icon:   IconLeaderboard,
		Action: b.open(b.opts.ScoringURL),
	})
	b.tags("Updated", Tag{
		Text: library.TimeSince(stats.UpdatedAt, b.opts.Now),
		Icon: IconClock,
	})

	downloads := library.Unknown
	if n, ok := lib.Downloads(); ok {
		downloads = b.number(n)
	}
	b.tags("Monthly Downloads", Tag{Text: downloads, Icon: IconDownload, Action: b.open(pkgURL)})
	b.tags("Stars", Tag{Text: b.number(stats.Stars), Icon: IconStar, Action: b.open(repo + "/stargazers")})

	if n, ok := lib.Dependencies(); ok {
		title := "Dependencies"
		if n == 1 {
			title = "Dependency"
		}
		b.tags(title, Tag{Text: b.number(n), Icon: IconBox, Action: b.open(pkgURL + "?activeTab=dependencies")})
	}
	if size, ok := lib.PackageSize(); ok {
		b.tags("Package Size", Tag{Text: library.FormatBytes(size), Icon: IconDownload, Action: b.open(pkgURL + "?activeTab=code")})
	}

	b.tags("Forks", Tag{Text: b.number(stats.Forks), Icon: IconDuplicate, Action: b.open(repo + "/network/members")})
	b.tags("Watchers", Tag{Text: b.number(stats.Subscribers), Icon: IconEye, Action: b.open(repo + "/watchers")})
	b.tags("Issues", Tag{Text: b.number(stats.Issues), Icon: IconExclamationMark, Action: b.open(repo + "/issues")})
}
