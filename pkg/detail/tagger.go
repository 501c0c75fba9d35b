package detail

import "github.com/matzehuels/libpanel/pkg/library"

// Tagger derives the vocabulary tags of a library. Implementations decide
// both the tag text and its color.
type Tagger interface {
	Compatibility(lib *library.Library) []Tag
	Platforms(lib *library.Library) []Tag
	ModuleTypes(lib *library.Library) []Tag
}

// DefaultTagger uses the React Native Directory vocabulary from the library
// package.
type DefaultTagger struct{}

var compatibilityColors = map[string]Color{
	library.TagNewArchitecture:     ColorGreen,
	library.TagNewArchitectureOnly: ColorGreen,
	library.TagExpoGo:              ColorPurple,
	library.TagNightlyProgram:      ColorMagenta,
	library.TagDevTool:             ColorBlue,
	library.TagTemplate:            ColorBlue,
	library.TagUnmaintained:        ColorRed,
	library.TagArchived:            ColorRed,
}

var platformColors = map[string]Color{
	library.PlatformIOS:      ColorPrimaryText,
	library.PlatformAndroid:  ColorGreen,
	library.PlatformWeb:      ColorOrange,
	library.PlatformWindows:  ColorBlue,
	library.PlatformMacOS:    ColorPrimaryText,
	library.PlatformTVOS:     ColorSecondaryText,
	library.PlatformVisionOS: ColorPurple,
	library.PlatformFireOS:   ColorOrange,
	library.PlatformHorizon:  ColorBlue,
	library.PlatformVegaOS:   ColorMagenta,
}

var moduleTypeColors = map[string]Color{
	"Expo Module":  ColorPurple,
	"Nitro Module": ColorRed,
	"Turbo Module": ColorYellow,
}

func (DefaultTagger) Compatibility(lib *library.Library) []Tag {
	return colored(library.CompatibilityTags(lib), compatibilityColors)
}

func (DefaultTagger) Platforms(lib *library.Library) []Tag {
	return colored(library.SupportedPlatforms(lib), platformColors)
}

func (DefaultTagger) ModuleTypes(lib *library.Library) []Tag {
	return colored(library.ModuleTypeLabels(lib), moduleTypeColors)
}

func colored(texts []string, colors map[string]Color) []Tag {
	if len(texts) == 0 {
		return nil
	}
	tags := make([]Tag, len(texts))
	for i, text := range texts {
		tags[i] = Tag{Text: text, Color: colors[text]}
	}
	return tags
}
