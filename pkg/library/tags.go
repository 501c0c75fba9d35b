package library

// Compatibility tags.
const (
	TagNewArchitecture     = "New Architecture"
	TagNewArchitectureOnly = "New Architecture Only"
	TagExpoGo              = "Expo Go"
	TagNightlyProgram      = "Nightly Program"
	TagDevTool             = "Development Tool"
	TagTemplate            = "Template"
	TagUnmaintained        = "Unmaintained"
	TagArchived            = "Archived"
)

// Platform tags, in display order.
const (
	PlatformIOS      = "iOS"
	PlatformAndroid  = "Android"
	PlatformWeb      = "Web"
	PlatformWindows  = "Windows"
	PlatformMacOS    = "macOS"
	PlatformTVOS     = "tvOS"
	PlatformVisionOS = "visionOS"
	PlatformFireOS   = "Fire OS"
	PlatformHorizon  = "Horizon"
	PlatformVegaOS   = "Vega OS"
)

// CompatibilityTags returns the compatibility tags of a library in display order.
func CompatibilityTags(l *Library) []string {
	var tags []string
	switch {
	case l.NewArchitecture == NewArchOnly:
		tags = append(tags, TagNewArchitectureOnly)
	case l.NewArchitecture == NewArchSupported,
		l.NewArchitecture == NewArchUnknown && l.GitHub.NewArchitecture:
		tags = append(tags, TagNewArchitecture)
	}
	if l.ExpoGo {
		tags = append(tags, TagExpoGo)
	}
	if l.NightlyProgram {
		tags = append(tags, TagNightlyProgram)
	}
	if l.Dev {
		tags = append(tags, TagDevTool)
	}
	if l.Template {
		tags = append(tags, TagTemplate)
	}
	if l.Unmaintained {
		tags = append(tags, TagUnmaintained)
	}
	if l.GitHub.IsArchived {
		tags = append(tags, TagArchived)
	}
	return tags
}

// SupportedPlatforms returns one tag per supported platform.
func SupportedPlatforms(l *Library) []string {
	platforms := []struct {
		ok   bool
		name string
	}{
		{l.IOS, PlatformIOS},
		{l.Android, PlatformAndroid},
		{l.Web, PlatformWeb},
		{l.Windows, PlatformWindows},
		{l.MacOS, PlatformMacOS},
		{l.TVOS, PlatformTVOS},
		{l.VisionOS, PlatformVisionOS},
		{l.FireOS, PlatformFireOS},
		{l.Horizon, PlatformHorizon},
		{l.VegaOS.Set, PlatformVegaOS},
	}
	var tags []string
	for _, p := range platforms {
		if p.ok {
			tags = append(tags, p.name)
		}
	}
	return tags
}

var moduleTypeLabels = map[ModuleType]string{
	ModuleTypeExpo:  "Expo Module",
	ModuleTypeNitro: "Nitro Module",
	ModuleTypeTurbo: "Turbo Module",
}

// ModuleTypeLabels returns the module type label, or nil when the library
// declares no known module type.
func ModuleTypeLabels(l *Library) []string {
	if label, ok := moduleTypeLabels[l.GitHub.ModuleType]; ok {
		return []string{label}
	}
	return nil
}

// HasConfigPlugin reports whether the library ships an Expo config plugin,
// either declared in the directory entry or detected in the repository.
func HasConfigPlugin(l *Library) bool {
	return l.ConfigPlugin.Set || l.GitHub.ConfigPlugin
}
