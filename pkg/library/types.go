package library

import "time"

// ModuleType classifies how a library integrates with the React Native runtime.
type ModuleType string

// Known module types. The empty ModuleType means the library declares none.
const (
	ModuleTypeExpo  ModuleType = "expo"
	ModuleTypeNitro ModuleType = "nitro"
	ModuleTypeTurbo ModuleType = "turbo"
)

// Library is one directory entry merged with its GitHub and npm statistics.
type Library struct {
	GithubURL string `json:"githubUrl"`
	NpmPkg    string `json:"npmPkg"`

	// Platform support
	IOS      bool `json:"ios,omitempty"`
	Android  bool `json:"android,omitempty"`
	Web      bool `json:"web,omitempty"`
	Windows  bool `json:"windows,omitempty"`
	MacOS    bool `json:"macos,omitempty"`
	TVOS     bool `json:"tvos,omitempty"`
	VisionOS bool `json:"visionos,omitempty"`
	FireOS   bool `json:"fireos,omitempty"`
	Horizon  bool `json:"horizon,omitempty"`
	VegaOS   Flag `json:"vegaos,omitzero"`
	ExpoGo   bool `json:"expoGo,omitempty"`

	Unmaintained        bool           `json:"unmaintained,omitempty"`
	Dev                 bool           `json:"dev,omitempty"`
	Template            bool           `json:"template,omitempty"`
	NewArchitecture     NewArchSupport `json:"newArchitecture,omitzero"`
	NewArchitectureNote string         `json:"newArchitectureNote,omitempty"`
	ConfigPlugin        Flag           `json:"configPlugin,omitzero"`
	NightlyProgram      bool           `json:"nightlyProgram,omitempty"`
	Alternatives        []string       `json:"alternatives,omitempty"`
	Examples            []string       `json:"examples,omitempty"`
	Images              []string       `json:"images,omitempty"`

	GitHub GitHub `json:"github"`
	Npm    *Npm   `json:"npm,omitempty"`

	Score                  int      `json:"score"`
	Popularity             *float64 `json:"popularity,omitempty"`
	MatchingScoreModifiers []string `json:"matchingScoreModifiers,omitempty"`
}

// GitHub holds repository metadata collected by the directory.
type GitHub struct {
	Name            string     `json:"name"`
	FullName        string     `json:"fullName"`
	Description     string     `json:"description,omitempty"`
	Registry        string     `json:"registry,omitempty"`
	Topics          []string   `json:"topics,omitempty"`
	HasTypes        bool       `json:"hasTypes,omitempty"`
	NewArchitecture bool       `json:"newArchitecture,omitempty"`
	IsArchived      bool       `json:"isArchived,omitempty"`
	IsPrivate       bool       `json:"isPrivate,omitempty"`
	HasNativeCode   bool       `json:"hasNativeCode"`
	HasReadme       bool       `json:"hasReadme,omitempty"`
	ConfigPlugin    bool       `json:"configPlugin,omitempty"`
	ModuleType      ModuleType `json:"moduleType,omitempty"`
	URLs            URLs       `json:"urls"`
	Stats           Stats      `json:"stats"`
	License         License    `json:"license"`
}

// URLs are the repository and homepage links of a library.
type URLs struct {
	Repo     string `json:"repo"`
	Homepage string `json:"homepage,omitempty"`
}

// Stats is a snapshot of repository statistics.
type Stats struct {
	HasIssues      bool `json:"hasIssues"`
	HasWiki        bool `json:"hasWiki"`
	HasProjects    bool `json:"hasProjects"`
	HasDiscussions bool `json:"hasDiscussions"`

	UpdatedAt time.Time `json:"updatedAt"`
	CreatedAt time.Time `json:"createdAt"`
	PushedAt  time.Time `json:"pushedAt"`

	Issues      int64 `json:"issues"`
	Subscribers int64 `json:"subscribers"`
	Stars       int64 `json:"stars"`
	Forks       int64 `json:"forks"`

	// Dependencies is nil when the directory could not count them.
	Dependencies *int64 `json:"dependencies,omitempty"`
}

// License describes the repository license as reported by GitHub.
type License struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	SpdxID string `json:"spdxId"`
	URL    string `json:"url"`
	ID     string `json:"id"`
}

// Npm holds npm statistics. Every field is optional.
type Npm struct {
	Downloads         *int64 `json:"downloads,omitempty"`
	WeekDownloads     *int64 `json:"weekDownloads,omitempty"`
	Size              *int64 `json:"size,omitempty"`
	VersionsCount     *int64 `json:"versionsCount,omitempty"`
	LatestRelease     string `json:"latestRelease,omitempty"`
	LatestReleaseDate string `json:"latestReleaseDate,omitempty"`
}

// Downloads returns the monthly download count, if known.
func (l *Library) Downloads() (int64, bool) {
	if l.Npm == nil || l.Npm.Downloads == nil {
		return 0, false
	}
	return *l.Npm.Downloads, true
}

// PackageSize returns the unpacked package size in bytes. A zero size is
// treated as unknown.
func (l *Library) PackageSize() (int64, bool) {
	if l.Npm == nil || l.Npm.Size == nil || *l.Npm.Size <= 0 {
		return 0, false
	}
	return *l.Npm.Size, true
}

// Dependencies returns the dependency count, if known.
func (l *Library) Dependencies() (int64, bool) {
	if l.GitHub.Stats.Dependencies == nil {
		return 0, false
	}
	return *l.GitHub.Stats.Dependencies, true
}
