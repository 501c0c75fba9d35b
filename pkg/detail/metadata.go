package detail

// Kind is the type of a metadata row.
type Kind string

const (
	KindTagList   Kind = "tag_list"
	KindLabel     Kind = "label"
	KindLink      Kind = "link"
	KindSeparator Kind = "separator"
)

// Color is a semantic tag color. Hosts map it onto their own palette.
type Color string

const (
	ColorNone          Color = ""
	ColorBlue          Color = "blue"
	ColorGreen         Color = "green"
	ColorMagenta       Color = "magenta"
	ColorOrange        Color = "orange"
	ColorPurple        Color = "purple"
	ColorRed           Color = "red"
	ColorYellow        Color = "yellow"
	ColorPrimaryText   Color = "primary-text"
	ColorSecondaryText Color = "secondary-text"
)

// Icon names a host icon.
type Icon string

const (
	IconNone            Icon = ""
	IconBolt            Icon = "bolt"
	IconLineChart       Icon = "line-chart"
	IconPerson          Icon = "person"
	IconCodeBlock       Icon = "code-block"
	IconTypeScript      Icon = "typescript"
	IconGear            Icon = "gear"
	IconDocument        Icon = "document"
	IconLeaderboard     Icon = "leaderboard"
	IconClock           Icon = "clock"
	IconDownload        Icon = "download"
	IconStar            Icon = "star"
	IconBox             Icon = "box"
	IconDuplicate       Icon = "duplicate"
	IconEye             Icon = "eye"
	IconExclamationMark Icon = "exclamation-mark"
)

// Action asks the host to open URL, preferably in Application.
type Action struct {
	URL         string `json:"url"`
	Application string `json:"application,omitempty"`
}

// Tag is one item of a tag list.
type Tag struct {
	Text   string  `json:"text"`
	Color  Color   `json:"color,omitempty"`
	Icon   Icon    `json:"icon,omitempty"`
	Action *Action `json:"action,omitempty"`
}

// Row is one entry of the metadata tree. Which fields are used depends on
// Kind: tag lists use Title and Tags, labels Title, Text and Icon, links
// Title, Text and Target. Separators use none.
type Row struct {
	Kind   Kind   `json:"kind"`
	Title  string `json:"title,omitempty"`
	Text   string `json:"text,omitempty"`
	Icon   Icon   `json:"icon,omitempty"`
	Target string `json:"target,omitempty"`
	Tags   []Tag  `json:"tags,omitempty"`
}

// Metadata is the ordered metadata tree of a library.
type Metadata struct {
	Rows []Row `json:"rows"`
}

// Row returns the first row with the given title.
func (m Metadata) Row(title string) (Row, bool) {
	for _, r := range m.Rows {
		if r.Title == title && r.Kind != KindSeparator {
			return r, true
		}
	}
	return Row{}, false
}

// Titles returns the titles of all rows, using "---" for separators.
func (m Metadata) Titles() []string {
	titles := make([]string, len(m.Rows))
	for i, r := range m.Rows {
		if r.Kind == KindSeparator {
			titles[i] = "---"
			continue
		}
		titles[i] = r.Title
	}
	return titles
}

// Target locates an actionable element of the tree. Tag is -1 for links.
type Target struct {
	Row    int
	Tag    int
	Action Action
}

// Targets returns every actionable element in display order: tags with an
// action and links.
func (m Metadata) Targets() []Target {
	var out []Target
	for i, r := range m.Rows {
		switch r.Kind {
		case KindLink:
			if r.Target != "" {
				out = append(out, Target{Row: i, Tag: -1, Action: Action{URL: r.Target}})
			}
		case KindTagList:
			for j, t := range r.Tags {
				if t.Action != nil {
					out = append(out, Target{Row: i, Tag: j, Action: *t.Action})
				}
			}
		}
	}
	return out
}
