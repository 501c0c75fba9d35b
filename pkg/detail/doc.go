// Package detail builds the detail panel of a library.
//
// The panel has two parts, matching what a host launcher renders next to a
// list item: a short markdown body ([Markdown]) and an ordered metadata
// tree ([Build]). Both are pure functions of a [library.Library] snapshot;
// the only external input is the author name, which callers resolve
// separately through the registry package and pass in once known.
//
// # Rows
//
// The metadata tree is a flat list of [Row] values. Each row is a tag list,
// a label, a link or a separator. Rows are pushed in a fixed order and
// only when their source field is present, so a record with no optional
// data yields just the always-present groups:
//
//	Platforms, Popularity, Directory Score, Updated, Monthly Downloads,
//	Stars, Forks, Watchers, Issues
//
// Tags may carry an [Action]: a URL plus an application hint that a host
// passes to its "open URL" primitive ([Opener]).
//
// # Vocabulary
//
// Compatibility, platform and module-type tags, and their colors, come from
// a [Tagger]. [DefaultTagger] implements the vocabulary of the React Native
// Directory.
package detail
