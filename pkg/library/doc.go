// Package library models a React Native directory library record.
//
// # Overview
//
// A [Library] is a read-only snapshot supplied by the directory data
// provider: identity (npm package, repository), capability flags, platform
// support, popularity, and repository statistics. Records are decoded from
// JSON with [Decode] and are never mutated afterwards.
//
// # Vocabulary
//
// The package also owns the tag vocabulary derived from a record:
//
//   - [CompatibilityTags]: new architecture, Expo Go, nightly program, ...
//   - [SupportedPlatforms]: one entry per supported platform, in display order
//   - [ModuleTypeLabels]: Expo, Nitro or Turbo module
//   - [PopularityLabel]: a label and a "hot" flag from the popularity score
//   - [HasConfigPlugin]: whether the library ships a config plugin
//
// # Formatting
//
// [FormatNumber] localises thousands separators, [FormatBytes] picks a human
// unit and [TimeSince] renders a relative time such as "3 months ago".
package library
