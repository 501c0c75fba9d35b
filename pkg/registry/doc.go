// Package registry looks up package authors in the npm registry.
//
// # Overview
//
// [Client] fetches the "latest" document of a package
// (GET <base>/<package>/latest) and decodes it into a [Record]. A registry
// answer with a non-success status is not an error: FetchLatest returns a nil
// record, meaning "no author available". Only transport failures and
// undecodable bodies are errors, coded TRANSPORT_FAILURE and PARSE_FAILURE.
//
// [Lookup] binds a fetch to the identifier currently on display. It exposes
// a tri-state [State] (pending, ready, failed), issues one request per
// distinct identifier, and discards the result of any request superseded by
// a newer identifier.
//
// # Usage
//
//	client := registry.NewClient(registry.WithCache(c, 24*time.Hour))
//	lookup := registry.NewLookup(client, registry.WithNotify(func(s registry.State) {
//	    program.Send(authorMsg{})
//	}))
//	lookup.Request(ctx, "react-native-reanimated")
//	// later
//	name := lookup.State().AuthorName()
//
// # Caching
//
// Successful records and 404/410 answers are cached under
// "npm:latest:<package>" for the configured TTL. Cache failures are logged
// and never fail a lookup.
package registry
