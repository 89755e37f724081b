// Package tracer implements spec.md §4.G: the schema tracer, a tree of
// per-node state machines that accumulates evidence from sample events
// and/or type-description events and converges to a schema.Schema.
// Grounded on loicalleyne-bodkin's Bodkin/fieldPos unification pass
// (bodkin.go: Unify/UnifyScan/merge, option.go: the functional-option
// configuration pattern) -- bodkin infers a schema incrementally from JSON
// samples the same way this tracer does from the neutral event stream, and
// its Option pattern is reused verbatim for TracingOptions.
package tracer

import "github.com/arrowtrait/traitarrow/schema"

// Options configures tracing (spec.md §4.G). The zero value turns every
// option off; DefaultOptions holds the defaults that New, FromSamples and
// FromType start from before applying any Option.
type Options struct {
	// CoerceNumbers widens conflicting numeric evidence instead of failing
	// (spec.md §4.G, §8 "Numeric coercion matrix").
	CoerceNumbers bool
	// GuessDates traces an ISO-8601-shaped string as Date64 with a
	// UtcStrAsDate64/NaiveStrAsDate64 strategy (spec.md §4.G, §8 scenario 6).
	GuessDates bool
	// StringDictionaryEncoding traces strings as Dictionary(UInt32, Utf8-ish)
	// instead of a plain bytes column.
	StringDictionaryEncoding bool
	// StringsAsLargeUtf8, when false (the default), traces strings as
	// Utf8 instead of LargeUtf8.
	StringsAsLargeUtf8 bool
	// AllowNullFields accepts a field seen only as null as Null; otherwise
	// Finalize reports an error for it.
	AllowNullFields bool
	// MapAsStruct traces a StartMap as a struct instead of a Map(entry).
	MapAsStruct bool
	// EnumsWithoutDataAsStrings collapses a union whose variants are all
	// null-typed to a string (or dictionary) column (spec.md §4.G:
	// enums_without_data_as_strings; SPEC_FULL supplemented feature 4).
	EnumsWithoutDataAsStrings bool
	// EnumsWithNamedFieldsAsStructs applies the EnumsWithNamedFieldsAsStructs
	// strategy to named-field union variants at Finalize.
	EnumsWithNamedFieldsAsStructs bool
	// FromTypeBudget caps the number of recursive-type expansions FromType
	// will perform before failing with a TooDeeplyNested error (SPEC_FULL feature 2).
	// Zero means unbounded.
	FromTypeBudget int
	// Overwrites replaces a traced subtree wholesale, keyed by its rooted
	// path ("$.a.b") (SPEC_FULL feature 1).
	Overwrites map[string]schema.Field
}

// Option mirrors bodkin's functional-option configuration pattern
// (option.go: `type Option func(config)`).
type Option func(*Options)

// DefaultOptions returns the spec's stated defaults: coercion, date
// guessing and map-as-struct on; large-utf8/dictionary/enum-as-string off.
func DefaultOptions() Options {
	return Options{
		CoerceNumbers:   true,
		GuessDates:      true,
		AllowNullFields: true,
		MapAsStruct:     true,
	}
}

func WithCoerceNumbers(v bool) Option        { return func(o *Options) { o.CoerceNumbers = v } }
func WithGuessDates(v bool) Option           { return func(o *Options) { o.GuessDates = v } }
func WithStringDictionaryEncoding(v bool) Option {
	return func(o *Options) { o.StringDictionaryEncoding = v }
}
func WithStringsAsLargeUtf8(v bool) Option   { return func(o *Options) { o.StringsAsLargeUtf8 = v } }
func WithAllowNullFields(v bool) Option      { return func(o *Options) { o.AllowNullFields = v } }
func WithMapAsStruct(v bool) Option          { return func(o *Options) { o.MapAsStruct = v } }
func WithEnumsWithoutDataAsStrings(v bool) Option {
	return func(o *Options) { o.EnumsWithoutDataAsStrings = v }
}
func WithEnumsWithNamedFieldsAsStructs(v bool) Option {
	return func(o *Options) { o.EnumsWithNamedFieldsAsStructs = v }
}
func WithFromTypeBudget(n int) Option { return func(o *Options) { o.FromTypeBudget = n } }
func WithOverwrite(path string, f schema.Field) Option {
	return func(o *Options) {
		if o.Overwrites == nil {
			o.Overwrites = make(map[string]schema.Field)
		}
		o.Overwrites[path] = f
	}
}

func newOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
