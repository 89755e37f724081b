// Package schema describes Arrow logical types independent of any concrete
// Arrow implementation: a closed set of DataType kinds, Field metadata, and
// the Strategy annotations that disambiguate ambiguous event<->type mappings.
package schema

import "fmt"

// Kind is the tag of a DataType variant.
type Kind int

const (
	Null Kind = iota
	Boolean
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float16
	Float32
	Float64
	Utf8
	LargeUtf8
	Utf8View
	Binary
	LargeBinary
	BinaryView
	FixedSizeBinary
	Date32
	Date64
	Time32
	Time64
	Timestamp
	Duration
	Decimal128
	List
	LargeList
	FixedSizeList
	Struct
	Map
	Dictionary
	Union
)

// kindNames holds the canonical (non-alias) identifier for each Kind, used
// both for printing and as the target of alias resolution while parsing.
var kindNames = map[Kind]string{
	Null:            "Null",
	Boolean:         "Boolean",
	Int8:            "Int8",
	Int16:           "Int16",
	Int32:           "Int32",
	Int64:           "Int64",
	Uint8:           "UInt8",
	Uint16:          "UInt16",
	Uint32:          "UInt32",
	Uint64:          "UInt64",
	Float16:         "Float16",
	Float32:         "Float32",
	Float64:         "Float64",
	Utf8:            "Utf8",
	LargeUtf8:       "LargeUtf8",
	Utf8View:        "Utf8View",
	Binary:          "Binary",
	LargeBinary:     "LargeBinary",
	BinaryView:      "BinaryView",
	FixedSizeBinary: "FixedSizeBinary",
	Date32:          "Date32",
	Date64:          "Date64",
	Time32:          "Time32",
	Time64:          "Time64",
	Timestamp:       "Timestamp",
	Duration:        "Duration",
	Decimal128:      "Decimal128",
	List:            "List",
	LargeList:       "LargeList",
	FixedSizeList:   "FixedSizeList",
	Struct:          "Struct",
	Map:             "Map",
	Dictionary:      "Dictionary",
	Union:           "Union",
}

// identToKind maps every accepted identifier -- canonical name and alias --
// to its Kind. Aliases: I8≡Int8, U32≡UInt32, F64≡Float64, Bool≡Boolean, etc.
var identToKind = map[string]Kind{
	"Null": Null, "Boolean": Boolean, "Bool": Boolean,
	"Int8": Int8, "I8": Int8,
	"Int16": Int16, "I16": Int16,
	"Int32": Int32, "I32": Int32,
	"Int64": Int64, "I64": Int64,
	"UInt8": Uint8, "U8": Uint8,
	"UInt16": Uint16, "U16": Uint16,
	"UInt32": Uint32, "U32": Uint32,
	"UInt64": Uint64, "U64": Uint64,
	"Float16": Float16, "F16": Float16,
	"Float32": Float32, "F32": Float32,
	"Float64": Float64, "F64": Float64,
	"Utf8": Utf8, "LargeUtf8": LargeUtf8, "Utf8View": Utf8View,
	"Binary": Binary, "LargeBinary": LargeBinary, "BinaryView": BinaryView,
	"FixedSizeBinary": FixedSizeBinary,
	"Date32":          Date32, "Date64": Date64,
	"Time32": Time32, "Time64": Time64,
	"Timestamp":     Timestamp,
	"Duration":      Duration,
	"Decimal128":    Decimal128,
	"List":          List,
	"LargeList":     LargeList,
	"FixedSizeList": FixedSizeList,
	"Struct":        Struct,
	"Map":           Map,
	"Dictionary":    Dictionary,
	"Union":         Union,
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsNested reports whether a Kind carries one or more child Fields.
func (k Kind) IsNested() bool {
	switch k {
	case List, LargeList, FixedSizeList, Struct, Map, Dictionary, Union:
		return true
	default:
		return false
	}
}

// TimeUnit is the granularity of a temporal column.
type TimeUnit int

const (
	Second TimeUnit = iota
	Millisecond
	Microsecond
	Nanosecond
)

var timeUnitNames = [...]string{"Second", "Millisecond", "Microsecond", "Nanosecond"}

func (u TimeUnit) String() string {
	if int(u) < 0 || int(u) >= len(timeUnitNames) {
		return fmt.Sprintf("TimeUnit(%d)", int(u))
	}
	return timeUnitNames[u]
}

func parseTimeUnit(s string) (TimeUnit, bool) {
	for i, n := range timeUnitNames {
		if n == s {
			return TimeUnit(i), true
		}
	}
	return 0, false
}
