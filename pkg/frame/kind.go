package frame

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
)

// Kind classifies a column by its semantic type. It is assigned once per
// column from the Arrow data type and switched over explicitly wherever
// behavior depends on the column's semantics.
type Kind int

const (
	// KindUnknown covers types no other kind claims.
	KindUnknown Kind = iota
	// KindString covers utf8 variants and string-valued dictionaries.
	KindString
	// KindBoolean covers bool columns.
	KindBoolean
	// KindInteger covers all signed and unsigned integer widths.
	KindInteger
	// KindFloat covers floating point and decimal columns.
	KindFloat
	// KindDate covers calendar dates without a time component.
	KindDate
	// KindTime covers time-of-day columns.
	KindTime
	// KindDatetime covers timestamps.
	KindDatetime
	// KindDuration covers elapsed-time columns.
	KindDuration
	// KindList covers list and fixed-size-list columns.
	KindList
	// KindStruct covers struct and map columns.
	KindStruct
)

// KindOf derives the Kind of an Arrow data type.
func KindOf(dt arrow.DataType) Kind {
	switch dt.ID() {
	case arrow.STRING, arrow.LARGE_STRING, arrow.STRING_VIEW:
		return KindString
	case arrow.BOOL:
		return KindBoolean
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return KindInteger
	case arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64,
		arrow.DECIMAL128, arrow.DECIMAL256:
		return KindFloat
	case arrow.DATE32, arrow.DATE64:
		return KindDate
	case arrow.TIME32, arrow.TIME64:
		return KindTime
	case arrow.TIMESTAMP:
		return KindDatetime
	case arrow.DURATION:
		return KindDuration
	case arrow.LIST, arrow.LARGE_LIST, arrow.FIXED_SIZE_LIST, arrow.LIST_VIEW:
		return KindList
	case arrow.STRUCT, arrow.MAP:
		return KindStruct
	case arrow.DICTIONARY:
		// Dictionary-encoded strings behave like categoricals.
		if dict, ok := dt.(*arrow.DictionaryType); ok {
			if KindOf(dict.ValueType) == KindString {
				return KindString
			}
		}
		return KindUnknown
	default:
		return KindUnknown
	}
}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindDatetime:
		return "datetime"
	case KindDuration:
		return "duration"
	case KindList:
		return "list"
	case KindStruct:
		return "struct"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// FieldType maps the kind to the coarse type name exposed to display
// consumers. Durations surface as numbers, matching how they are summarized.
func (k Kind) FieldType() string {
	switch k {
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindFloat, KindDuration:
		return "number"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindDatetime:
		return "datetime"
	default:
		return "unknown"
	}
}

// Numeric reports whether values of this kind order as numbers.
func (k Kind) Numeric() bool {
	return k == KindInteger || k == KindFloat
}

// Temporal reports whether values of this kind carry a time component.
func (k Kind) Temporal() bool {
	return k == KindDate || k == KindTime || k == KindDatetime
}

// Searchable reports whether a column of this kind participates in
// substring search. List columns are excluded: substring matching inside
// list elements is not supported yet.
func (k Kind) Searchable() bool {
	switch k {
	case KindString, KindBoolean, KindInteger, KindFloat,
		KindDate, KindTime, KindDatetime:
		return true
	default:
		return false
	}
}
