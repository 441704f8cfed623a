package model

import (
	herrors "github.com/Aman-CERP/hanzi/internal/errors"
)

// RadicalType classifies the role a radical plays in the characters it
// appears in.
type RadicalType string

const (
	RadicalSemantic RadicalType = "semantic"
	RadicalPhonetic RadicalType = "phonetic"
	RadicalBoth     RadicalType = "both"
	RadicalUnknown  RadicalType = "unknown"
)

var radicalTypes = []RadicalType{RadicalSemantic, RadicalPhonetic, RadicalBoth, RadicalUnknown}

// RadicalTypes returns the closed set of radical types in declaration order.
func RadicalTypes() []RadicalType {
	out := make([]RadicalType, len(radicalTypes))
	copy(out, radicalTypes)
	return out
}

func (t RadicalType) String() string { return string(t) }

// ParseRadicalType maps a literal to a RadicalType. An empty literal means
// the type was never recorded and yields RadicalUnknown.
func ParseRadicalType(s string) (RadicalType, error) {
	if s == "" {
		return RadicalUnknown, nil
	}
	for _, t := range radicalTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", herrors.InvalidEnum("radical type", s)
}

// StrokeType is one of the eight basic strokes. Values are the Chinese
// stroke names as they appear in record files.
type StrokeType string

const (
	StrokeHorizontal    StrokeType = "横"
	StrokeVertical      StrokeType = "竖"
	StrokeLeftDiagonal  StrokeType = "撇"
	StrokeRightDiagonal StrokeType = "捺"
	StrokeDot           StrokeType = "点"
	StrokeHook          StrokeType = "钩"
	StrokeRising        StrokeType = "提"
	StrokeBend          StrokeType = "折"
)

var strokeTypes = []StrokeType{
	StrokeHorizontal, StrokeVertical, StrokeLeftDiagonal, StrokeRightDiagonal,
	StrokeDot, StrokeHook, StrokeRising, StrokeBend,
}

// StrokeTypes returns the eight stroke types in declaration order.
func StrokeTypes() []StrokeType {
	out := make([]StrokeType, len(strokeTypes))
	copy(out, strokeTypes)
	return out
}

func (s StrokeType) String() string { return string(s) }

// ParseStrokeType maps a literal to a StrokeType.
func ParseStrokeType(s string) (StrokeType, error) {
	for _, t := range strokeTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", herrors.InvalidEnum("stroke type", s)
}

// ParseStrokeOrder parses every literal, failing on the first unknown one.
func ParseStrokeOrder(literals []string) ([]StrokeType, error) {
	out := make([]StrokeType, 0, len(literals))
	for _, l := range literals {
		st, err := ParseStrokeType(l)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

// StrokeLiterals is the inverse of ParseStrokeOrder.
func StrokeLiterals(order []StrokeType) []string {
	out := make([]string, len(order))
	for i, s := range order {
		out[i] = string(s)
	}
	return out
}
