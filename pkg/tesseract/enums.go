package tesseract

import (
	"fmt"
	"strconv"
	"strings"
)

func enumName[T ~int32](v T, names []string) string {
	if v >= 0 && int(v) < len(names) {
		return names[int(v)]
	}
	return strconv.Itoa(int(v))
}

// parseEnum accepts a name (case and '_' insensitive) or the numeric value.
func parseEnum[T ~int32](s, kind string, names []string) (T, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for i, n := range names {
		if n == key {
			return T(i), nil
		}
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 0 && n < len(names) {
		return T(n), nil
	}
	return 0, fmt.Errorf("unknown %s %q", kind, s)
}

// PageSegMode is Tesseract's page segmentation mode.
type PageSegMode int32

const (
	// PageSegOsdOnly runs orientation and script detection only.
	PageSegOsdOnly PageSegMode = iota
	// PageSegAutoOsd runs automatic segmentation with orientation and script detection.
	PageSegAutoOsd
	// PageSegAutoOnly runs automatic segmentation without OSD or OCR.
	PageSegAutoOnly
	// PageSegAuto runs fully automatic segmentation without OSD. This is the default.
	PageSegAuto
	PageSegSingleColumn
	PageSegSingleBlockVertText
	PageSegSingleBlock
	PageSegSingleLine
	PageSegSingleWord
	PageSegCircleWord
	PageSegSingleChar
	PageSegSparseText
	PageSegSparseTextOsd
	PageSegRawLine
)

var pageSegModeNames = []string{
	"osd-only", "auto-osd", "auto-only", "auto", "single-column",
	"single-block-vert-text", "single-block", "single-line", "single-word",
	"circle-word", "single-char", "sparse-text", "sparse-text-osd", "raw-line",
}

func (m PageSegMode) String() string { return enumName(m, pageSegModeNames) }

// ParsePageSegMode parses a mode name such as "single-line" or its number.
func ParsePageSegMode(s string) (PageSegMode, error) {
	return parseEnum[PageSegMode](s, "page segmentation mode", pageSegModeNames)
}

// EngineMode selects the recognizer.
type EngineMode int32

const (
	EngineTesseractOnly EngineMode = iota
	EngineLstmOnly
	EngineTesseractAndLstm
	// EngineDefault uses whatever the language data supports.
	EngineDefault
)

var engineModeNames = []string{"tesseract-only", "lstm-only", "tesseract-and-lstm", "default"}

func (m EngineMode) String() string { return enumName(m, engineModeNames) }

func ParseEngineMode(s string) (EngineMode, error) {
	return parseEnum[EngineMode](s, "engine mode", engineModeNames)
}

// PageIteratorLevel is a level of the page layout hierarchy.
type PageIteratorLevel int32

const (
	LevelBlock PageIteratorLevel = iota
	LevelPara
	LevelTextLine
	LevelWord
	LevelSymbol
)

var levelNames = []string{"block", "para", "textline", "word", "symbol"}

func (l PageIteratorLevel) String() string { return enumName(l, levelNames) }

func ParseLevel(s string) (PageIteratorLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paragraph":
		return LevelPara, nil
	case "line", "text-line":
		return LevelTextLine, nil
	case "char", "character":
		return LevelSymbol, nil
	}
	return parseEnum[PageIteratorLevel](s, "page iterator level", levelNames)
}

// PolyBlockType classifies a layout block.
type PolyBlockType int32

const (
	PolyBlockUnknown PolyBlockType = iota
	PolyBlockFlowingText
	PolyBlockHeadingText
	PolyBlockPullOutText
	PolyBlockEquation
	PolyBlockInlineEquation
	PolyBlockTable
	PolyBlockVerticalText
	PolyBlockCaptionText
	PolyBlockFlowingImage
	PolyBlockHeadingImage
	PolyBlockPullOutImage
	PolyBlockHorzLine
	PolyBlockVertLine
	PolyBlockNoise
)

var polyBlockNames = []string{
	"unknown", "flowing-text", "heading-text", "pull-out-text", "equation",
	"inline-equation", "table", "vertical-text", "caption-text",
	"flowing-image", "heading-image", "pull-out-image", "horz-line",
	"vert-line", "noise",
}

func (b PolyBlockType) String() string { return enumName(b, polyBlockNames) }

// IsText reports whether the block holds text.
func (b PolyBlockType) IsText() bool {
	switch b {
	case PolyBlockFlowingText, PolyBlockHeadingText, PolyBlockPullOutText,
		PolyBlockEquation, PolyBlockInlineEquation, PolyBlockTable,
		PolyBlockVerticalText, PolyBlockCaptionText:
		return true
	}
	return false
}

// IsImage reports whether the block is a picture.
func (b PolyBlockType) IsImage() bool {
	switch b {
	case PolyBlockFlowingImage, PolyBlockHeadingImage, PolyBlockPullOutImage:
		return true
	}
	return false
}

// Orientation is the direction the top of the page faces.
type Orientation int32

const (
	PageUp Orientation = iota
	PageRight
	PageDown
	PageLeft
)

var orientationNames = []string{"page-up", "page-right", "page-down", "page-left"}

func (o Orientation) String() string { return enumName(o, orientationNames) }

// Degrees is the clockwise rotation that turns the page upright.
func (o Orientation) Degrees() int {
	return int(o) * 90
}

// orientationFromDegrees maps a detected rotation to the nearest quadrant.
// Angles outside 0..359 are wrapped first.
func orientationFromDegrees(deg int) Orientation {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	switch {
	case deg > 315 || deg <= 45:
		return PageUp
	case deg <= 135:
		return PageRight
	case deg <= 225:
		return PageDown
	default:
		return PageLeft
	}
}

// WritingDirection of the text in a block.
type WritingDirection int32

const (
	WritingLeftToRight WritingDirection = iota
	WritingRightToLeft
	WritingTopToBottom
)

var directionNames = []string{"left-to-right", "right-to-left", "top-to-bottom"}

func (d WritingDirection) String() string { return enumName(d, directionNames) }

// TextLineOrder is the order in which lines of a block are read.
type TextLineOrder int32

const (
	LineOrderLeftToRight TextLineOrder = iota
	LineOrderRightToLeft
	LineOrderTopToBottom
)

var lineOrderNames = []string{"left-to-right", "right-to-left", "top-to-bottom"}

func (o TextLineOrder) String() string { return enumName(o, lineOrderNames) }
