package tesseract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumValues(t *testing.T) {
	assert.Equal(t, PageSegMode(0), PageSegOsdOnly)
	assert.Equal(t, PageSegMode(3), PageSegAuto)
	assert.Equal(t, PageSegMode(6), PageSegSingleBlock)
	assert.Equal(t, PageSegMode(13), PageSegRawLine)
	assert.Equal(t, EngineMode(3), EngineDefault)
	assert.Equal(t, PageIteratorLevel(4), LevelSymbol)
	assert.Equal(t, PolyBlockType(14), PolyBlockNoise)
	assert.Equal(t, Orientation(3), PageLeft)
}

func TestParsePageSegMode(t *testing.T) {
	tests := map[string]PageSegMode{
		"auto":        PageSegAuto,
		"single-line": PageSegSingleLine,
		"SINGLE_LINE": PageSegSingleLine,
		" raw-line ":  PageSegRawLine,
		"6":           PageSegSingleBlock,
		"0":           PageSegOsdOnly,
	}
	for in, want := range tests {
		got, err := ParsePageSegMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "14", "-1", "columns"} {
		_, err := ParsePageSegMode(bad)
		assert.Error(t, err, bad)
	}
}

func TestEnumStringRoundTrip(t *testing.T) {
	for m := PageSegOsdOnly; m <= PageSegRawLine; m++ {
		got, err := ParsePageSegMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	for m := EngineTesseractOnly; m <= EngineDefault; m++ {
		got, err := ParseEngineMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	for l := LevelBlock; l <= LevelSymbol; l++ {
		got, err := ParseLevel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}
}

func TestParseLevel_Aliases(t *testing.T) {
	for in, want := range map[string]PageIteratorLevel{
		"paragraph": LevelPara,
		"line":      LevelTextLine,
		"char":      LevelSymbol,
		"WORD":      LevelWord,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestEnumString_OutOfRange(t *testing.T) {
	assert.Equal(t, "42", PageSegMode(42).String())
	assert.Equal(t, "-1", Orientation(-1).String())
	assert.Equal(t, "flowing-text", PolyBlockFlowingText.String())
	assert.Equal(t, "top-to-bottom", LineOrderTopToBottom.String())
}

func TestPolyBlockType_Classes(t *testing.T) {
	assert.True(t, PolyBlockTable.IsText())
	assert.False(t, PolyBlockTable.IsImage())
	assert.True(t, PolyBlockHeadingImage.IsImage())
	assert.False(t, PolyBlockNoise.IsText())
	assert.False(t, PolyBlockNoise.IsImage())
}

func TestOrientationFromDegrees(t *testing.T) {
	tests := map[int]Orientation{
		0:   PageUp,
		45:  PageUp,
		46:  PageRight,
		90:  PageRight,
		135: PageRight,
		180: PageDown,
		225: PageDown,
		226: PageLeft,
		270: PageLeft,
		315: PageLeft,
		316: PageUp,
		359: PageUp,
		360: PageUp,
		450: PageRight,
		-90: PageLeft,
		-180: PageDown,
		-270: PageRight,
		630: PageLeft,
	}
	for deg, want := range tests {
		assert.Equal(t, want, orientationFromDegrees(deg), "%d degrees", deg)
	}
	assert.Equal(t, 270, PageLeft.Degrees())
}
