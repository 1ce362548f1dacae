package tesseract

// FontInfo describes a font known to the recognizer. Values are shared
// between words set in the same font.
type FontInfo struct {
	Name         string `json:"name"`
	ID           int    `json:"id"`
	IsItalic     bool   `json:"italic"`
	IsBold       bool   `json:"bold"`
	IsFixedPitch bool   `json:"fixed_pitch"`
	IsSerif      bool   `json:"serif"`
}

// FontAttributes are the font properties of a recognized word.
type FontAttributes struct {
	*FontInfo
	IsUnderlined bool `json:"underlined"`
	IsSmallCaps  bool `json:"small_caps"`
	PointSize    int  `json:"point_size"`
}
