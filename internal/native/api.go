package native

// Handles are plain uintptr values. Tesseract's BOOL is a C int, enums are
// C ints, and size_t maps to uintptr.

// TessAPI holds the Tesseract C API entry points used by the binding.
type TessAPI struct {
	Version         func() uintptr
	DeleteText      func(text uintptr)
	BaseAPICreate   func() uintptr
	BaseAPIDelete   func(handle uintptr)
	BaseAPIInit4    func(handle, datapath uintptr, language string, mode int32, configs uintptr, configsSize int32, varNames, varValues uintptr, varsSize uintptr, setOnlyNonDebug int32) int32
	BaseAPIClear    func(handle uintptr)
	BaseAPIEnd      func(handle uintptr)
	SetInputName    func(handle uintptr, name string)
	SetVariable     func(handle uintptr, name, value string) int32
	SetDebugVar     func(handle uintptr, name, value string) int32
	GetIntVariable  func(handle uintptr, name string, value *int32) int32
	GetBoolVariable func(handle uintptr, name string, value *int32) int32
	GetDoubleVar    func(handle uintptr, name string, value *float64) int32
	GetStringVar    func(handle uintptr, name string) uintptr
	PrintVariables  func(handle uintptr, filename string) int32
	SetPageSegMode  func(handle uintptr, mode int32)
	GetPageSegMode  func(handle uintptr) int32
	SetImage2       func(handle, pix uintptr)
	SetRectangle    func(handle uintptr, left, top, width, height int32)
	GetThresholded  func(handle uintptr) uintptr
	GetComponents   func(handle uintptr, level int32, textOnly int32, pixa, blockIDs uintptr) uintptr
	AnalyseLayout   func(handle uintptr) uintptr
	Recognize       func(handle, monitor uintptr) int32
	GetIterator     func(handle uintptr) uintptr
	GetUTF8Text     func(handle uintptr) uintptr
	GetHOCRText     func(handle uintptr, pageNumber int32) uintptr
	GetAltoText     func(handle uintptr, pageNumber int32) uintptr
	GetTsvText      func(handle uintptr, pageNumber int32) uintptr
	GetBoxText      func(handle uintptr, pageNumber int32) uintptr
	GetLSTMBoxText  func(handle uintptr, pageNumber int32) uintptr
	GetWordStrBox   func(handle uintptr, pageNumber int32) uintptr
	GetUNLVText     func(handle uintptr) uintptr
	MeanTextConf    func(handle uintptr) int32
	DetectOSD       func(handle uintptr, orientDeg *int32, orientConf *float32, scriptName *uintptr, scriptConf *float32) int32

	PageIteratorDelete       func(it uintptr)
	PageIteratorBegin        func(it uintptr)
	PageIteratorNext         func(it uintptr, level int32) int32
	PageIteratorIsAtBegin    func(it uintptr, level int32) int32
	PageIteratorIsAtFinal    func(it uintptr, level, element int32) int32
	PageIteratorBoundingBox  func(it uintptr, level int32, left, top, right, bottom *int32) int32
	PageIteratorBlockType    func(it uintptr) int32
	PageIteratorBinaryImage  func(it uintptr, level int32) uintptr
	PageIteratorGetImage     func(it uintptr, level, padding int32, original uintptr, left, top *int32) uintptr
	PageIteratorBaseline     func(it uintptr, level int32, x1, y1, x2, y2 *int32) int32
	PageIteratorOrientation  func(it uintptr, orientation, direction, lineOrder *int32, deskewAngle *float32)
	ResultIteratorDelete     func(it uintptr)
	ResultIteratorPageView   func(it uintptr) uintptr
	ResultIteratorChoices    func(it uintptr) uintptr
	ResultIteratorUTF8Text   func(it uintptr, level int32) uintptr
	ResultIteratorConfidence func(it uintptr, level int32) float32
	ResultIteratorLanguage   func(it uintptr) uintptr
	ResultIteratorFontAttrs  func(it uintptr, bold, italic, underlined, monospace, serif, smallcaps, pointSize, fontID *int32) uintptr
	ResultIteratorFromDict   func(it uintptr) int32
	ResultIteratorNumeric    func(it uintptr) int32
	ResultIteratorSuperscrpt func(it uintptr) int32
	ResultIteratorSubscript  func(it uintptr) int32
	ResultIteratorDropcap    func(it uintptr) int32
	ChoiceIteratorDelete     func(it uintptr)
	ChoiceIteratorNext       func(it uintptr) int32
	ChoiceIteratorUTF8Text   func(it uintptr) uintptr
	ChoiceIteratorConfidence func(it uintptr) float32

	TextRendererCreate       func(outputBase string) uintptr
	HOCRRendererCreate2      func(outputBase string, fontInfo int32) uintptr
	AltoRendererCreate       func(outputBase string) uintptr
	TsvRendererCreate        func(outputBase string) uintptr
	PDFRendererCreate        func(outputBase, dataDir string, textOnly int32) uintptr
	UnlvRendererCreate       func(outputBase string) uintptr
	BoxTextRendererCreate    func(outputBase string) uintptr
	LSTMBoxRendererCreate    func(outputBase string) uintptr
	WordStrBoxRendererCreate func(outputBase string) uintptr
	DeleteResultRenderer     func(renderer uintptr)
	RendererBeginDocument    func(renderer uintptr, title string) int32
	RendererAddImage         func(renderer, api uintptr) int32
	RendererEndDocument      func(renderer uintptr) int32
	RendererImageNum         func(renderer uintptr) int32
}

func (t *TessAPI) symbols() []symbol {
	return []symbol{
		{&t.Version, "TessVersion"},
		{&t.DeleteText, "TessDeleteText"},
		{&t.BaseAPICreate, "TessBaseAPICreate"},
		{&t.BaseAPIDelete, "TessBaseAPIDelete"},
		{&t.BaseAPIInit4, "TessBaseAPIInit4"},
		{&t.BaseAPIClear, "TessBaseAPIClear"},
		{&t.BaseAPIEnd, "TessBaseAPIEnd"},
		{&t.SetInputName, "TessBaseAPISetInputName"},
		{&t.SetVariable, "TessBaseAPISetVariable"},
		{&t.SetDebugVar, "TessBaseAPISetDebugVariable"},
		{&t.GetIntVariable, "TessBaseAPIGetIntVariable"},
		{&t.GetBoolVariable, "TessBaseAPIGetBoolVariable"},
		{&t.GetDoubleVar, "TessBaseAPIGetDoubleVariable"},
		{&t.GetStringVar, "TessBaseAPIGetStringVariable"},
		{&t.PrintVariables, "TessBaseAPIPrintVariablesToFile"},
		{&t.SetPageSegMode, "TessBaseAPISetPageSegMode"},
		{&t.GetPageSegMode, "TessBaseAPIGetPageSegMode"},
		{&t.SetImage2, "TessBaseAPISetImage2"},
		{&t.SetRectangle, "TessBaseAPISetRectangle"},
		{&t.GetThresholded, "TessBaseAPIGetThresholdedImage"},
		{&t.GetComponents, "TessBaseAPIGetComponentImages"},
		{&t.AnalyseLayout, "TessBaseAPIAnalyseLayout"},
		{&t.Recognize, "TessBaseAPIRecognize"},
		{&t.GetIterator, "TessBaseAPIGetIterator"},
		{&t.GetUTF8Text, "TessBaseAPIGetUTF8Text"},
		{&t.GetHOCRText, "TessBaseAPIGetHOCRText"},
		{&t.GetAltoText, "TessBaseAPIGetAltoText"},
		{&t.GetTsvText, "TessBaseAPIGetTsvText"},
		{&t.GetBoxText, "TessBaseAPIGetBoxText"},
		{&t.GetLSTMBoxText, "TessBaseAPIGetLSTMBoxText"},
		{&t.GetWordStrBox, "TessBaseAPIGetWordStrBoxText"},
		{&t.GetUNLVText, "TessBaseAPIGetUNLVText"},
		{&t.MeanTextConf, "TessBaseAPIMeanTextConf"},
		{&t.DetectOSD, "TessBaseAPIDetectOrientationScript"},

		{&t.PageIteratorDelete, "TessPageIteratorDelete"},
		{&t.PageIteratorBegin, "TessPageIteratorBegin"},
		{&t.PageIteratorNext, "TessPageIteratorNext"},
		{&t.PageIteratorIsAtBegin, "TessPageIteratorIsAtBeginningOf"},
		{&t.PageIteratorIsAtFinal, "TessPageIteratorIsAtFinalElement"},
		{&t.PageIteratorBoundingBox, "TessPageIteratorBoundingBox"},
		{&t.PageIteratorBlockType, "TessPageIteratorBlockType"},
		{&t.PageIteratorBinaryImage, "TessPageIteratorGetBinaryImage"},
		{&t.PageIteratorGetImage, "TessPageIteratorGetImage"},
		{&t.PageIteratorBaseline, "TessPageIteratorBaseline"},
		{&t.PageIteratorOrientation, "TessPageIteratorOrientation"},
		{&t.ResultIteratorDelete, "TessResultIteratorDelete"},
		{&t.ResultIteratorPageView, "TessResultIteratorGetPageIterator"},
		{&t.ResultIteratorChoices, "TessResultIteratorGetChoiceIterator"},
		{&t.ResultIteratorUTF8Text, "TessResultIteratorGetUTF8Text"},
		{&t.ResultIteratorConfidence, "TessResultIteratorConfidence"},
		{&t.ResultIteratorLanguage, "TessResultIteratorWordRecognitionLanguage"},
		{&t.ResultIteratorFontAttrs, "TessResultIteratorWordFontAttributes"},
		{&t.ResultIteratorFromDict, "TessResultIteratorWordIsFromDictionary"},
		{&t.ResultIteratorNumeric, "TessResultIteratorWordIsNumeric"},
		{&t.ResultIteratorSuperscrpt, "TessResultIteratorSymbolIsSuperscript"},
		{&t.ResultIteratorSubscript, "TessResultIteratorSymbolIsSubscript"},
		{&t.ResultIteratorDropcap, "TessResultIteratorSymbolIsDropcap"},
		{&t.ChoiceIteratorDelete, "TessChoiceIteratorDelete"},
		{&t.ChoiceIteratorNext, "TessChoiceIteratorNext"},
		{&t.ChoiceIteratorUTF8Text, "TessChoiceIteratorGetUTF8Text"},
		{&t.ChoiceIteratorConfidence, "TessChoiceIteratorConfidence"},

		{&t.TextRendererCreate, "TessTextRendererCreate"},
		{&t.HOCRRendererCreate2, "TessHOcrRendererCreate2"},
		{&t.AltoRendererCreate, "TessAltoRendererCreate"},
		{&t.TsvRendererCreate, "TessTsvRendererCreate"},
		{&t.PDFRendererCreate, "TessPDFRendererCreate"},
		{&t.UnlvRendererCreate, "TessUnlvRendererCreate"},
		{&t.BoxTextRendererCreate, "TessBoxTextRendererCreate"},
		{&t.LSTMBoxRendererCreate, "TessLSTMBoxRendererCreate"},
		{&t.WordStrBoxRendererCreate, "TessWordStrBoxRendererCreate"},
		{&t.DeleteResultRenderer, "TessDeleteResultRenderer"},
		{&t.RendererBeginDocument, "TessResultRendererBeginDocument"},
		{&t.RendererAddImage, "TessResultRendererAddImage"},
		{&t.RendererEndDocument, "TessResultRendererEndDocument"},
		{&t.RendererImageNum, "TessResultRendererImageNum"},
	}
}

// LeptAPI holds the Leptonica entry points used by the binding.
type LeptAPI struct {
	PixCreate     func(width, height, depth int32) uintptr
	PixDestroy    func(ppix *uintptr)
	PixClone      func(pix uintptr) uintptr
	PixGetWidth   func(pix uintptr) int32
	PixGetHeight  func(pix uintptr) int32
	PixGetDepth   func(pix uintptr) int32
	PixGetXRes    func(pix uintptr) int32
	PixGetYRes    func(pix uintptr) int32
	PixSetXRes    func(pix uintptr, res int32) int32
	PixSetYRes    func(pix uintptr, res int32) int32
	PixGetWpl     func(pix uintptr) int32
	PixGetData    func(pix uintptr) uintptr
	PixGetCmap    func(pix uintptr) uintptr
	PixSetCmap    func(pix, cmap uintptr) int32
	PixDelCmap    func(pix uintptr) int32
	PixRead       func(filename string) uintptr
	PixReadMem    func(data *byte, size uintptr) uintptr
	PixWrite      func(filename string, pix uintptr, format int32) int32
	PixWriteMem   func(pdata *uintptr, psize *uintptr, pix uintptr, format int32) int32
	LeptFree      func(ptr uintptr)
	PixaReadTiff  func(filename string) uintptr
	PixaGetCount  func(pixa uintptr) int32
	PixaGetPix    func(pixa uintptr, index, accessType int32) uintptr
	PixaDestroy   func(ppixa *uintptr)
	BoxaGetCount  func(boxa uintptr) int32
	BoxaGetGeom   func(boxa uintptr, index int32, x, y, w, h *int32) int32
	BoxaDestroy   func(pboxa *uintptr)
	RGBToGray     func(pix uintptr, rwt, gwt, bwt float32) uintptr
	OtsuThreshold func(pix uintptr, sx, sy, smoothX, smoothY int32, scoreFract float32, ppixth, ppixd *uintptr) int32
	SauvolaTiled  func(pix uintptr, whsize int32, factor float32, nx, ny int32, ppixth, ppixd *uintptr) int32
	FindSkew      func(pix uintptr, angle, conf *float32) int32
	DeskewGeneral func(pix uintptr, redSweep int32, sweepRange, sweepDelta float32, redSearch, thresh int32, angle, conf *float32) uintptr
	Rotate        func(pix uintptr, angle float32, rotType, inColor, width, height int32) uintptr
	RotateOrth    func(pix uintptr, quads int32) uintptr
	Scale         func(pix uintptr, scaleX, scaleY float32) uintptr
	Invert        func(pixd, pixs uintptr) uintptr

	CmapCreate        func(depth int32) uintptr
	CmapCreateLinear  func(depth, levels int32) uintptr
	CmapCreateRandom  func(depth, hasBlack, hasWhite int32) uintptr
	CmapDestroy       func(pcmap *uintptr)
	CmapGetDepth      func(cmap uintptr) int32
	CmapGetCount      func(cmap uintptr) int32
	CmapGetFreeCount  func(cmap uintptr) int32
	CmapAddColor      func(cmap uintptr, r, g, b int32) int32
	CmapAddNewColor   func(cmap uintptr, r, g, b int32, index *int32) int32
	CmapAddNearest    func(cmap uintptr, r, g, b int32, index *int32) int32
	CmapAddBlackWhite func(cmap uintptr, color int32, index *int32) int32
	CmapSetBlackWhite func(cmap uintptr, setBlack, setWhite int32) int32
	CmapUsableColor   func(cmap uintptr, r, g, b int32, usable *int32) int32
	CmapClear         func(cmap uintptr) int32
	CmapGetColor32    func(cmap uintptr, index int32, value *uint32) int32
	CmapResetColor    func(cmap uintptr, index, r, g, b int32) int32
}

func (l *LeptAPI) symbols() []symbol {
	return []symbol{
		{&l.PixCreate, "pixCreate"},
		{&l.PixDestroy, "pixDestroy"},
		{&l.PixClone, "pixClone"},
		{&l.PixGetWidth, "pixGetWidth"},
		{&l.PixGetHeight, "pixGetHeight"},
		{&l.PixGetDepth, "pixGetDepth"},
		{&l.PixGetXRes, "pixGetXRes"},
		{&l.PixGetYRes, "pixGetYRes"},
		{&l.PixSetXRes, "pixSetXRes"},
		{&l.PixSetYRes, "pixSetYRes"},
		{&l.PixGetWpl, "pixGetWpl"},
		{&l.PixGetData, "pixGetData"},
		{&l.PixGetCmap, "pixGetColormap"},
		{&l.PixSetCmap, "pixSetColormap"},
		{&l.PixDelCmap, "pixDestroyColormap"},
		{&l.PixRead, "pixRead"},
		{&l.PixReadMem, "pixReadMem"},
		{&l.PixWrite, "pixWrite"},
		{&l.PixWriteMem, "pixWriteMem"},
		{&l.LeptFree, "lept_free"},
		{&l.PixaReadTiff, "pixaReadMultipageTiff"},
		{&l.PixaGetCount, "pixaGetCount"},
		{&l.PixaGetPix, "pixaGetPix"},
		{&l.PixaDestroy, "pixaDestroy"},
		{&l.BoxaGetCount, "boxaGetCount"},
		{&l.BoxaGetGeom, "boxaGetBoxGeometry"},
		{&l.BoxaDestroy, "boxaDestroy"},
		{&l.RGBToGray, "pixConvertRGBToGray"},
		{&l.OtsuThreshold, "pixOtsuAdaptiveThreshold"},
		{&l.SauvolaTiled, "pixSauvolaBinarizeTiled"},
		{&l.FindSkew, "pixFindSkew"},
		{&l.DeskewGeneral, "pixDeskewGeneral"},
		{&l.Rotate, "pixRotate"},
		{&l.RotateOrth, "pixRotateOrth"},
		{&l.Scale, "pixScale"},
		{&l.Invert, "pixInvert"},

		{&l.CmapCreate, "pixcmapCreate"},
		{&l.CmapCreateLinear, "pixcmapCreateLinear"},
		{&l.CmapCreateRandom, "pixcmapCreateRandom"},
		{&l.CmapDestroy, "pixcmapDestroy"},
		{&l.CmapGetDepth, "pixcmapGetDepth"},
		{&l.CmapGetCount, "pixcmapGetCount"},
		{&l.CmapGetFreeCount, "pixcmapGetFreeCount"},
		{&l.CmapAddColor, "pixcmapAddColor"},
		{&l.CmapAddNewColor, "pixcmapAddNewColor"},
		{&l.CmapAddNearest, "pixcmapAddNearestColor"},
		{&l.CmapAddBlackWhite, "pixcmapAddBlackOrWhite"},
		{&l.CmapSetBlackWhite, "pixcmapSetBlackAndWhite"},
		{&l.CmapUsableColor, "pixcmapUsableColor"},
		{&l.CmapClear, "pixcmapClear"},
		{&l.CmapGetColor32, "pixcmapGetColor32"},
		{&l.CmapResetColor, "pixcmapResetColor"},
	}
}

type libcAPI struct {
	malloc func(size uintptr) uintptr
	free   func(ptr uintptr)
}

func (c *libcAPI) symbols() []symbol {
	return []symbol{
		{&c.malloc, "malloc"},
		{&c.free, "free"},
	}
}

var (
	// Tess is the resolved Tesseract API. Only valid after Load succeeds.
	Tess TessAPI
	// Lept is the resolved Leptonica API. Only valid after Load succeeds.
	Lept LeptAPI

	libc libcAPI
)

// Bool converts a Go bool to a C BOOL.
func Bool(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
