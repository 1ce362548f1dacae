package tesseract

import (
	"strings"
)

// WalkFunc is called each time Walk enters an element at level.
type WalkFunc func(level PageIteratorLevel) error

// Walk visits the page in reading order, descending from blocks down to
// deepest. fn runs once per element, parents before children. A non-nil
// error from fn stops the walk and is returned.
func Walk(it Cursor, deepest PageIteratorLevel, fn WalkFunc) error {
	it.Begin()
	if !it.IsAtBeginningOf(LevelBlock) {
		return nil
	}
	return walkLevel(it, LevelBlock, deepest, fn)
}

func walkLevel(it Cursor, level, deepest PageIteratorLevel, fn WalkFunc) error {
	for {
		if err := fn(level); err != nil {
			return err
		}
		if level < deepest {
			if err := walkLevel(it, level+1, deepest, fn); err != nil {
				return err
			}
		}
		if level == LevelBlock {
			if !it.Next(LevelBlock) {
				return nil
			}
			continue
		}
		if !nextWithin(it, level-1, level) {
			return nil
		}
	}
}

// Choice is one recognition alternative for a symbol.
type Choice struct {
	Text       string  `json:"text"`
	Confidence float32 `json:"confidence"`
}

// Symbol is a single recognized character.
type Symbol struct {
	Text        string   `json:"text"`
	Confidence  float32  `json:"confidence"`
	Bounds      Rect     `json:"bounds"`
	Superscript bool     `json:"superscript,omitempty"`
	Subscript   bool     `json:"subscript,omitempty"`
	Dropcap     bool     `json:"dropcap,omitempty"`
	Choices     []Choice `json:"choices,omitempty"`
}

// Word is a recognized word.
type Word struct {
	Text           string          `json:"text"`
	Confidence     float32         `json:"confidence"`
	Bounds         Rect            `json:"bounds"`
	FromDictionary bool            `json:"from_dictionary,omitempty"`
	Numeric        bool            `json:"numeric,omitempty"`
	Language       string          `json:"language,omitempty"`
	Font           *FontAttributes `json:"font,omitempty"`
	Symbols        []Symbol        `json:"symbols,omitempty"`
}

// Line is a text line.
type Line struct {
	Text       string  `json:"text"`
	Confidence float32 `json:"confidence"`
	Bounds     Rect    `json:"bounds"`
	Words      []Word  `json:"words"`
}

// Paragraph groups lines.
type Paragraph struct {
	Text       string  `json:"text"`
	Confidence float32 `json:"confidence"`
	Bounds     Rect    `json:"bounds"`
	Lines      []Line  `json:"lines"`
}

// Block is a layout block such as a text column, image or table.
type Block struct {
	Type       PolyBlockType     `json:"-"`
	TypeName   string            `json:"type"`
	Text       string            `json:"text"`
	Confidence float32           `json:"confidence"`
	Bounds     Rect              `json:"bounds"`
	Properties ElementProperties `json:"properties"`
	Paragraphs []Paragraph       `json:"paragraphs"`
}

// LayoutOptions selects how deep Layout descends.
type LayoutOptions struct {
	// Symbols includes per-character results.
	Symbols bool
	// Choices includes recognition alternatives for each symbol and implies
	// Symbols.
	Choices bool
	// WordDetails includes font, language and dictionary flags for words.
	WordDetails bool
}

// layoutSource is what Layout reads at each element. ResultIterator
// implements it.
type layoutSource interface {
	Cursor
	BlockType() PolyBlockType
	BoundingBox(level PageIteratorLevel) (Rect, bool)
	Properties() ElementProperties
	Text(level PageIteratorLevel) string
	Confidence(level PageIteratorLevel) float32
}

// wordSource is implemented by sources that expose word and symbol details.
type wordSource interface {
	WordFontAttributes() *FontAttributes
	WordRecognitionLanguage() string
	WordIsFromDictionary() bool
	WordIsNumeric() bool
	SymbolIsSuperscript() bool
	SymbolIsSubscript() bool
	SymbolIsDropcap() bool
	symbolChoices() []Choice
}

// Layout recognizes the page and returns its block, paragraph, line and
// word structure. Confidences are in the range 0..1.
func Layout(page *Page, opts LayoutOptions) ([]Block, error) {
	it, err := page.Iterator()
	if err != nil {
		return nil, err
	}
	defer it.Close()
	return buildLayout(it, opts)
}

func buildLayout(src layoutSource, opts LayoutOptions) ([]Block, error) {
	deepest := LevelWord
	if opts.Symbols || opts.Choices {
		deepest = LevelSymbol
	}
	details, _ := src.(wordSource)

	var blocks []Block
	err := Walk(src, deepest, func(level PageIteratorLevel) error {
		text := src.Text(level)
		conf := src.Confidence(level) / 100
		bounds, _ := src.BoundingBox(level)

		switch level {
		case LevelBlock:
			bt := src.BlockType()
			blocks = append(blocks, Block{
				Type:       bt,
				TypeName:   bt.String(),
				Text:       strings.TrimSpace(text),
				Confidence: conf,
				Bounds:     bounds,
				Properties: src.Properties(),
			})
		case LevelPara:
			b := &blocks[len(blocks)-1]
			b.Paragraphs = append(b.Paragraphs, Paragraph{
				Text:       strings.TrimSpace(text),
				Confidence: conf,
				Bounds:     bounds,
			})
		case LevelTextLine:
			p := lastParagraph(blocks)
			p.Lines = append(p.Lines, Line{
				Text:       strings.TrimSpace(text),
				Confidence: conf,
				Bounds:     bounds,
			})
		case LevelWord:
			l := lastLine(blocks)
			w := Word{Text: text, Confidence: conf, Bounds: bounds}
			if opts.WordDetails && details != nil {
				w.Font = details.WordFontAttributes()
				w.Language = details.WordRecognitionLanguage()
				w.FromDictionary = details.WordIsFromDictionary()
				w.Numeric = details.WordIsNumeric()
			}
			l.Words = append(l.Words, w)
		case LevelSymbol:
			l := lastLine(blocks)
			w := &l.Words[len(l.Words)-1]
			s := Symbol{Text: text, Confidence: conf, Bounds: bounds}
			if details != nil {
				s.Superscript = details.SymbolIsSuperscript()
				s.Subscript = details.SymbolIsSubscript()
				s.Dropcap = details.SymbolIsDropcap()
				if opts.Choices {
					s.Choices = details.symbolChoices()
				}
			}
			w.Symbols = append(w.Symbols, s)
		}
		return nil
	})
	return blocks, err
}

func lastParagraph(blocks []Block) *Paragraph {
	b := &blocks[len(blocks)-1]
	return &b.Paragraphs[len(b.Paragraphs)-1]
}

func lastLine(blocks []Block) *Line {
	p := lastParagraph(blocks)
	return &p.Lines[len(p.Lines)-1]
}

// Words recognizes the page and returns every word with its bounds and a
// confidence in 0..1, skipping blank words.
func Words(page *Page) ([]Word, error) {
	it, err := page.Iterator()
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var words []Word
	err = Walk(it, LevelWord, func(level PageIteratorLevel) error {
		if level != LevelWord {
			return nil
		}
		text := strings.TrimSpace(it.Text(LevelWord))
		if text == "" {
			return nil
		}
		bounds, _ := it.BoundingBox(LevelWord)
		words = append(words, Word{
			Text:       text,
			Confidence: it.Confidence(LevelWord) / 100,
			Bounds:     bounds,
		})
		return nil
	})
	return words, err
}
