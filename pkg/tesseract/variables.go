package tesseract

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ironsheep/tessgo/internal/native"
)

// FormatVariable renders a Go value the way Tesseract parses variables:
// bools as TRUE/FALSE, integers in decimal, floats in their shortest
// round-trip form and strings unchanged.
func FormatVariable(value any) (string, error) {
	switch v := value.(type) {
	case bool:
		if v {
			return "TRUE", nil
		}
		return "FALSE", nil
	case string:
		return v, nil
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return formatFloat(float64(v), 32)
	case float64:
		return formatFloat(v, 64)
	}
	return "", fmt.Errorf("tesseract: unsupported variable type %T", value)
}

func formatFloat(f float64, bits int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("tesseract: cannot set variable to %v", f)
	}
	return strconv.FormatFloat(f, 'g', -1, bits), nil
}

func (e *Engine) setVariable(set func(uintptr, string, string) int32, name string, value any) error {
	h := e.handle()
	if h == 0 {
		return ErrClosed
	}
	v, err := FormatVariable(value)
	if err != nil {
		return fmt.Errorf("variable %s: %w", name, err)
	}
	if set(h, name, v) == 0 {
		return fmt.Errorf("tesseract: cannot set variable %s to %q", name, v)
	}
	return nil
}

// SetVariable sets a non-init Tesseract parameter. Unknown names and values
// Tesseract rejects are errors.
func (e *Engine) SetVariable(name string, value any) error {
	return e.setVariable(native.Tess.SetVariable, name, value)
}

// SetDebugVariable sets a debug parameter, including ones that
// WithSetOnlyNonDebugVariables would otherwise have skipped.
func (e *Engine) SetDebugVariable(name string, value any) error {
	return e.setVariable(native.Tess.SetDebugVar, name, value)
}

// BoolVariable reads a bool parameter; ok is false if the name is unknown.
func (e *Engine) BoolVariable(name string) (value, ok bool) {
	h := e.handle()
	if h == 0 {
		return false, false
	}
	var v int32
	if native.Tess.GetBoolVariable(h, name, &v) == 0 {
		return false, false
	}
	return v != 0, true
}

func (e *Engine) IntVariable(name string) (int, bool) {
	h := e.handle()
	if h == 0 {
		return 0, false
	}
	var v int32
	if native.Tess.GetIntVariable(h, name, &v) == 0 {
		return 0, false
	}
	return int(v), true
}

func (e *Engine) DoubleVariable(name string) (float64, bool) {
	h := e.handle()
	if h == 0 {
		return 0, false
	}
	var v float64
	if native.Tess.GetDoubleVar(h, name, &v) == 0 {
		return 0, false
	}
	return v, true
}

// StringVariable reads a string parameter. The returned text is owned by
// the engine and is copied.
func (e *Engine) StringVariable(name string) (string, bool) {
	h := e.handle()
	if h == 0 {
		return "", false
	}
	p := native.Tess.GetStringVar(h, name)
	if p == 0 {
		return "", false
	}
	return native.GoString(p), true
}

// PrintVariablesToFile writes every parameter and its value to path.
func (e *Engine) PrintVariablesToFile(path string) error {
	h := e.handle()
	if h == 0 {
		return ErrClosed
	}
	if native.Tess.PrintVariables(h, path) == 0 {
		return fmt.Errorf("tesseract: cannot write variables to %s", path)
	}
	return nil
}
