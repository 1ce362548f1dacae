package native

import (
	"fmt"
	"unsafe"
)

// StrLen returns the number of bytes before the NUL terminator at p.
// A zero pointer has length 0.
func StrLen(p uintptr) int {
	if p == 0 {
		return 0
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return n
}

// GoString copies the NUL-terminated UTF-8 string at p into Go memory.
// The native buffer is left untouched.
func GoString(p uintptr) string {
	n := StrLen(p)
	if n == 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(p)), n))
}

// TakeText copies a string allocated by Tesseract and releases it with
// TessDeleteText. The pointer must not be used afterwards.
func TakeText(p uintptr) string {
	if p == 0 {
		return ""
	}
	s := GoString(p)
	Tess.DeleteText(p)
	return s
}

// CString allocates a NUL-terminated copy of s in C memory. The caller
// releases it with Free.
func CString(s string) (uintptr, error) {
	if err := loadLibc(); err != nil {
		return 0, err
	}
	p := libc.malloc(uintptr(len(s) + 1))
	if p == 0 {
		return 0, fmt.Errorf("native: malloc of %d bytes failed", len(s)+1)
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(p)), len(s)+1)
	copy(buf, s)
	buf[len(s)] = 0
	return p, nil
}

// Free releases memory obtained from CString or CStringArray's backing
// allocations. Free(0) is a no-op.
func Free(p uintptr) {
	if p == 0 || libc.free == nil {
		return
	}
	libc.free(p)
}

// CStringArray builds a char** in C memory. The returned release func frees
// every element and the array itself; it is safe to call on an empty array,
// for which the pointer is 0.
func CStringArray(values []string) (uintptr, func(), error) {
	if len(values) == 0 {
		return 0, func() {}, nil
	}
	if err := loadLibc(); err != nil {
		return 0, nil, err
	}

	ptrSize := unsafe.Sizeof(uintptr(0))
	arr := libc.malloc(ptrSize * uintptr(len(values)+1))
	if arr == 0 {
		return 0, nil, fmt.Errorf("native: malloc of string array failed")
	}
	slots := unsafe.Slice((*uintptr)(unsafe.Pointer(arr)), len(values)+1)
	for i := range slots {
		slots[i] = 0
	}

	release := func() {
		for _, p := range slots {
			Free(p)
		}
		Free(arr)
	}

	for i, v := range values {
		p, err := CString(v)
		if err != nil {
			release()
			return 0, nil, err
		}
		slots[i] = p
	}
	return arr, release, nil
}

// Words exposes n 32-bit words of native memory starting at p. The slice
// aliases C memory and is only valid while the owner of p is alive.
func Words(p uintptr, n int) []uint32 {
	if p == 0 || n <= 0 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(p)), n)
}

// Bytes copies n bytes of native memory starting at p.
func Bytes(p uintptr, n int) []byte {
	if p == 0 || n <= 0 {
		return nil
	}
	out := make([]byte, n)
	copy(out, unsafe.Slice((*byte)(unsafe.Pointer(p)), n))
	return out
}
