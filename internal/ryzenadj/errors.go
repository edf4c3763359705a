// SPDX-FileCopyrightText: 2025 The Kepler Authors
// SPDX-License-Identifier: Apache-2.0

package ryzenadj

import (
	"errors"
	"fmt"
	"math"
)

// Kind is the closed set of failures a session can report.
type Kind int

const (
	// KindUnclassified is a non-zero native status that maps to no known code.
	KindUnclassified Kind = iota
	// KindInitializationFailed means the native library returned an invalid handle.
	KindInitializationFailed
	// KindTableInitializationFailed means the PM table could not be initialized.
	KindTableInitializationFailed
	// KindNotANumber means a telemetry reading was NaN or infinite.
	KindNotANumber
	// KindUnknownCPUFamily means the CPU family code is not recognized.
	KindUnknownCPUFamily
	KindFamilyUnsupported
	KindSMUTimeout
	KindSMUUnsupported
	KindSMURejected
	KindMemoryAccessFault
)

func (k Kind) String() string {
	switch k {
	case KindInitializationFailed:
		return "initialization failed"
	case KindTableInitializationFailed:
		return "table initialization failed"
	case KindNotANumber:
		return "value is not a number"
	case KindUnknownCPUFamily:
		return "unknown cpu family"
	case KindFamilyUnsupported:
		return "cpu family unsupported"
	case KindSMUTimeout:
		return "smu timeout"
	case KindSMUUnsupported:
		return "smu unsupported"
	case KindSMURejected:
		return "smu rejected"
	case KindMemoryAccessFault:
		return "memory access fault"
	default:
		return "unclassified native error"
	}
}

// Native status codes, as defined by ryzenadj.h (ADJ_ERR_*).
const (
	codeFamilyUnsupported = -1
	codeSMUTimeout        = -2
	codeSMUUnsupported    = -3
	codeSMURejected       = -4
	codeMemoryAccess      = -5
)

var codeKinds = map[int]Kind{
	codeFamilyUnsupported: KindFamilyUnsupported,
	codeSMUTimeout:        KindSMUTimeout,
	codeSMUUnsupported:    KindSMUUnsupported,
	codeSMURejected:       KindSMURejected,
	codeMemoryAccess:      KindMemoryAccessFault,
}

// Error is a failure reported by the native library or by the session itself.
// Code carries the raw native status where one exists.
type Error struct {
	Kind Kind
	Code int
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTableInitializationFailed, KindUnknownCPUFamily, KindUnclassified:
		return fmt.Sprintf("ryzenadj: %s (code %d)", e.Kind, e.Code)
	default:
		return "ryzenadj: " + e.Kind.String()
	}
}

// Is matches on Kind. A target with a non-zero Code additionally requires the
// same Code, so errors.Is(err, &Error{Kind: KindUnclassified, Code: -9}) is exact.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Code == 0 || t.Code == e.Code
}

var (
	ErrInitializationFailed      = &Error{Kind: KindInitializationFailed}
	ErrTableInitializationFailed = &Error{Kind: KindTableInitializationFailed}
	ErrNotANumber                = &Error{Kind: KindNotANumber}
	ErrUnknownCPUFamily          = &Error{Kind: KindUnknownCPUFamily}
	ErrFamilyUnsupported         = &Error{Kind: KindFamilyUnsupported, Code: codeFamilyUnsupported}
	ErrSMUTimeout                = &Error{Kind: KindSMUTimeout, Code: codeSMUTimeout}
	ErrSMUUnsupported            = &Error{Kind: KindSMUUnsupported, Code: codeSMUUnsupported}
	ErrSMURejected               = &Error{Kind: KindSMURejected, Code: codeSMURejected}
	ErrMemoryAccessFault         = &Error{Kind: KindMemoryAccessFault, Code: codeMemoryAccess}
	ErrUnclassified              = &Error{Kind: KindUnclassified}
)

var (
	// ErrSessionActive is returned by Open while another session is still open.
	ErrSessionActive = errors.New("ryzenadj: a session is already open in this process")
	// ErrSessionClosed is returned by writes on a closed session.
	ErrSessionClosed = errors.New("ryzenadj: session is closed")
)

// Classify maps a native status code to an error. It returns nil iff code is 0.
func Classify(code int) error {
	if code == 0 {
		return nil
	}
	if kind, ok := codeKinds[code]; ok {
		return &Error{Kind: kind, Code: code}
	}
	return &Error{Kind: KindUnclassified, Code: code}
}

// KindOf returns the Kind of err, or false when err is not an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// RefreshError is a non-zero status from refreshing the PM table. It is kept
// raw; refresh codes are not part of the ADJ_ERR set.
type RefreshError struct {
	Code int
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("ryzenadj: table refresh failed (code %d)", e.Code)
}

// Finite returns v unchanged or ErrNotANumber when v is NaN or infinite.
func Finite(v float32) (float32, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return v, ErrNotANumber
	}
	return v, nil
}
