package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorCode_Status(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrorCodeNotFound:         http.StatusNotFound,
		ErrorCodeInvalidArgument:  http.StatusUnprocessableEntity,
		ErrorCodeUnprocessable:    http.StatusUnprocessableEntity,
		ErrorCodeTooLarge:         http.StatusRequestEntityTooLarge,
		ErrorCodeUnsupportedMedia: http.StatusUnsupportedMediaType,
		ErrorCodeValidation:       http.StatusBadRequest,
		ErrorCodeJSON:             http.StatusBadRequest,
		ErrorCodeUnavailable:      http.StatusServiceUnavailable,
		ErrorCodeStorage:          http.StatusInternalServerError,
		ErrorCodePanic:            http.StatusInternalServerError,
		ErrorCodeUnknown:          http.StatusInternalServerError,
		ErrorCode(900):            http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := code.Status(); got != want {
			t.Fatalf("%v.Status() = %d, want %d", code, got, want)
		}
	}
	if ErrorCodeTooLarge.String() != "too_large" || ErrorCode(900).String() != "code(900)" {
		t.Fatalf("names: %v %v", ErrorCodeTooLarge, ErrorCode(900))
	}
}

func TestError_Message(t *testing.T) {
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil render %q", nilErr.Error())
	}

	cause := stderrs.New("disk full")
	err := WithOp(Wrap(cause, ErrorCodeStorage, "write artifact"), "store xlsx")
	if got := err.Error(); got != "store xlsx: write artifact: disk full" {
		t.Fatalf("Error() = %q", got)
	}
	if !stderrs.Is(err, cause) {
		t.Fatal("cause not reachable through Unwrap")
	}
	if w := WireFrom(err); w.Message != "write artifact" || w.Code != ErrorCodeStorage {
		t.Fatalf("wire leaks op or cause: %+v", w)
	}
	if got := Wrapf(cause, ErrorCodeStorage, "create dir %s", "/tmp/x").Error(); got != "create dir /tmp/x: disk full" {
		t.Fatalf("Wrapf = %q", got)
	}
}

func TestCodeOf_ThroughForeignWrap(t *testing.T) {
	inner := NotFoundf("artifact %q not found", "abc")
	outer := fmt.Errorf("download: %w", inner)

	if CodeOf(outer) != ErrorCodeNotFound || !IsCode(outer, ErrorCodeNotFound) {
		t.Fatalf("code lost: %v", CodeOf(outer))
	}
	if HTTPStatus(outer) != http.StatusNotFound {
		t.Fatalf("status %d", HTTPStatus(outer))
	}
	if CodeOf(stderrs.New("plain")) != ErrorCodeUnknown || CodeOf(nil) != ErrorCodeUnknown {
		t.Fatal("foreign errors must be Unknown")
	}
}

func TestWithField_CopyOnWrite(t *testing.T) {
	base := Newf(ErrorCodeValidation, "text is required")
	tagged := WithField(base, "text")

	if WireFrom(tagged).Field != "text" {
		t.Fatalf("field not set: %+v", WireFrom(tagged))
	}
	if e, _ := As(base); e.Field() != "" {
		t.Fatal("original mutated")
	}
	plain := stderrs.New("plain")
	if WithField(plain, "x") != plain || WithOp(plain, "y") != plain {
		t.Fatal("foreign errors must pass through")
	}
}

func TestWireFrom(t *testing.T) {
	if w := WireFrom(nil); w != (Wire{}) {
		t.Fatalf("nil: %+v", w)
	}
	if w := WireFrom(stderrs.New("boom")); w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("foreign: %+v", w)
	}
	w := WireFrom(UnsupportedMediaf("unsupported type %s", "image/gif"))
	if w.Code != ErrorCodeUnsupportedMedia || w.Message != "unsupported type image/gif" {
		t.Fatalf("ours: %+v", w)
	}
}

func TestWrapIf(t *testing.T) {
	if WrapIf(nil, ErrorCodeStorage, "x") != nil {
		t.Fatal("nil must stay nil")
	}
	if !IsCode(WrapIf(stderrs.New("x"), ErrorCodeStorage, "close"), ErrorCodeStorage) {
		t.Fatal("non nil must wrap")
	}
}

func TestRetryable(t *testing.T) {
	if !Retryable(Wrap(stderrs.New("exec: not found"), ErrorCodeUnavailable, "ocr engine unavailable")) {
		t.Fatal("unavailable is retryable")
	}
	for _, err := range []error{Unprocessablef("corrupt scan"), TooLargef("big"), stderrs.New("x"), nil} {
		if Retryable(err) {
			t.Fatalf("%v must not be retryable", err)
		}
	}
}

func TestConstructorCodes(t *testing.T) {
	cases := map[ErrorCode]error{
		ErrorCodeNotFound:         NotFoundf("x"),
		ErrorCodeInvalidArgument:  InvalidArgf("x"),
		ErrorCodeUnprocessable:    Unprocessablef("x"),
		ErrorCodeTooLarge:         TooLargef("x"),
		ErrorCodeUnsupportedMedia: UnsupportedMediaf("x"),
		ErrorCodeJSON:             JSONErrf("x"),
		ErrorCodePanic:            PanicErrf("x"),
	}
	for want, err := range cases {
		if CodeOf(err) != want {
			t.Fatalf("%v: got %v", want, CodeOf(err))
		}
	}
}
