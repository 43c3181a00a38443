package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("disk full")
	err := Wrap(CodeDependency, cause, "persist cart")

	if err.Code() != CodeDependency {
		t.Fatalf("expected dependency code, got %s", err.Code())
	}
	if !stdErrors.Is(err, cause) {
		t.Fatal("wrapped error should match the cause via errors.Is")
	}
}

func TestAsThroughFmtWrap(t *testing.T) {
	inner := New(CodeNotFound, "product missing")
	outer := fmt.Errorf("loading detail: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error through fmt wrapping")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("expected not-found code, got %s", typed.Code())
	}
}

func TestAsPlainError(t *testing.T) {
	if typed := As(stdErrors.New("plain")); typed != nil {
		t.Fatalf("plain error should not convert, got %v", typed)
	}
	if typed := As(nil); typed != nil {
		t.Fatalf("nil should not convert, got %v", typed)
	}
}

func TestMetadataForUnknownCode(t *testing.T) {
	meta := MetadataFor(Code("NOPE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown codes fall back to internal, got %d", meta.HTTPStatus)
	}
}

func TestDumpChain(t *testing.T) {
	err := Wrap(CodeValidation, stdErrors.New("bad json"), "decode body")
	dump := Dump(err)

	if dump.Code != CodeValidation {
		t.Fatalf("expected validation code in dump, got %s", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected 2 chain entries, got %d", len(dump.Chain))
	}
}
