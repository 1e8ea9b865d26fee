package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Message(t *testing.T) {
	err := IndexOutOfRange(5, 3)
	msg := err.Error()
	if !strings.HasPrefix(msg, "[validate] index_out_of_range") {
		t.Fatalf("unexpected prefix: %q", msg)
	}
	if !strings.Contains(msg, "index 5 out of range [0, 3)") {
		t.Fatalf("missing detail: %q", msg)
	}
}

func TestError_CauseChain(t *testing.T) {
	cause := stderrors.New("dlopen failed")
	err := LibraryNotFound("libR.so", cause)

	if !strings.Contains(err.Error(), "caused by: dlopen failed") {
		t.Fatalf("cause not rendered: %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the cause")
	}
}

func TestError_Is(t *testing.T) {
	err := RowOutOfRange(7, 3)

	if !stderrors.Is(err, &Error{Phase: PhaseValidate, Kind: KindIndexOutOfRange}) {
		t.Fatal("expected match on phase+kind")
	}
	if stderrors.Is(err, &Error{Phase: PhaseAccess, Kind: KindIndexOutOfRange}) {
		t.Fatal("unexpected match on different phase")
	}
}

func TestIsKind(t *testing.T) {
	err := EntryPointNotFound("libR.so", "Rf_protect", nil)
	if !IsKind(err, KindEntryPointNotFound) {
		t.Fatal("expected KindEntryPointNotFound")
	}
	if IsKind(err, KindLibraryNotFound) {
		t.Fatal("unexpected kind match")
	}

	// Kind matching must see through wrapping.
	wrapped := fmt.Errorf("startup: %w", err)
	if !IsKind(wrapped, KindEntryPointNotFound) {
		t.Fatal("expected kind match through fmt wrapping")
	}

	if IsKind(nil, KindNameInvalid) {
		t.Fatal("nil error must not match")
	}
}

func TestBuilder(t *testing.T) {
	cause := stderrors.New("short read")
	err := New(PhaseAccess, KindIndexOutOfRange).
		Value(12).
		Cause(cause).
		Detail("element %d", 12).
		Build()

	if err.Phase != PhaseAccess || err.Kind != KindIndexOutOfRange {
		t.Fatalf("builder lost phase/kind: %+v", err)
	}
	if err.Value != 12 {
		t.Fatalf("builder lost value: %v", err.Value)
	}
	if err.Detail != "element 12" {
		t.Fatalf("builder lost detail: %q", err.Detail)
	}
	if !stderrors.Is(err, cause) {
		t.Fatal("builder lost cause")
	}
}

func TestAxisNaming(t *testing.T) {
	row := RowOutOfRange(4, 3)
	col := ColumnOutOfRange(9, 4)

	if !strings.Contains(row.Error(), "row 4") {
		t.Fatalf("row error must name the row axis: %q", row.Error())
	}
	if !strings.Contains(col.Error(), "column 9") {
		t.Fatalf("column error must name the column axis: %q", col.Error())
	}
}

func TestLengthMismatch(t *testing.T) {
	err := LengthMismatch(2, 5)
	if !IsKind(err, KindLengthMismatch) {
		t.Fatal("expected KindLengthMismatch")
	}
	if !strings.Contains(err.Error(), "got 2 values, buffer holds 5") {
		t.Fatalf("unexpected detail: %q", err.Error())
	}
}

func TestAlreadyReleased(t *testing.T) {
	err := AlreadyReleased("library \"libR.so\"")
	if !IsKind(err, KindAlreadyReleased) {
		t.Fatal("expected KindAlreadyReleased")
	}
}
