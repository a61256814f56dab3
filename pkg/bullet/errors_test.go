package bullet

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError_Message(t *testing.T) {
	withID := &NotFoundError{ID: "abc"}
	if withID.Error() != `bullet with id "abc" was not found` {
		t.Errorf("Error() = %q", withID.Error())
	}

	empty := &NotFoundError{}
	if empty.Error() != "no bullets in store" {
		t.Errorf("Error() = %q", empty.Error())
	}
}

func TestIsNotFound(t *testing.T) {
	err := fmt.Errorf("lookup: %w", &NotFoundError{ID: "abc"})
	if !IsNotFound(err) {
		t.Error("IsNotFound() = false for a wrapped NotFoundError")
	}
	if IsNotFound(errors.New("other")) {
		t.Error("IsNotFound() = true for an unrelated error")
	}
}

func TestIsNoFile(t *testing.T) {
	if !IsNoFile(&NoFileError{ID: "abc"}) {
		t.Error("IsNoFile() = false for a NoFileError")
	}
	if IsNoFile(&NotFoundError{ID: "abc"}) {
		t.Error("IsNoFile() = true for a NotFoundError")
	}
}

func TestStorageError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("sqlite", "insert", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is() does not reach the cause through StorageError")
	}
	want := "storage error [backend=sqlite, operation=insert]: disk full"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
