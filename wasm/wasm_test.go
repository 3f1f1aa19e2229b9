package wasm_test

import (
	"context"
	"testing"

	"github.com/aspenflow/reactor/wasm"
)

func TestLoadRejectsInvalidModule(t *testing.T) {
	_, err := wasm.Load(context.Background(), []byte("not a wasm module"))
	if err == nil {
		t.Fatal("expected an error compiling a non-WASM byte stream")
	}
}

func TestLoadRejectsEmptyModule(t *testing.T) {
	_, err := wasm.Load(context.Background(), nil)
	if err == nil {
		t.Fatal("expected an error compiling an empty byte stream")
	}
}
