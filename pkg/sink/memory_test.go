package sink

import (
	"context"
	"testing"
)

func TestMemory_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok, err := m.Get(ctx, "layout"); ok || err != nil {
		t.Fatalf("Get(empty) = (ok=%v, err=%v), want miss", ok, err)
	}

	if err := m.Set(ctx, "layout", []byte("a")); err != nil {
		t.Fatalf("Set() = %v", err)
	}
	data, ok, err := m.Get(ctx, "layout")
	if err != nil || !ok || string(data) != "a" {
		t.Fatalf("Get() = (%q, %v, %v), want (a, true, nil)", data, ok, err)
	}

	if err := m.Delete(ctx, "layout"); err != nil {
		t.Fatalf("Delete() = %v", err)
	}
	if _, ok, _ := m.Get(ctx, "layout"); ok {
		t.Error("Get() after Delete = hit, want miss")
	}
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.Set(ctx, "k", []byte("original"))

	data, _, _ := m.Get(ctx, "k")
	data[0] = 'X'

	again, _, _ := m.Get(ctx, "k")
	if string(again) != "original" {
		t.Errorf("stored value = %q after mutating a Get result, want %q", again, "original")
	}
}

func TestMemory_SetCopiesInput(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	buf := []byte("original")
	m.Set(ctx, "k", buf)
	buf[0] = 'X'

	data, _, _ := m.Get(ctx, "k")
	if string(data) != "original" {
		t.Errorf("stored value = %q after mutating the input slice, want %q", data, "original")
	}
}
