package Billing

import (
	"reflect"
	"testing"
)

func TestAccumulatorAddAndSnapshotOrder(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(7)
	acc.Add(3)
	acc.Add(7)
	acc.Add(5)

	expected := []LineItem{{ServiceID: 7, Quantity: 2}, {ServiceID: 3, Quantity: 1}, {ServiceID: 5, Quantity: 1}}
	if got := acc.Snapshot(); !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
}

func TestAccumulatorAddThenRemoveRestoresSnapshot(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(1)
	acc.Add(2)
	before := acc.Snapshot()

	acc.Add(9)
	acc.Remove(9)

	if got := acc.Snapshot(); !reflect.DeepEqual(got, before) {
		t.Fatalf("expected %v, got %v", before, got)
	}
}

func TestAccumulatorDecrement(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(4)
	acc.Add(4)
	acc.Decrement(4)

	if qty := acc.Quantity(4); qty != 1 {
		t.Fatalf("expected quantity 1, got %d", qty)
	}

	// Decrementing from quantity 1 removes the entry entirely.
	acc.Decrement(4)
	if qty := acc.Quantity(4); qty != 0 {
		t.Fatalf("expected entry removed, got quantity %d", qty)
	}
	if len(acc.Snapshot()) != 0 {
		t.Fatalf("expected empty snapshot, got %v", acc.Snapshot())
	}
}

func TestAccumulatorDecrementAbsentIsNoop(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(1)
	before := acc.Snapshot()

	acc.Decrement(42)
	acc.Increment(42)
	acc.Remove(42)

	if got := acc.Snapshot(); !reflect.DeepEqual(got, before) {
		t.Fatalf("expected %v, got %v", before, got)
	}
}

func TestAccumulatorAddN(t *testing.T) {
	acc := NewAccumulator()
	acc.AddN(5, 3)
	acc.AddN(5, 2)
	acc.AddN(9, 0) // adding zero changes nothing

	expected := []LineItem{{ServiceID: 5, Quantity: 5}}
	if got := acc.Snapshot(); !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
}

func TestNormalizeLineItemsFoldsDuplicates(t *testing.T) {
	items := []LineItem{
		{ServiceID: 1, Quantity: 1},
		{ServiceID: 2, Quantity: 2},
		{ServiceID: 1, Quantity: 1},
	}

	normalized, err := NormalizeLineItems(items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []LineItem{{ServiceID: 1, Quantity: 2}, {ServiceID: 2, Quantity: 2}}
	if !reflect.DeepEqual(normalized, expected) {
		t.Fatalf("expected %v, got %v", expected, normalized)
	}
}

func TestNormalizeLineItemsRejectsZeroQuantity(t *testing.T) {
	items := []LineItem{{ServiceID: 1, Quantity: 1}, {ServiceID: 2, Quantity: 0}}

	if _, err := NormalizeLineItems(items); err != ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestAccumulatorRemoveKeepsOrderOfOthers(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(1)
	acc.Add(2)
	acc.Add(3)
	acc.Remove(2)

	expected := []LineItem{{ServiceID: 1, Quantity: 1}, {ServiceID: 3, Quantity: 1}}
	if got := acc.Snapshot(); !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
}
