package models

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	forward := []OrderStatus{OrderPending, OrderConfirmed, OrderProcessing, OrderShipped, OrderDelivered}
	for i := 0; i < len(forward)-1; i++ {
		if !forward[i].CanTransitionTo(forward[i+1]) {
			t.Errorf("%s should advance to %s", forward[i], forward[i+1])
		}
	}

	// No skipping steps, no going back.
	if OrderPending.CanTransitionTo(OrderShipped) {
		t.Error("pending must not jump to shipped")
	}
	if OrderShipped.CanTransitionTo(OrderConfirmed) {
		t.Error("shipped must not go back to confirmed")
	}

	// Cancellable at every step before delivery, and only before.
	for _, s := range []OrderStatus{OrderPending, OrderConfirmed, OrderProcessing, OrderShipped} {
		if !s.CanTransitionTo(OrderCancelled) {
			t.Errorf("%s should be cancellable", s)
		}
	}
	if OrderDelivered.CanTransitionTo(OrderCancelled) {
		t.Error("delivered orders cannot be cancelled")
	}
	if OrderCancelled.CanTransitionTo(OrderPending) {
		t.Error("cancelled is terminal")
	}
}
