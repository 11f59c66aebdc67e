package events

import (
	"testing"
)

func TestEventHub_PublishSubscribe(t *testing.T) {
	h := NewEventHub()

	ch, unsubscribe := h.Subscribe()
	if h.Subscribers() != 1 {
		t.Fatalf("Subscribers() = %d, want 1", h.Subscribers())
	}

	h.Publish(PowerState, PowerStateEvent{From: "onBattery", To: "charging", Percent: 40, Seconds: -1})

	ev := <-ch
	if ev.Name != PowerState {
		t.Errorf("Name = %q, want %q", ev.Name, PowerState)
	}
	payload, err := DecodeAs[PowerStateEvent](ev)
	if err != nil {
		t.Fatalf("DecodeAs() error = %v", err)
	}
	if payload.From != "onBattery" || payload.To != "charging" || payload.Percent != 40 {
		t.Errorf("payload = %+v", payload)
	}

	unsubscribe()
	unsubscribe()
	if _, ok := <-ch; ok {
		t.Errorf("channel still open after unsubscribe")
	}
	if h.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, want 0", h.Subscribers())
	}
}

func TestEventHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	h := NewEventHub()
	ch, unsubscribe := h.Subscribe()
	defer unsubscribe()

	for i := 0; i < defaultBuffer*2; i++ {
		h.Publish(PowerState, PowerStateEvent{Percent: i})
	}

	if got := len(ch); got != defaultBuffer {
		t.Errorf("buffered events = %d, want %d", got, defaultBuffer)
	}
}

func TestEventHub_NilPublish(t *testing.T) {
	var h *EventHub
	h.Publish(PowerState, nil)
}

func TestDecodeAs_Empty(t *testing.T) {
	v, err := DecodeAs[PowerStateEvent](Event{Name: PowerState})
	if err != nil || v != (PowerStateEvent{}) {
		t.Errorf("DecodeAs() = %+v, %v, want zero value", v, err)
	}
}
