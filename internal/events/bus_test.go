package events

import "testing"

func TestPublishReachesAllSubscribers(t *testing.T) {
	bus := NewBus()

	ch1, cancel1 := bus.Subscribe()
	ch2, cancel2 := bus.Subscribe()
	defer cancel1()
	defer cancel2()

	bus.Publish(ProgressUpdated{SetID: 7})

	for i, ch := range []<-chan ProgressUpdated{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.SetID != 7 {
				t.Errorf("subscriber %d got SetID %d, want 7", i, ev.SetID)
			}
		default:
			t.Errorf("subscriber %d missed the signal", i)
		}
	}
}

func TestPublishWithNoSubscribersIsFireAndForget(t *testing.T) {
	bus := NewBus()
	// Must not block or panic.
	bus.Publish(ProgressUpdated{SetID: 1})
}

func TestPublishNeverBlocksOnSlowSubscriber(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe()
	defer cancel()

	// Overfill the buffer; extra signals are dropped, not queued.
	for i := 0; i < subBuffer*2; i++ {
		bus.Publish(ProgressUpdated{SetID: i})
	}

	if got := len(ch); got != subBuffer {
		t.Errorf("buffered signals = %d, want %d", got, subBuffer)
	}
}

func TestCancelClosesChannel(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe()

	cancel()
	cancel() // idempotent

	if _, open := <-ch; open {
		t.Error("channel should be closed after cancel")
	}

	// Publishing after cancel must not panic on the closed channel.
	bus.Publish(ProgressUpdated{SetID: 3})
}
