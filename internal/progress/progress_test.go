package progress

import "testing"

func TestChannelCallback(t *testing.T) {
	t.Parallel()

	t.Run("forwards updates with combiner index", func(t *testing.T) {
		t.Parallel()
		ch := make(chan Update, 1)
		cb := ChannelCallback(ch, 3)

		cb(0.25)
		got := <-ch
		if got.CombinerIndex != 3 || got.Value != 0.25 {
			t.Errorf("got %+v, want {CombinerIndex:3 Value:0.25}", got)
		}
	})

	t.Run("never blocks when the buffer is full", func(t *testing.T) {
		t.Parallel()
		ch := make(chan Update, 1)
		cb := ChannelCallback(ch, 0)

		cb(0.1)
		cb(0.2) // buffer full: must be dropped, not block

		got := <-ch
		if got.Value != 0.1 {
			t.Errorf("got %v, want first update 0.1", got.Value)
		}
		select {
		case unexpected := <-ch:
			t.Errorf("unexpected second update %+v", unexpected)
		default:
		}
	})
}

func TestNoop(t *testing.T) {
	t.Parallel()
	Noop(0.5) // must not panic
}
