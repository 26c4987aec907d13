// Package progress defines the progress reporting types shared between the
// combine strategies and the presentation layers.
package progress

// Update carries one progress notification from a running combiner to the
// display layer. Value is the completed fraction in [0.0, 1.0].
type Update struct {
	// CombinerIndex identifies which concurrently running combiner the
	// update belongs to.
	CombinerIndex int
	// Value is the completed fraction of the combine, from 0.0 to 1.0.
	Value float64
}

// Callback receives the completed fraction of an ongoing combine.
// Implementations must be cheap and non-blocking: combiners invoke the
// callback from their hot loop.
type Callback func(fraction float64)

// Noop is a Callback that discards updates.
func Noop(float64) {}

// ChannelCallback returns a Callback that forwards updates for the given
// combiner index to ch without ever blocking: when the channel buffer is
// full the update is dropped, since a newer fraction always supersedes an
// older one.
//
// Parameters:
//   - ch: The destination channel shared by all running combiners.
//   - combinerIndex: The index recorded in every forwarded Update.
//
// Returns:
//   - Callback: A non-blocking forwarding callback.
func ChannelCallback(ch chan<- Update, combinerIndex int) Callback {
	return func(fraction float64) {
		select {
		case ch <- Update{CombinerIndex: combinerIndex, Value: fraction}:
		default:
		}
	}
}
