//go:build wasm

package internal

// wasm runs every goroutine on a single thread, so a delivery that arrives
// while another one is in progress is treated as re-entrant and queued.
func getGID() int64 {
	return 1
}
