package ringbuffer

// cacheLinePad reserves space on either side of a hot field (the cursor,
// the alert flag) to isolate it to its own cache line and avoid false
// sharing with neighbouring fields. Sized for a common 64-byte line minus
// the 8 bytes the field itself occupies.
type cacheLinePad [56]byte
