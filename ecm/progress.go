package ecm

// ProgressFunc reports bytes consumed from the input stream so far, plus
// the total size when known (-1 otherwise). Encode calls it once per
// lookahead-buffer refill and Decode once per decoded record;
// implementations must tolerate a nil ProgressFunc.
type ProgressFunc func(processed, total int64)
