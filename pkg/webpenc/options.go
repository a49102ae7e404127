package webpenc

// EncoderOption allows to setup some internal encoder properties from outside.
type EncoderOption func(*Encoder)

// WithQuality setups the encoding quality (the value is clamped into the [0..100] range).
func WithQuality(quality int) EncoderOption {
	return func(e *Encoder) { e.quality = min(max(quality, 0), 100) }
}

// WithLossless enables or disables the lossless encoding mode (the quality setting is ignored by
// the underlying encoder in that mode).
func WithLossless(lossless bool) EncoderOption {
	return func(e *Encoder) { e.lossless = lossless }
}

// WithMethod setups the encoder quality/speed trade-off level (the value is clamped into the
// [0..6] range, 0 = fast, 6 = slower but better).
func WithMethod(method int) EncoderOption {
	return func(e *Encoder) { e.method = min(max(method, 0), 6) }
}

// WithExact preserves the RGB values in fully transparent areas instead of allowing the encoder
// to optimize them away.
func WithExact(exact bool) EncoderOption {
	return func(e *Encoder) { e.exact = exact }
}
