package vidprep

import "context"

// The interfaces below describe the components that consume validated
// files. vidprep defines their shape only; implementations live with the
// model-training code that owns them.

// Tensor is a decoded video held in memory.
type Tensor interface {
	// Shape returns the dimensions, typically frames, channels, height, width.
	Shape() []int
}

// TensorLoader decodes a video into a Tensor.
type TensorLoader interface {
	LoadFile(ctx context.Context, path string) (Tensor, error)
	LoadBytes(ctx context.Context, data []byte) (Tensor, error)
}

// AugmentOp names one augmentation step and its parameters.
type AugmentOp struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

// Augmenter applies a chain of augmentations in order.
type Augmenter interface {
	Chain(ctx context.Context, t Tensor, ops []AugmentOp) (Tensor, error)
}

// StandardizeConfig is the target format for re-encoding.
type StandardizeConfig struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	FrameRate  float64 `json:"frame_rate"`
	VideoCodec string  `json:"video_codec"`
	AudioCodec string  `json:"audio_codec,omitempty"`
	Container  string  `json:"container"`
}

// Standardizer re-encodes a file to a target format and returns the output path.
type Standardizer interface {
	Standardize(ctx context.Context, path string, target StandardizeConfig) (string, error)
}
