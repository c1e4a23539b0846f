package types

import (
	"github.com/specialistvlad/protocatalog/internal/convert"
)

// Sprite is a single image, or a stack of layers drawn on top of each other.
type Sprite struct {
	Filename     string   `proto:"filename"`
	Layers       []Sprite `proto:"layers"`
	Width        uint32   `proto:"width"`
	Height       uint32   `proto:"height"`
	Size         []uint32 `proto:"size,single"`
	X            uint32   `proto:"x"`
	Y            uint32   `proto:"y"`
	Shift        *Vector  `proto:"shift"`
	Scale        float64  `proto:"scale,default=1"`
	Priority     string   `proto:"priority,default=medium,oneof=extra-high-no-scale|extra-high|high|medium|low|very-low|no-atlas"`
	Tint         *Color   `proto:"tint"`
	DrawAsShadow bool     `proto:"draw_as_shadow"`
	BlendMode    string   `proto:"blend_mode,default=normal,oneof=normal|additive|additive-soft|multiplicative|overwrite"`
}

func (s *Sprite) PostConvert(*convert.Context) error {
	if len(s.Layers) > 0 {
		return nil
	}
	if s.Filename == "" {
		return convert.Missing("filename")
	}
	switch len(s.Size) {
	case 0:
	case 1:
		s.Width, s.Height = s.Size[0], s.Size[0]
	case 2:
		s.Width, s.Height = s.Size[0], s.Size[1]
	default:
		return convert.Invalid("size", "expected 1 or 2 numbers, got %d", len(s.Size))
	}
	if s.Width == 0 {
		return convert.Missing("width")
	}
	if s.Height == 0 {
		return convert.Missing("height")
	}
	return nil
}

// Animation is a sprite sheet played frame by frame.
type Animation struct {
	Filename       string      `proto:"filename"`
	Stripes        []Stripe    `proto:"stripes"`
	Layers         []Animation `proto:"layers"`
	Width          uint32      `proto:"width"`
	Height         uint32      `proto:"height"`
	Size           []uint32    `proto:"size,single"`
	Shift          *Vector     `proto:"shift"`
	Scale          float64     `proto:"scale,default=1"`
	Priority       string      `proto:"priority,default=medium,oneof=extra-high-no-scale|extra-high|high|medium|low|very-low|no-atlas"`
	FrameCount     uint32      `proto:"frame_count,default=1"`
	LineLength     uint32      `proto:"line_length"`
	AnimationSpeed float64     `proto:"animation_speed,default=1"`
	RunMode        string      `proto:"run_mode,default=forward,oneof=forward|backward|forward-then-backward"`
	RepeatCount    uint8       `proto:"repeat_count,default=1"`
	Tint           *Color      `proto:"tint"`
	DrawAsShadow   bool        `proto:"draw_as_shadow"`
}

// Stripe is one file of an animation split across several files.
type Stripe struct {
	Filename       string `proto:"filename,required"`
	WidthInFrames  uint32 `proto:"width_in_frames,required"`
	HeightInFrames uint32 `proto:"height_in_frames,required"`
}

func (a *Animation) PostConvert(*convert.Context) error {
	if len(a.Layers) > 0 {
		return nil
	}
	if a.Filename == "" && len(a.Stripes) == 0 {
		return convert.Missing("filename")
	}
	switch len(a.Size) {
	case 0:
	case 1:
		a.Width, a.Height = a.Size[0], a.Size[0]
	case 2:
		a.Width, a.Height = a.Size[0], a.Size[1]
	default:
		return convert.Invalid("size", "expected 1 or 2 numbers, got %d", len(a.Size))
	}
	if a.FrameCount == 0 {
		return convert.Invalid("frame_count", "must be at least 1")
	}
	if a.AnimationSpeed <= 0 {
		return convert.Invalid("animation_speed", "must be positive, got %g", a.AnimationSpeed)
	}
	return nil
}

// Animation4Way holds one animation per direction. Directions left out
// reuse north.
type Animation4Way struct {
	North *Animation `proto:"north,required"`
	East  *Animation `proto:"east"`
	South *Animation `proto:"south"`
	West  *Animation `proto:"west"`
}

func (a *Animation4Way) PostConvert(*convert.Context) error {
	for _, dir := range []**Animation{&a.East, &a.South, &a.West} {
		if *dir == nil {
			*dir = a.North
		}
	}
	return nil
}

// Sound is a sound definition with optional variations.
type Sound struct {
	Filename   string      `proto:"filename"`
	Volume     float64     `proto:"volume,default=1"`
	Variations []SoundFile `proto:"variations"`
}

// SoundFile is one variation of a Sound.
type SoundFile struct {
	Filename string  `proto:"filename,required"`
	Volume   float64 `proto:"volume,default=1"`
}

func (s *Sound) PostConvert(*convert.Context) error {
	if s.Filename == "" && len(s.Variations) == 0 {
		return convert.Missing("filename")
	}
	if s.Volume < 0 {
		return convert.Invalid("volume", "must not be negative, got %g", s.Volume)
	}
	return nil
}

// WorkingSound is the looping sound of a working machine.
type WorkingSound struct {
	Sound            *Sound  `proto:"sound"`
	IdleSound        *Sound  `proto:"idle_sound"`
	ApparentVolume   float64 `proto:"apparent_volume,default=1"`
	MaxSoundsPerType uint8   `proto:"max_sounds_per_type"`
	FadeInTicks      uint32  `proto:"fade_in_ticks"`
	FadeOutTicks     uint32  `proto:"fade_out_ticks"`
	UseDopplerShift  bool    `proto:"use_doppler_shift,default=true"`
}
