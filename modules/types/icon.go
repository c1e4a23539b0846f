package types

import (
	"github.com/specialistvlad/protocatalog/internal/convert"
)

// IconSpecification is embedded by layers that carry an icon. Either icon
// with icon_size or a non-empty icons list is needed; layers decide whether
// an icon is mandatory and call CheckIcon from their PostConvert hook.
type IconSpecification struct {
	Icon        string     `proto:"icon"`
	Icons       []IconData `proto:"icons"`
	IconSize    int16      `proto:"icon_size"`
	IconMipmaps uint8      `proto:"icon_mipmaps"`
}

// IconData is one layer of a layered icon.
type IconData struct {
	Icon        string  `proto:"icon,required"`
	IconSize    int16   `proto:"icon_size"`
	Tint        *Color  `proto:"tint"`
	Shift       *Vector `proto:"shift"`
	Scale       float64 `proto:"scale,default=1"`
	IconMipmaps uint8   `proto:"icon_mipmaps"`
}

// HasIcon reports whether any icon property was given.
func (s *IconSpecification) HasIcon() bool {
	return s.Icon != "" || len(s.Icons) > 0
}

// CheckIcon enforces the icon rules and copies icon_size into layers that
// do not set their own.
func (s *IconSpecification) CheckIcon() error {
	if len(s.Icons) > 0 {
		for i := range s.Icons {
			if s.Icons[i].IconSize != 0 {
				continue
			}
			if s.IconSize == 0 {
				return convert.Missing("icon_size")
			}
			s.Icons[i].IconSize = s.IconSize
		}
		return nil
	}
	if s.Icon == "" {
		return convert.Missing("icon")
	}
	if s.IconSize <= 0 {
		return convert.Missing("icon_size")
	}
	return nil
}
