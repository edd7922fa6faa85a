package graph

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
)

// ErrAttrType is returned when an attribute value has the wrong type for the key.
var ErrAttrType = errors.New("graph: attribute value has wrong type")

func attrErr(key string, v any) error {
	return fmt.Errorf("attribute %q: %T: %w", key, v, ErrAttrType)
}

// SetAttr applies the attributes every object shares: name, position,
// rotation, scale and visible. Other keys land in UserData.
func (b *Object3D) SetAttr(key string, value any) error {
	switch key {
	case "name":
		s, ok := value.(string)
		if !ok {
			return attrErr(key, value)
		}
		b.name = s
	case "position":
		v, err := toVec3(value)
		if err != nil {
			return attrErr(key, value)
		}
		b.Position = v
	case "rotation":
		q, err := toQuat(value)
		if err != nil {
			return attrErr(key, value)
		}
		b.Rotation = q
	case "scale":
		if f, err := toFloat32(value); err == nil {
			b.Scale = mgl32.Vec3{f, f, f}
			return nil
		}
		v, err := toVec3(value)
		if err != nil {
			return attrErr(key, value)
		}
		b.Scale = v
	case "visible":
		v, ok := value.(bool)
		if !ok {
			return attrErr(key, value)
		}
		b.Visible = v
	default:
		if b.userData == nil {
			b.userData = make(map[string]any)
		}
		b.userData[key] = value
	}
	return nil
}

// GetAttr is the read side of SetAttr.
func (b *Object3D) GetAttr(key string) (any, bool) {
	switch key {
	case "name":
		return b.name, true
	case "position":
		return b.Position, true
	case "rotation":
		return b.Rotation, true
	case "scale":
		return b.Scale, true
	case "visible":
		return b.Visible, true
	}
	v, ok := b.userData[key]
	return v, ok
}

func toFloat32(v any) (float32, error) {
	switch n := v.(type) {
	case float32:
		return n, nil
	case float64:
		return float32(n), nil
	case int:
		return float32(n), nil
	case int8:
		return float32(n), nil
	case int16:
		return float32(n), nil
	case int32:
		return float32(n), nil
	case int64:
		return float32(n), nil
	case uint:
		return float32(n), nil
	case uint8:
		return float32(n), nil
	case uint16:
		return float32(n), nil
	case uint32:
		return float32(n), nil
	case uint64:
		return float32(n), nil
	}
	return 0, ErrAttrType
}

func toVec3(v any) (mgl32.Vec3, error) {
	switch t := v.(type) {
	case mgl32.Vec3:
		return t, nil
	case [3]float32:
		return mgl32.Vec3(t), nil
	case [3]float64:
		return mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])}, nil
	case []float32:
		if len(t) == 3 {
			return mgl32.Vec3{t[0], t[1], t[2]}, nil
		}
	case []float64:
		if len(t) == 3 {
			return mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])}, nil
		}
	case []any:
		if len(t) == 3 {
			var out mgl32.Vec3
			for i, e := range t {
				f, err := toFloat32(e)
				if err != nil {
					return mgl32.Vec3{}, err
				}
				out[i] = f
			}
			return out, nil
		}
	}
	return mgl32.Vec3{}, ErrAttrType
}

// toQuat accepts a quaternion or XYZ Euler angles in degrees.
func toQuat(v any) (mgl32.Quat, error) {
	if q, ok := v.(mgl32.Quat); ok {
		return q, nil
	}
	e, err := toVec3(v)
	if err != nil {
		return mgl32.Quat{}, err
	}
	return EulerDegrees(e), nil
}

// toColor accepts a color.Color, an mgl32 vector with components in [0,1],
// a #rgb or #rrggbb string, or an SVG colour name.
func toColor(v any) (color.RGBA, error) {
	switch c := v.(type) {
	case color.RGBA:
		return c, nil
	case color.Color:
		return color.RGBAModel.Convert(c).(color.RGBA), nil
	case mgl32.Vec3:
		return color.RGBA{unit(c[0]), unit(c[1]), unit(c[2]), 255}, nil
	case mgl32.Vec4:
		return color.RGBA{unit(c[0]), unit(c[1]), unit(c[2]), unit(c[3])}, nil
	case string:
		return ParseColor(c)
	}
	return color.RGBA{}, ErrAttrType
}

func unit(f float32) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	}
	return uint8(f*255 + 0.5)
}

// ParseColor parses "#rgb", "#rrggbb" or an SVG colour name like "red".
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, ErrAttrType)
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		return color.RGBA{uint8(n >> 16), uint8(n >> 8), uint8(n), 255}, nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q: %w", s, ErrAttrType)
}
