// Package script loads viewer scenes from tengo scripts. A scene
// script calls the injected sphere/box builtins to describe what the
// orbit viewer shows; edits to the script file appear on reload
// without recompiling.
package script

import (
	"embed"
	"fmt"
	"image/color"
	"os"
	"strconv"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

//go:embed scripts/*.tengo
var scriptsFS embed.FS

// DefaultScriptName is the embedded scene used when no script path is
// given or the file does not exist yet.
const DefaultScriptName = "scripts/default.tengo"

// Object is one scene entry produced by a script.
type Object struct {
	Kind   string // "sphere" or "box"
	Pos    [3]float64
	Radius float64    // spheres
	Size   [3]float64 // boxes
	Color  color.NRGBA
}

// Loader reads a scene script from disk, falling back to the embedded
// default when the path is empty or missing.
type Loader struct {
	Path string
}

// Load evaluates the current script and returns its objects.
func (l *Loader) Load() ([]Object, error) {
	src, err := l.source()
	if err != nil {
		return nil, err
	}
	return Evaluate(src)
}

func (l *Loader) source() ([]byte, error) {
	if l.Path != "" {
		data, err := os.ReadFile(l.Path)
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("script: read %s: %w", l.Path, err)
		}
	}
	data, err := scriptsFS.ReadFile(DefaultScriptName)
	if err != nil {
		return nil, fmt.Errorf("script: embedded default: %w", err)
	}
	return data, nil
}

// Evaluate runs a scene script and collects the objects it declares.
func Evaluate(src []byte) ([]Object, error) {
	var objects []Object

	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap("math"))
	err := s.Add("sphere", &tengo.UserFunction{
		Name: "sphere",
		Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 5 {
				return nil, tengo.ErrWrongNumArguments
			}
			nums, err := floatArgs(args[:4])
			if err != nil {
				return nil, err
			}
			c, err := colorArg(args[4])
			if err != nil {
				return nil, err
			}
			objects = append(objects, Object{
				Kind:   "sphere",
				Pos:    [3]float64{nums[0], nums[1], nums[2]},
				Radius: nums[3],
				Color:  c,
			})
			return tengo.UndefinedValue, nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("script: add sphere builtin: %w", err)
	}

	err = s.Add("box", &tengo.UserFunction{
		Name: "box",
		Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 7 {
				return nil, tengo.ErrWrongNumArguments
			}
			nums, err := floatArgs(args[:6])
			if err != nil {
				return nil, err
			}
			c, err := colorArg(args[6])
			if err != nil {
				return nil, err
			}
			objects = append(objects, Object{
				Kind:  "box",
				Pos:   [3]float64{nums[0], nums[1], nums[2]},
				Size:  [3]float64{nums[3], nums[4], nums[5]},
				Color: c,
			})
			return tengo.UndefinedValue, nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("script: add box builtin: %w", err)
	}

	if _, err := s.Run(); err != nil {
		return nil, fmt.Errorf("script: run: %w", err)
	}
	return objects, nil
}

func floatArgs(args []tengo.Object) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, ok := tengo.ToFloat64(a)
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{
				Name:     fmt.Sprintf("arg[%d]", i),
				Expected: "number",
				Found:    a.TypeName(),
			}
		}
		out[i] = v
	}
	return out, nil
}

func colorArg(arg tengo.Object) (color.NRGBA, error) {
	s, ok := tengo.ToString(arg)
	if !ok {
		return color.NRGBA{}, tengo.ErrInvalidArgumentType{
			Name:     "color",
			Expected: "string",
			Found:    arg.TypeName(),
		}
	}
	return ParseColor(s)
}

// ParseColor parses "#rrggbb" hex colors.
func ParseColor(s string) (color.NRGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("script: bad color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("script: bad color %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}
