package query

import (
	"github.com/transitquery/transitqueryd/jsonio"
	"github.com/transitquery/transitqueryd/projection"
	"github.com/transitquery/transitqueryd/svgdoc"
	"github.com/transitquery/transitqueryd/transfergraph"
)

// RoutingSettings is a fixed per-stop boarding delay and an average bus
// velocity, shared by every route computed against one network.
type RoutingSettings struct {
	BusWaitMinutes float64
	BusVelocityKMH float64
}

// ParseRoutingSettings reads a routing_settings object.
func ParseRoutingSettings(node jsonio.Node) (RoutingSettings, error) {
	wait, err := node.Get("bus_wait_time")
	if err != nil {
		return RoutingSettings{}, err
	}
	waitMinutes, err := wait.Float64()
	if err != nil {
		return RoutingSettings{}, err
	}

	velocity, err := node.Get("bus_velocity")
	if err != nil {
		return RoutingSettings{}, err
	}
	velocityKMH, err := velocity.Float64()
	if err != nil {
		return RoutingSettings{}, err
	}

	return RoutingSettings{BusWaitMinutes: waitMinutes, BusVelocityKMH: velocityKMH}, nil
}

// Options lowers RoutingSettings into transfergraph.Build options.
func (s RoutingSettings) Options() []transfergraph.Option {
	return []transfergraph.Option{
		transfergraph.WithWaitTimeMinutes(s.BusWaitMinutes),
		transfergraph.WithVelocityKMH(s.BusVelocityKMH),
	}
}

// ParseRenderSettings reads a render_settings object field by field, down
// to the "layers" key naming the render order.
func ParseRenderSettings(node jsonio.Node) (svgdoc.RenderSettings, error) {
	var settings svgdoc.RenderSettings

	if err := readFloat(node, "width", &settings.Width); err != nil {
		return settings, err
	}
	if err := readFloat(node, "height", &settings.Height); err != nil {
		return settings, err
	}
	if err := readFloat(node, "padding", &settings.Padding); err != nil {
		return settings, err
	}
	if err := readFloat(node, "line_width", &settings.LineWidth); err != nil {
		return settings, err
	}
	if err := readFloat(node, "stop_radius", &settings.StopRadius); err != nil {
		return settings, err
	}
	if err := readFloat(node, "underlayer_width", &settings.UnderlayerWidth); err != nil {
		return settings, err
	}

	stopFontSize, err := readInt(node, "stop_label_font_size")
	if err != nil {
		return settings, err
	}
	settings.StopLabelFontSize = stopFontSize

	busFontSize, err := readInt(node, "bus_label_font_size")
	if err != nil {
		return settings, err
	}
	settings.BusLabelFontSize = busFontSize

	sx, sy, err := readOffset(node, "stop_label_offset")
	if err != nil {
		return settings, err
	}
	settings.StopLabelOffsetX, settings.StopLabelOffsetY = sx, sy

	bx, by, err := readOffset(node, "bus_label_offset")
	if err != nil {
		return settings, err
	}
	settings.BusLabelOffsetX, settings.BusLabelOffsetY = bx, by

	palette, err := readPalette(node, "color_palette")
	if err != nil {
		return settings, err
	}
	settings.Palette = palette

	underlayer, err := node.Get("underlayer_color")
	if err != nil {
		return settings, err
	}
	settings.UnderlayerColor, err = readColor(underlayer)
	if err != nil {
		return settings, err
	}

	layers, err := node.Get("layers")
	if err != nil {
		return settings, err
	}
	layerNodes, err := layers.Array()
	if err != nil {
		return settings, err
	}
	for _, l := range layerNodes {
		name, err := l.String()
		if err != nil {
			return settings, err
		}
		settings.RenderOrder = append(settings.RenderOrder, svgdoc.Layer(name))
	}

	return settings, nil
}

func readFloat(node jsonio.Node, key string, out *float64) error {
	v, err := node.Get(key)
	if err != nil {
		return err
	}
	f, err := v.Float64()
	if err != nil {
		return err
	}
	*out = f

	return nil
}

func readInt(node jsonio.Node, key string) (int, error) {
	v, err := node.Get(key)
	if err != nil {
		return 0, err
	}

	return v.Int()
}

func readOffset(node jsonio.Node, key string) (x, y float64, err error) {
	v, err := node.Get(key)
	if err != nil {
		return 0, 0, err
	}
	items, err := v.Array()
	if err != nil {
		return 0, 0, err
	}
	x, err = items[0].Float64()
	if err != nil {
		return 0, 0, err
	}
	y, err = items[1].Float64()

	return x, y, err
}

func readPalette(node jsonio.Node, key string) (svgdoc.Palette, error) {
	v, err := node.Get(key)
	if err != nil {
		return svgdoc.Palette{}, err
	}
	items, err := v.Array()
	if err != nil {
		return svgdoc.Palette{}, err
	}

	colors := make([]svgdoc.Color, len(items))
	for i, item := range items {
		c, err := readColor(item)
		if err != nil {
			return svgdoc.Palette{}, err
		}
		colors[i] = c
	}

	return svgdoc.NewPalette(colors), nil
}

// readColor accepts either a plain color name string or a [r, g, b] /
// [r, g, b, alpha] array.
func readColor(node jsonio.Node) (svgdoc.Color, error) {
	if node.IsArray() {
		items, err := node.Array()
		if err != nil {
			return svgdoc.Color{}, err
		}
		r, err := items[0].Int()
		if err != nil {
			return svgdoc.Color{}, err
		}
		g, err := items[1].Int()
		if err != nil {
			return svgdoc.Color{}, err
		}
		b, err := items[2].Int()
		if err != nil {
			return svgdoc.Color{}, err
		}
		if len(items) == 4 {
			a, err := items[3].Float64()
			if err != nil {
				return svgdoc.Color{}, err
			}

			return svgdoc.FromRGBA(uint8(r), uint8(g), uint8(b), a), nil
		}

		return svgdoc.FromRGB(uint8(r), uint8(g), uint8(b)), nil
	}

	name, err := node.String()
	if err != nil {
		return svgdoc.Color{}, err
	}

	return svgdoc.Named(name), nil
}

// canvasSettings adapts svgdoc.RenderSettings to projection.Settings.
func canvasSettings(s svgdoc.RenderSettings) projection.Settings {
	return projection.Settings{Width: s.Width, Height: s.Height, Padding: s.Padding}
}
