package compile

import (
	"github.com/dashforge/dashforge/pkg/compile/grid"
	"github.com/dashforge/dashforge/pkg/dashboard"
	"github.com/dashforge/dashforge/pkg/normalize"
)

// buildPanel emits one output record for a visual panel node: allocate
// the id, place the rectangle, resolve defaults for the kind, build the
// kind-specific configuration, extract targets and apply the raw-merge
// override.
func (c *context) buildPanel(n *dashboard.Node) error {
	resolved := c.defaults.Resolve(string(n.Kind))

	// Explicit panel properties always win over resolved defaults.
	props := make(dashboard.Props, len(resolved)+len(n.Props))
	for k, v := range resolved {
		props[k] = v
	}
	for k, v := range n.Props {
		props[k] = v
	}

	width := props.Int("width", grid.DefaultPanelWidth)
	height := props.Int("height", grid.DefaultPanelHeight)

	// A panel declaring absolute coordinates bypasses flow placement
	// entirely; margin only applies to flow-placed panels.
	var rect grid.Rect
	if props.Has("x") && props.Has("y") {
		rect = grid.Rect{X: props.Int("x", 0), Y: props.Int("y", 0), W: width, H: height}
	} else {
		rect = c.cursor.Place(width, height, props.Int("margin", 0))
	}

	p := &dashboard.Panel{
		ID:              c.allocID(),
		Type:            string(n.Kind),
		Title:           props.String("title", ""),
		Description:     props.String("description", ""),
		GridPos:         toGridPos(rect),
		Repeat:          props.String("repeat", ""),
		RepeatDirection: props.String("repeatDirection", ""),
		PluginVersion:   props.String("pluginVersion", ""),
	}

	if ds, ok := props["datasource"]; ok {
		p.Datasource = ds
	} else {
		p.Datasource = c.datasource
	}

	p.FieldConfig, p.Options = builderFor(n.Kind)(n, props)
	if extra := props.Map("options"); extra != nil {
		if p.Options == nil {
			p.Options = map[string]any{}
		}
		normalize.DeepMerge(p.Options, extra)
	}

	p.Targets = targetsOf(n)
	p.Transformations = transformations(props)

	if raw := props.Map("raw"); raw != nil {
		p.MergeRaw(raw)
	}

	c.panels = append(c.panels, p)
	c.cursor.Advance(rect)
	return nil
}

// builder produces the kind-specific field configuration and options of
// a panel from its effective (defaults-resolved) properties.
type builder func(n *dashboard.Node, props dashboard.Props) (*dashboard.FieldConfig, map[string]any)

var builders = map[dashboard.Kind]builder{
	dashboard.KindTimeseries:    buildTimeseries,
	dashboard.KindTrend:         buildTimeseries,
	dashboard.KindBarChart:      buildBarChart,
	dashboard.KindStat:          buildStat,
	dashboard.KindGauge:         buildGauge,
	dashboard.KindBarGauge:      buildBarGauge,
	dashboard.KindPieChart:      buildPieChart,
	dashboard.KindTable:         buildTable,
	dashboard.KindText:          buildText,
	dashboard.KindLogs:          buildLogs,
	dashboard.KindNews:          buildNews,
	dashboard.KindDashList:      buildDashList,
	dashboard.KindAlertList:     buildAlertList,
	dashboard.KindHistogram:     buildHistogram,
	dashboard.KindStateTimeline: buildStateTimeline,
	dashboard.KindStatusHistory: buildStateTimeline,
	dashboard.KindHeatmap:       buildHeatmap,
}

func builderFor(k dashboard.Kind) builder {
	if b, ok := builders[k]; ok {
		return b
	}
	return buildGeneric
}

// standardFieldConfig assembles the field defaults shared by most panel
// kinds: unit, bounds, thresholds, mappings and the color scheme. The
// custom block is kind-specific and merged in by the caller's builder.
func standardFieldConfig(props dashboard.Props, custom map[string]any) *dashboard.FieldConfig {
	d := map[string]any{
		"thresholds": map[string]any{
			"mode":  props.String("thresholdsMode", "absolute"),
			"steps": normalize.Thresholds(props["thresholds"], props.String("baseColor", "green")),
		},
		"mappings": normalize.ValueMappings(props["mappings"]),
		"color":    map[string]any{"mode": props.String("colorScheme", "palette-classic")},
	}
	if u := props.String("unit", ""); u != "" {
		d["unit"] = u
	}
	if props.Has("min") {
		d["min"] = props.Float("min", 0)
	}
	if props.Has("max") {
		d["max"] = props.Float("max", 0)
	}
	if props.Has("decimals") {
		d["decimals"] = props.Int("decimals", 0)
	}
	if nv := props.String("noValue", ""); nv != "" {
		d["noValue"] = nv
	}
	if len(custom) > 0 {
		d["custom"] = custom
	}
	if extra := props.Map("fieldDefaults"); extra != nil {
		normalize.DeepMerge(d, extra)
	}
	return &dashboard.FieldConfig{Defaults: d, Overrides: fieldOverrides(props)}
}

func fieldOverrides(props dashboard.Props) []map[string]any {
	switch v := props["overrides"].(type) {
	case []map[string]any:
		return v
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, e := range v {
			if m, ok := e.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return []map[string]any{}
}

func transformations(props dashboard.Props) []map[string]any {
	switch v := props["transformations"].(type) {
	case []map[string]any:
		return v
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, e := range v {
			if m, ok := e.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

func buildTimeseries(_ *dashboard.Node, props dashboard.Props) (*dashboard.FieldConfig, map[string]any) {
	custom := map[string]any{
		"drawStyle":         props.String("drawStyle", "line"),
		"fillOpacity":       props.Int("fill", 0),
		"lineWidth":         props.Int("lineWidth", 1),
		"lineStyle":         normalize.LineStyle(props["lineStyle"]),
		"scaleDistribution": normalize.ScaleDistribution(props["scale"]),
		"showPoints":        props.String("showPoints", "auto"),
		"spanNulls":         props.Bool("spanNulls", false),
	}
	if props.Has("stacking") {
		custom["stacking"] = map[string]any{"mode": props.String("stacking", "none")}
	}
	options := map[string]any{
		"legend":  normalize.Legend(props["legend"]),
		"tooltip": normalize.Tooltip(props["panelTooltip"]),
	}
	return standardFieldConfig(props, custom), options
}

func buildBarChart(_ *dashboard.Node, props dashboard.Props) (*dashboard.FieldConfig, map[string]any) {
	custom := map[string]any{
		"fillOpacity":       props.Int("fill", 80),
		"lineWidth":         props.Int("lineWidth", 1),
		"scaleDistribution": normalize.ScaleDistribution(props["scale"]),
	}
	options := map[string]any{
		"orientation": props.String("orientation", "auto"),
		"legend":      normalize.Legend(props["legend"]),
		"tooltip":     normalize.Tooltip(props["panelTooltip"]),
		"stacking":    props.String("stacking", "none"),
	}
	return standardFieldConfig(props, custom), options
}

func buildStat(_ *dashboard.Node, props dashboard.Props) (*dashboard.FieldConfig, map[string]any) {
	options := map[string]any{
		"reduceOptions": normalize.Reduce(props["reduce"]),
		"orientation":   props.String("orientation", "auto"),
		"textMode":      props.String("textMode", "auto"),
		"colorMode":     props.String("colorMode", "value"),
		"graphMode":     props.String("graphMode", "area"),
		"justifyMode":   props.String("justifyMode", "auto"),
	}
	return standardFieldConfig(props, nil), options
}

func buildGauge(_ *dashboard.Node, props dashboard.Props) (*dashboard.FieldConfig, map[string]any) {
	options := map[string]any{
		"reduceOptions":       normalize.Reduce(props["reduce"]),
		"orientation":         props.String("orientation", "auto"),
		"showThresholdLabels": props.Bool("showThresholdLabels", false),
		"showThresholdMarkers": props.Bool(
			"showThresholdMarkers", true),
	}
	return standardFieldConfig(props, nil), options
}

func buildBarGauge(_ *dashboard.Node, props dashboard.Props) (*dashboard.FieldConfig, map[string]any) {
	options := map[string]any{
		"reduceOptions": normalize.Reduce(props["reduce"]),
		"orientation":   props.String("orientation", "horizontal"),
		"displayMode":   props.String("displayMode", "gradient"),
		"valueMode":     props.String("valueMode", "color"),
	}
	return standardFieldConfig(props, nil), options
}

func buildPieChart(_ *dashboard.Node, props dashboard.Props) (*dashboard.FieldConfig, map[string]any) {
	options := map[string]any{
		"reduceOptions": normalize.Reduce(props["reduce"]),
		"pieType":       props.String("pieType", "pie"),
		"legend":        normalize.Legend(props["legend"]),
		"tooltip":       normalize.Tooltip(props["panelTooltip"]),
	}
	return standardFieldConfig(props, nil), options
}

func buildTable(_ *dashboard.Node, props dashboard.Props) (*dashboard.FieldConfig, map[string]any) {
	custom := map[string]any{
		"align":      props.String("align", "auto"),
		"cellType":   props.String("cellType", "auto"),
		"filterable": props.Bool("filterable", false),
	}
	options := map[string]any{
		"showHeader": props.Bool("showHeader", true),
	}
	if props.Has("footerCalcs") {
		options["footer"] = map[string]any{
			"show":     true,
			"reducer":  props.Strings("footerCalcs"),
			"fields":   "",
			"countAll": false,
		}
	}
	return standardFieldConfig(props, custom), options
}

// buildText renders markdown/HTML content; the content may come from a
// property or from the node's text children.
func buildText(n *dashboard.Node, props dashboard.Props) (*dashboard.FieldConfig, map[string]any) {
	content := props.String("content", "")
	if content == "" {
		content = n.TextContent()
	}
	options := map[string]any{
		"mode":    props.String("mode", "markdown"),
		"content": content,
	}
	return nil, options
}

func buildLogs(_ *dashboard.Node, props dashboard.Props) (*dashboard.FieldConfig, map[string]any) {
	options := map[string]any{
		"showTime":         props.Bool("showTime", false),
		"showLabels":       props.Bool("showLabels", false),
		"wrapLogMessage":   props.Bool("wrap", false),
		"sortOrder":        props.String("sortOrder", "Descending"),
		"dedupStrategy":    props.String("dedup", "none"),
		"enableLogDetails": props.Bool("logDetails", true),
	}
	return nil, options
}

func buildNews(_ *dashboard.Node, props dashboard.Props) (*dashboard.FieldConfig, map[string]any) {
	options := map[string]any{
		"showImage": props.Bool("showImage", true),
	}
	if feed := props.String("feedUrl", ""); feed != "" {
		options["feedUrl"] = feed
	}
	return nil, options
}

func buildDashList(_ *dashboard.Node, props dashboard.Props) (*dashboard.FieldConfig, map[string]any) {
	options := map[string]any{
		"showHeadings":       props.Bool("showHeadings", true),
		"showSearch":         props.Bool("showSearch", false),
		"showRecentlyViewed": props.Bool("showRecent", false),
		"showStarred":        props.Bool("showStarred", true),
		"maxItems":           props.Int("maxItems", 10),
		"query":              props.String("query", ""),
		"tags":               props.Strings("tags"),
	}
	return nil, options
}

func buildAlertList(_ *dashboard.Node, props dashboard.Props) (*dashboard.FieldConfig, map[string]any) {
	options := map[string]any{
		"alertName":      props.String("alertName", ""),
		"dashboardTitle": props.String("dashboardTitle", ""),
		"maxItems":       props.Int("maxItems", 20),
		"sortOrder":      props.Int("sortOrder", 1),
		"viewMode":       props.String("viewMode", "list"),
	}
	return nil, options
}

func buildHistogram(_ *dashboard.Node, props dashboard.Props) (*dashboard.FieldConfig, map[string]any) {
	custom := map[string]any{
		"fillOpacity": props.Int("fill", 80),
		"lineWidth":   props.Int("lineWidth", 1),
	}
	options := map[string]any{
		"bucketOffset": props.Int("bucketOffset", 0),
		"combine":      props.Bool("combine", false),
		"legend":       normalize.Legend(props["legend"]),
	}
	if props.Has("bucketSize") {
		options["bucketSize"] = props.Float("bucketSize", 0)
	}
	return standardFieldConfig(props, custom), options
}

func buildStateTimeline(_ *dashboard.Node, props dashboard.Props) (*dashboard.FieldConfig, map[string]any) {
	custom := map[string]any{
		"fillOpacity": props.Int("fill", 70),
		"lineWidth":   props.Int("lineWidth", 0),
	}
	options := map[string]any{
		"showValue": props.String("showValue", "auto"),
		"rowHeight": props.Float("rowHeight", 0.9),
		"legend":    normalize.Legend(props["legend"]),
		"tooltip":   normalize.Tooltip(props["panelTooltip"]),
	}
	return standardFieldConfig(props, custom), options
}

func buildHeatmap(_ *dashboard.Node, props dashboard.Props) (*dashboard.FieldConfig, map[string]any) {
	options := map[string]any{
		"calculate": props.Bool("calculate", true),
		"color": map[string]any{
			"mode":   props.String("heatmapColorMode", "scheme"),
			"scheme": props.String("scheme", "Spectral"),
			"steps":  props.Int("colorSteps", 64),
		},
		"legend":  map[string]any{"show": props.Bool("showLegend", true)},
		"tooltip": normalize.Tooltip(props["panelTooltip"]),
	}
	return standardFieldConfig(props, nil), options
}

// buildGeneric serves the panel kinds whose configuration is a plain
// copy: standard field defaults plus whatever the author supplied.
func buildGeneric(_ *dashboard.Node, props dashboard.Props) (*dashboard.FieldConfig, map[string]any) {
	custom := props.Map("custom")
	return standardFieldConfig(props, custom), map[string]any{}
}
