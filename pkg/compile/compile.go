package compile

import (
	"github.com/google/uuid"

	"github.com/dashforge/dashforge/pkg/compile/defaults"
	"github.com/dashforge/dashforge/pkg/compile/grid"
	"github.com/dashforge/dashforge/pkg/dashboard"
	"github.com/dashforge/dashforge/pkg/errors"
)

// Options configures a compile pass.
type Options struct {
	// ExternalDefaults is an optional defaults layer supplied from outside
	// the tree (a CLI defaults file, an API request). Document-level
	// defaults declared on the tree win on conflicting keys.
	ExternalDefaults map[string]any

	// UID overrides the document uid. When neither this nor the tree
	// supplies one, a random uid is generated.
	UID string
}

// context is the single mutable state of one compile pass.
type context struct {
	cursor      grid.Cursor
	defaults    defaults.Stack
	nextID      int
	panels      []*dashboard.Panel
	variables   []dashboard.Variable
	annotations []dashboard.Annotation
	links       []dashboard.Link
	datasource  any
}

// Compile walks the tree rooted at root and assembles the document.
// The input tree is never mutated.
func Compile(root *dashboard.Node, opts Options) (*dashboard.Dashboard, error) {
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidRoot, "root node is missing, want %q", dashboard.KindDashboard)
	}
	if root.Kind != dashboard.KindDashboard {
		return nil, errors.New(errors.ErrCodeInvalidRoot, "root node is %q, want %q", root.Kind, dashboard.KindDashboard)
	}

	c := &context{nextID: 1, datasource: root.Props["datasource"]}

	layer := defaults.FromProps(opts.ExternalDefaults, isPanelKind)
	if doc := root.Props.Map("defaults"); doc != nil {
		layer = layer.Merge(defaults.FromProps(doc, isPanelKind))
	}
	if !layer.Empty() {
		c.defaults.Push(layer)
	}

	for _, child := range root.Children {
		if err := c.walk(child); err != nil {
			return nil, err
		}
	}

	return c.assemble(root, opts), nil
}

func isPanelKind(k string) bool { return dashboard.IsPanel(dashboard.Kind(k)) }

// walk dispatches one node. The kind set is closed; nodes outside it are
// treated as transparent wrappers, matching the composite variant.
func (c *context) walk(n *dashboard.Node) error {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case dashboard.KindTextNode, dashboard.KindTarget:
		// Consumed by the owning panel or variable, never visited alone.
		return nil
	case dashboard.KindDashboard:
		return errors.New(errors.ErrCodeInvalidInput, "nested dashboard node %q", n.Props.String("title", ""))
	case dashboard.KindVariable:
		c.addVariable(n)
		return nil
	case dashboard.KindAnnotation:
		c.addAnnotation(n)
		return nil
	case dashboard.KindLink:
		c.links = append(c.links, dashboard.Link(n.Props.Clone()))
		return nil
	case dashboard.KindRow:
		return c.walkRow(n)
	case dashboard.KindContainer:
		return c.walkContainer(n)
	case dashboard.KindDefaults:
		c.defaults.Push(defaults.FromProps(n.Props, isPanelKind))
		err := c.walkChildren(n)
		c.defaults.Pop()
		return err
	case dashboard.KindComposite:
		return c.walkWrapper(n)
	default:
		if dashboard.IsPanel(n.Kind) {
			return c.buildPanel(n)
		}
		// Unrecognized kind: function-node indirection or transparent
		// grouping wrapper.
		return c.walkWrapper(n)
	}
}

func (c *context) walkChildren(n *dashboard.Node) error {
	for _, child := range n.Children {
		if err := c.walk(child); err != nil {
			return err
		}
	}
	return nil
}

func (c *context) walkWrapper(n *dashboard.Node) error {
	if n.Expand != nil {
		return c.walk(n.Expand())
	}
	return c.walkChildren(n)
}

// walkRow emits the structural header record, lays out the children under
// the row's padding insets and closes the row.
func (c *context) walkRow(n *dashboard.Node) error {
	pad := n.Props.Int("padding", 0)
	padLeft := n.Props.Int("paddingLeft", pad)
	padRight := n.Props.Int("paddingRight", pad)

	id := c.allocID()
	header := c.cursor.StartRow(padLeft, padRight)
	collapsed := false
	c.panels = append(c.panels, &dashboard.Panel{
		ID:        id,
		Type:      "row",
		Title:     n.Props.String("title", ""),
		GridPos:   toGridPos(header),
		Collapsed: &collapsed,
		Repeat:    n.Props.String("repeat", ""),
	})

	if err := c.walkChildren(n); err != nil {
		return err
	}
	c.cursor.EndRow()
	return nil
}

// walkContainer opens a nested sub-grid, recurses, then translates every
// record produced inside it back into the parent coordinate space.
func (c *context) walkContainer(n *dashboard.Node) error {
	title := n.Props.String("title", "")
	hasWidth := n.Props.Has("width")
	hasFill := n.Props.Has("fill")
	if hasWidth && hasFill {
		return errors.New(errors.ErrCodeInvalidContainer,
			"container %q declares both width and fill", title)
	}
	if !hasWidth && !hasFill {
		return errors.New(errors.ErrCodeInvalidContainer,
			"container %q declares neither width nor fill", title)
	}

	width := c.cursor.FillWidth()
	if hasWidth {
		width = n.Props.Int("width", 0)
	}

	mark := len(c.panels)
	frame := c.cursor.EnterContainer(width)

	if err := c.walkChildren(n); err != nil {
		return err
	}

	for _, p := range c.panels[mark:] {
		r := frame.Translate(toRect(p.GridPos))
		if r.W > width {
			return errors.New(errors.ErrCodePanelOverflow,
				"panel %q (width %d) exceeds container width %d", p.Title, r.W, width)
		}
		p.GridPos = toGridPos(r)
	}

	c.cursor.ExitContainer(frame)
	return nil
}

func (c *context) addVariable(n *dashboard.Node) {
	v := dashboard.Variable(n.Props.Clone())
	if _, ok := v["query"]; !ok {
		if text := n.TextContent(); text != "" {
			v["query"] = text
		}
	}
	if _, ok := v["type"]; !ok {
		v["type"] = "query"
	}
	c.variables = append(c.variables, v)
}

// addAnnotation records an annotation. The lookup datasource is inherited
// from the document and never overridable per annotation.
func (c *context) addAnnotation(n *dashboard.Node) {
	a := dashboard.Annotation(n.Props.Clone())
	if c.datasource != nil {
		a["datasource"] = c.datasource
	}
	if _, ok := a["enable"]; !ok {
		a["enable"] = true
	}
	c.annotations = append(c.annotations, a)
}

func (c *context) allocID() int {
	id := c.nextID
	c.nextID++
	return id
}

// assemble wraps the accumulated records into the document envelope.
func (c *context) assemble(root *dashboard.Node, opts Options) *dashboard.Dashboard {
	props := root.Props

	uid := opts.UID
	if uid == "" {
		uid = props.String("uid", "")
	}
	if uid == "" {
		uid = uuid.NewString()
	}

	tags := props.Strings("tags")
	if tags == nil {
		tags = []string{}
	}
	panels := c.panels
	if panels == nil {
		panels = []*dashboard.Panel{}
	}

	d := &dashboard.Dashboard{
		ID:                   nil,
		UID:                  uid,
		Title:                props.String("title", "Dashboard"),
		Tags:                 tags,
		Editable:             props.Bool("editable", true),
		Refresh:              props.String("refresh", ""),
		Time:                 timeRange(props),
		Timezone:             props.String("timezone", "browser"),
		GraphTooltip:         dashboard.TooltipMode(props.String("tooltip", "")),
		Panels:               panels,
		SchemaVersion:        dashboard.SchemaVersion,
		FiscalYearStartMonth: props.Int("fiscalYearStartMonth", 0),
	}

	if len(c.variables) > 0 {
		d.Templating = &dashboard.Templating{List: c.variables}
	}
	if len(c.annotations) > 0 {
		d.Annotations = &dashboard.Annotations{List: c.annotations}
	}
	if len(c.links) > 0 {
		d.Links = c.links
	}
	return d
}

func timeRange(props dashboard.Props) dashboard.TimeRange {
	switch v := props["time"].(type) {
	case string:
		return dashboard.ParseTimeRange(v)
	case map[string]any:
		tr := dashboard.DefaultTimeRange
		if from, ok := v["from"].(string); ok {
			tr.From = from
		}
		if to, ok := v["to"].(string); ok {
			tr.To = to
		}
		return tr
	case dashboard.TimeRange:
		return v
	}
	return dashboard.DefaultTimeRange
}

func toGridPos(r grid.Rect) dashboard.GridPos {
	return dashboard.GridPos{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

func toRect(g dashboard.GridPos) grid.Rect {
	return grid.Rect{X: g.X, Y: g.Y, W: g.W, H: g.H}
}
