package dashboard

import (
	"encoding/json"

	"github.com/dashforge/dashforge/pkg/normalize"
)

// SchemaVersion is the schema marker stamped on every compiled document.
// It tracks the dashboarding tool's schema revision the compiler targets.
const SchemaVersion = 39

// GridPos is a rectangle in grid units. The grid is 24 units wide; y grows
// downward. Invariants: x >= 0, x+w <= 24 (or the enclosing container
// width), w > 0, h > 0.
type GridPos struct {
	H int `json:"h"`
	W int `json:"w"`
	X int `json:"x"`
	Y int `json:"y"`
}

// FieldConfig carries per-panel field defaults and overrides. The inner
// shapes are loosely typed: they are assembled from normalized shorthand
// values and resolved defaults, then serialized as-is.
type FieldConfig struct {
	Defaults  map[string]any   `json:"defaults"`
	Overrides []map[string]any `json:"overrides"`
}

// Target is one query target of a panel. The "refId" key holds the short
// letter code (A, B, ..., AA, ...) identifying the target.
type Target map[string]any

// Side-entity records. Each is carried verbatim from the authored node
// props; the compiler only fills in inherited or derived keys (variable
// query text, annotation datasource).
type (
	Variable   map[string]any
	Annotation map[string]any
	Link       map[string]any
)

// Templating wraps the variable list in the envelope shape the target
// schema expects.
type Templating struct {
	List []Variable `json:"list"`
}

// Annotations wraps the annotation list.
type Annotations struct {
	List []Annotation `json:"list"`
}

// Panel is one emitted output record: a visual panel or the structural
// header record of a row. Records are created in visitation order with
// sequential ids starting at 1 and never mutated afterwards, except by
// the raw-merge override applied during serialization.
type Panel struct {
	ID              int              `json:"id"`
	Type            string           `json:"type"`
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	GridPos         GridPos          `json:"gridPos"`
	Datasource      any              `json:"datasource,omitempty"`
	Targets         []Target         `json:"targets,omitempty"`
	FieldConfig     *FieldConfig     `json:"fieldConfig,omitempty"`
	Options         map[string]any   `json:"options,omitempty"`
	Transformations []map[string]any `json:"transformations,omitempty"`
	Repeat          string           `json:"repeat,omitempty"`
	RepeatDirection string           `json:"repeatDirection,omitempty"`
	Collapsed       *bool            `json:"collapsed,omitempty"` // rows only
	PluginVersion   string           `json:"pluginVersion,omitempty"`

	raw map[string]any
}

// MergeRaw attaches a raw override object. It is deep-merged over the
// fully built record during serialization, so it can override anything
// including computed fields. The merge happens on the loosely typed JSON
// view, never on the struct itself.
func (p *Panel) MergeRaw(override map[string]any) {
	p.raw = override
}

// MarshalJSON serializes the panel, applying the raw override on the
// serialized view when one is attached.
func (p *Panel) MarshalJSON() ([]byte, error) {
	type alias Panel
	data, err := json.Marshal((*alias)(p))
	if err != nil || len(p.raw) == 0 {
		return data, err
	}
	var view map[string]any
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, err
	}
	normalize.DeepMerge(view, p.raw)
	return json.Marshal(view)
}

// Dashboard is the compiled document envelope.
type Dashboard struct {
	ID                   any          `json:"id"`
	UID                  string       `json:"uid,omitempty"`
	Title                string       `json:"title"`
	Tags                 []string     `json:"tags"`
	Editable             bool         `json:"editable"`
	Refresh              string       `json:"refresh,omitempty"`
	Time                 TimeRange    `json:"time"`
	Timezone             string       `json:"timezone"`
	GraphTooltip         int          `json:"graphTooltipMode"`
	Panels               []*Panel     `json:"panels"`
	Templating           *Templating  `json:"templating,omitempty"`
	Annotations          *Annotations `json:"annotations,omitempty"`
	Links                []Link       `json:"links,omitempty"`
	SchemaVersion        int          `json:"schemaVersion"`
	FiscalYearStartMonth int          `json:"fiscalYearStartMonth"`
}

// Marshal serializes the document. Pretty-printing is a pure formatting
// switch with no semantic effect.
func (d *Dashboard) Marshal(pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(d, "", "  ")
	}
	return json.Marshal(d)
}
