package compile_test

import (
	"fmt"

	"github.com/dashforge/dashforge/pkg/compile"
	"github.com/dashforge/dashforge/pkg/dashboard"
)

func ExampleCompile() {
	root := dashboard.New(dashboard.KindDashboard, dashboard.Props{
		"title": "Service Health",
		"uid":   "svc-health",
	},
		dashboard.New(dashboard.KindTimeseries, dashboard.Props{
			"title": "Requests per second",
			"width": 12,
		},
			dashboard.TextNode("sum(rate(http_requests_total[5m]))"),
		),
		dashboard.New(dashboard.KindStat, dashboard.Props{
			"title": "Error rate",
			"width": 12,
		}),
	)

	doc, err := compile.Compile(root, compile.Options{})
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, p := range doc.Panels {
		fmt.Printf("%d %s %q at (%d,%d) %dx%d\n",
			p.ID, p.Type, p.Title, p.GridPos.X, p.GridPos.Y, p.GridPos.W, p.GridPos.H)
	}
	// Output:
	// 1 timeseries "Requests per second" at (0,0) 12x8
	// 2 stat "Error rate" at (12,0) 12x8
}

func ExampleRefID() {
	fmt.Println(compile.RefID(0), compile.RefID(25), compile.RefID(26), compile.RefID(27))
	// Output: A Z AA AB
}
