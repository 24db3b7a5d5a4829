package output

import (
	"fmt"
	"io"
	"os"

	"github.com/crewtide/crewplan/internal/material"
	"github.com/crewtide/crewplan/internal/member"
	"github.com/crewtide/crewplan/internal/plan"
)

// MaterialBoard renders materials grouped into pipeline columns, one
// section per status in pipeline order.
func MaterialBoard(w io.Writer, items []material.Material, v plan.View, reg *member.Registry) {
	if len(items) == 0 {
		fmt.Fprintln(os.Stderr, "No materials tracked.")
		return
	}

	groups := make(map[string][]material.Material)
	for _, m := range items {
		groups[m.Status] = append(groups[m.Status], m)
	}

	first := true
	for _, status := range material.Statuses() {
		group := groups[status]
		if len(group) == 0 {
			continue
		}
		if !first {
			fmt.Fprintln(w)
		}
		first = false
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s (%d)", status, len(group))))
		for _, m := range group {
			printMaterialRow(w, m, v, reg)
		}
	}
}

func printMaterialRow(w io.Writer, m material.Material, v plan.View, reg *member.Registry) {
	line := fmt.Sprintf("  #%-3d %d %s %s", m.ID, m.Quantity, m.Unit, m.Name)
	if t, ok := v.Task(m.TaskID); ok {
		line += dimStyle.Render(fmt.Sprintf("  for #%d %s", t.ID, t.Name))
	}
	line += fmt.Sprintf("  by %s", m.NeededBy.Display())
	if m.Responsible != "" {
		line += "  " + ownerStyle(reg, m.Responsible).Render(reg.Label(m.Responsible))
	}
	if m.Supplier != "" {
		line += dimStyle.Render("  from " + m.Supplier)
	}
	if m.Delivery == material.DeliveryDelivered {
		line += dimStyle.Render("  (delivery)")
	}
	fmt.Fprintln(w, line)
}
