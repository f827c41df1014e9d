package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/markcheck/pkg/checks"
	"github.com/aretw0/markcheck/pkg/domain"
	"github.com/aretw0/markcheck/pkg/script"
)

// Overlay contains evaluation data to visualize on the graph.
type Overlay struct {
	// Visited holds the steps that ran, as [chain, step] pairs.
	Visited [][2]int
	// Failed is the step that stopped the evaluation, if any.
	Failed *[2]int
}

// OverlayFromEvents builds an overlay from the step events of one evaluation.
func OverlayFromEvents(events []domain.StepEvent) *Overlay {
	o := &Overlay{}
	for _, e := range events {
		pos := [2]int{e.Chain, e.Step}
		o.Visited = append(o.Visited, pos)
		if e.Outcome != domain.OutcomeContinue {
			o.Failed = &pos
		}
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of a check script. Every chain
// is a path leaving the shared root state. It applies semantic styling:
// - Root: ((Circle))
// - Content checks (has_*): [/Parallelogram/]
// - Structural checks: [Rectangle]
// It also applies overlay styles (Visited/Failed) if provided.
func GenerateMermaid(s *script.Script, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	fmt.Fprintf(&sb, "    root((\"%s\"))\n", domain.RootPosition)

	for ci, chain := range s.Chains {
		prev := "root"
		for si, step := range chain {
			id := nodeID(ci, si)

			opener, closer := "[", "]"
			if isContentCheck(step.Check) {
				opener, closer = "[/", "/]"
			}
			fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, stepLabel(step), closer)

			if si == 0 {
				fmt.Fprintf(&sb, "    %s -- \"chain %d\" --> %s\n", prev, ci+1, id)
			} else {
				fmt.Fprintf(&sb, "    %s --> %s\n", prev, id)
			}
			prev = id
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#ffcdd2,stroke:#c62828,stroke-width:4px,color:#000;\n")

		seen := make(map[[2]int]bool)
		for _, pos := range overlay.Visited {
			if seen[pos] || (overlay.Failed != nil && pos == *overlay.Failed) {
				continue
			}
			seen[pos] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", nodeID(pos[0], pos[1]))
		}
		if overlay.Failed != nil {
			fmt.Fprintf(&sb, "    class %s failed;\n", nodeID(overlay.Failed[0], overlay.Failed[1]))
		}
	}

	return sb.String()
}

func nodeID(chain, step int) string {
	return fmt.Sprintf("c%d_s%d", chain+1, step+1)
}

func isContentCheck(name string) bool {
	switch name {
	case checks.NameHasCode, checks.NameHasEqualText, checks.NameHasEqualAttr:
		return true
	}
	return false
}

// stepLabel renders a step the way it is written in a script, with double
// quotes swapped for single ones so the label stays valid Mermaid.
func stepLabel(step script.Step) string {
	label := step.Check
	switch {
	case len(step.Args) > 0:
		keys := make([]string, 0, len(step.Args))
		for k := range step.Args {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s: %v", k, step.Args[k])
		}
		label += ": {" + strings.Join(parts, ", ") + "}"
	case step.Arg != nil:
		label += fmt.Sprintf(": %v", step.Arg)
	}
	return strings.ReplaceAll(label, "\"", "'")
}
