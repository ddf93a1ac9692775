package knapp

import (
	"fmt"
	"io"
)

// NodeEvent describes one node at the moment it entered the tree.
type NodeEvent struct {
	Depth           int
	Variable        int
	Value           int
	Feasibility     Feasibility
	Objective       float64
	IntegerFeasible bool
}

// StatusEvent describes the global search status at the end of one
// driver iteration.
type StatusEvent struct {
	Iteration  int
	UpperBound float64
	LowerBound float64
	Gap        float64
	Nodes      int
}

// Tracer observes the search as read-only data. Node and status reports
// are separate variants dispatched through separate methods.
type Tracer interface {
	TraceNode(e NodeEvent)
	TraceStatus(e StatusEvent)
}

type DefaultTracer struct{}

func (DefaultTracer) TraceNode(_ NodeEvent) {
}

func (DefaultTracer) TraceStatus(_ StatusEvent) {
}

// LoggingTracer writes a human-readable line per event.
type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) TraceNode(e NodeEvent) {
	if e.Variable == 0 {
		fmt.Fprintf(t.Writer, "node root: %s objective=%g integer=%t\n",
			e.Feasibility, e.Objective, e.IntegerFeasible)
		return
	}
	fmt.Fprintf(t.Writer, "node depth=%d x%d=%d: %s objective=%g integer=%t\n",
		e.Depth, e.Variable, e.Value, e.Feasibility, e.Objective, e.IntegerFeasible)
}

func (t LoggingTracer) TraceStatus(e StatusEvent) {
	fmt.Fprintf(t.Writer, "status iteration=%d nodes=%d upper=%g lower=%g gap=%g\n",
		e.Iteration, e.Nodes, e.UpperBound, e.LowerBound, e.Gap)
}
