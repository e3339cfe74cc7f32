// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pdfwrite

import "seehuhn.de/go/dag"

// Stage names one step of the fixed finishing order. Forward references
// (a page pointing at a destination, a destination pointing at a page,
// an outline item pointing at both) only resolve if every producer of a
// reference runs before every consumer of it; the order below is the
// one fixed point that satisfies all of them at once.
type Stage int

const (
	stageOutputIntents Stage = iota
	stagePageLabels
	stageOutline
	stageFonts
	stagePages
	stagePageTree
	stageEmbeddedPDFs
	stageDestinations
	stageTagTree
	stageAssemble

	stageCount
)

// Exported aliases let subsystems built on top of Context (document,
// tagging, pagetree) name the stage they hook into without reaching past
// the package boundary into the unexported constants above.
const (
	StageOutputIntents = stageOutputIntents
	StagePageLabels    = stagePageLabels
	StageOutline       = stageOutline
	StageFonts         = stageFonts
	StagePages         = stagePages
	StagePageTree      = stagePageTree
	StageEmbeddedPDFs  = stageEmbeddedPDFs
	StageDestinations  = stageDestinations
	StageTagTree       = stageTagTree
	StageAssemble      = stageAssemble
)

func (s Stage) String() string {
	switch s {
	case stageOutputIntents:
		return "output-intents"
	case stagePageLabels:
		return "page-labels"
	case stageOutline:
		return "outline"
	case stageFonts:
		return "fonts"
	case stagePages:
		return "pages"
	case stagePageTree:
		return "page-tree"
	case stageEmbeddedPDFs:
		return "embedded-pdfs"
	case stageDestinations:
		return "destinations"
	case stageTagTree:
		return "tag-tree"
	case stageAssemble:
		return "assemble"
	default:
		return "unknown-stage"
	}
}

// stageEdge is the single kind of edge in the stage dependency graph:
// "advance to the next stage". The graph is a straight line from
// stageOutputIntents to stageAssemble; it exists so the finishing order
// is expressed as data (checkable, extendable to a real DAG if a stage
// ever gains more than one predecessor) rather than a bare literal
// slice, the same way font/cid width-run encoding runs
// dag.ShortestPath over a graph of candidate W-array encodings instead
// of hand-picking one.
type stageEdge struct{}

type stageGraph struct{}

func (stageGraph) AppendEdges(ee []stageEdge, v int) []stageEdge {
	if v >= int(stageAssemble) {
		return ee
	}
	return append(ee, stageEdge{})
}

func (stageGraph) Length(v int, e stageEdge) int { return 1 }

func (stageGraph) To(v int, e stageEdge) int { return v + 1 }

// stageOrder returns the ten stages in the fixed order §4.1 mandates,
// computed via dag.ShortestPath over the linear stage graph rather than
// a literal slice.
func stageOrder() ([]Stage, error) {
	path, err := dag.ShortestPath[stageEdge, int](stageGraph{}, int(stageAssemble))
	if err != nil {
		return nil, err
	}
	order := make([]Stage, 0, stageCount)
	v := int(stageOutputIntents)
	order = append(order, Stage(v))
	for range path {
		v++
		order = append(order, Stage(v))
	}
	return order, nil
}
