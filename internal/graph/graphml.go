package graph

import (
	"encoding/xml"
	"fmt"
	"io"
)

// graphMLNamespace is the GraphML schema namespace written to the
// root element. Readers (networkx, gephi, yEd) expect it.
const graphMLNamespace = "http://graphml.graphdrawing.org/xmlns"

// GraphML document structure. Only the structural subset is modeled:
// nodes carry their URL as the id attribute, edges carry source and
// target ids, and no data keys exist.
type graphMLFile struct {
	XMLName xml.Name     `xml:"graphml"`
	Xmlns   string       `xml:"xmlns,attr"`
	Graph   graphMLGraph `xml:"graph"`
}

type graphMLGraph struct {
	ID          string        `xml:"id,attr"`
	EdgeDefault string        `xml:"edgedefault,attr"`
	Nodes       []graphMLNode `xml:"node"`
	Edges       []graphMLEdge `xml:"edge"`
}

type graphMLNode struct {
	ID string `xml:"id,attr"`
}

type graphMLEdge struct {
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

// EncodeGraphML writes the graph to w in GraphML form.
// Nodes and edges are emitted in sorted order so output is stable
// across runs with identical graphs.
func EncodeGraphML(g *Graph, w io.Writer) error {
	doc := graphMLFile{
		Xmlns: graphMLNamespace,
		Graph: graphMLGraph{
			ID:          "G",
			EdgeDefault: "directed",
		},
	}
	for _, url := range g.Nodes() {
		doc.Graph.Nodes = append(doc.Graph.Nodes, graphMLNode{ID: url})
	}
	for _, e := range g.Edges() {
		doc.Graph.Edges = append(doc.Graph.Edges, graphMLEdge{Source: e.Source, Target: e.Target})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write xml header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode graphml: %w", err)
	}
	return enc.Close()
}

// DecodeGraphML reads a GraphML document from r and rebuilds the
// directed graph. Unknown elements and data keys are ignored, so
// files written by other tools load as long as they carry node ids
// and edge endpoints.
func DecodeGraphML(r io.Reader) (*Graph, error) {
	var doc graphMLFile
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode graphml: %w", err)
	}

	g := New()
	for _, n := range doc.Graph.Nodes {
		g.AddNode(n.ID)
	}
	for _, e := range doc.Graph.Edges {
		if e.Source == "" || e.Target == "" {
			return nil, fmt.Errorf("graphml edge missing endpoint: %+v", e)
		}
		g.AddEdge(e.Source, e.Target)
	}
	return g, nil
}
