package graph

type BasicVertex int

type BasicHyperEdge struct {
	Id    int
	To    int
	Froms []int
}

type BasicHyperGraph struct {
	Vertices []BasicVertex
	Edges    []BasicHyperEdge
}

var _ Vertex = *new(BasicVertex)
var _ HyperEdge = BasicHyperEdge{}
var _ HyperGraph = &BasicHyperGraph{}

func (b BasicVertex) ID() int {
	return int(b)
}

func (e BasicHyperEdge) ID() int {
	return e.Id
}

func (e BasicHyperEdge) Head() int {
	return e.To
}

func (e BasicHyperEdge) Tails() []int {
	return e.Froms
}

func (e BasicHyperEdge) Vertices() []int {
	return append([]int{e.To}, e.Froms...)
}

func (g *BasicHyperGraph) GetVertices() []int {
	vertices := make([]int, len(g.Vertices))
	for i := range g.Vertices {
		vertices[i] = i
	}
	return vertices
}

func (g *BasicHyperGraph) GetEdges() []int {
	edges := make([]int, len(g.Edges))
	for i := range g.Edges {
		edges[i] = i
	}
	return edges
}

func (g *BasicHyperGraph) GetVertex(i int) Vertex {
	return g.Vertices[i]
}

func (g *BasicHyperGraph) GetEdge(i int) Edge {
	return g.Edges[i]
}

func (g *BasicHyperGraph) GetHyperEdge(i int) HyperEdge {
	return g.Edges[i]
}

func (g *BasicHyperGraph) NumberOfVertices() int {
	return len(g.Vertices)
}

func (g *BasicHyperGraph) NumberOfEdges() int {
	return len(g.Edges)
}
