package graph

type Vertex interface {
	ID() int
}

type Edge interface {
	Vertices() []int
	ID() int
}

// HyperEdge connects a head vertex to an ordered list of tail vertices;
// in a parse forest the head is the parent constituent and the tails its
// children
type HyperEdge interface {
	Edge
	Head() int
	Tails() []int
}

type Graph interface {
	GetVertices() []int
	GetEdges() []int
	GetVertex(int) Vertex
	GetEdge(int) Edge
	NumberOfVertices() int
	NumberOfEdges() int
}

type HyperGraph interface {
	Graph
	GetHyperEdge(int) HyperEdge
}
