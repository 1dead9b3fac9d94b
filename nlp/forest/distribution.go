package forest

import (
	"fmt"
	"sort"
)

// Relation says the head of slot (U, UHead) is governed by the head of slot
// (Gov, GovHead). Gov == Root means U heads the sentence.
type Relation struct {
	U, UHead     int
	Gov, GovHead int
}

func RootRelation(u, uHead int) Relation {
	return Relation{u, uHead, Root, Root}
}

func (r Relation) IsRoot() bool {
	return r.Gov == Root
}

func (r Relation) Less(other Relation) bool {
	switch {
	case r.U != other.U:
		return r.U < other.U
	case r.UHead != other.UHead:
		return r.UHead < other.UHead
	case r.Gov != other.Gov:
		return r.Gov < other.Gov
	}
	return r.GovHead < other.GovHead
}

func (r Relation) String() string {
	if r.IsRoot() {
		return fmt.Sprintf("(%d,%d)<-ROOT", r.U, r.UHead)
	}
	return fmt.Sprintf("(%d,%d)<-(%d,%d)", r.U, r.UHead, r.Gov, r.GovHead)
}

// Distribution weighs candidate governor relations of one head slot
type Distribution map[Relation]float64

type WeightedRelation struct {
	Relation
	Weight float64
}

func (d Distribution) Add(rel Relation, weight float64) {
	d[rel] += weight
}

// Merge adds every weight of other into d
func (d Distribution) Merge(other Distribution) {
	for rel, weight := range other {
		d[rel] += weight
	}
}

// Scale returns a copy of d with every weight multiplied by factor
func (d Distribution) Scale(factor float64) Distribution {
	retval := make(Distribution, len(d))
	for rel, weight := range d {
		retval[rel] = weight * factor
	}
	return retval
}

// Entries lists d by descending weight, ties broken by relation
func (d Distribution) Entries() []WeightedRelation {
	retval := make([]WeightedRelation, 0, len(d))
	for rel, weight := range d {
		retval = append(retval, WeightedRelation{rel, weight})
	}
	sort.Slice(retval, func(i, j int) bool {
		if retval[i].Weight != retval[j].Weight {
			return retval[i].Weight > retval[j].Weight
		}
		return retval[i].Relation.Less(retval[j].Relation)
	})
	return retval
}

// Total sums the weights in a fixed order so repeated runs agree bit for bit
func (d Distribution) Total() float64 {
	var total float64
	for _, entry := range d.Entries() {
		total += entry.Weight
	}
	return total
}
