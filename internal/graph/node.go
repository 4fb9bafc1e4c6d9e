// Package graph describes audio processing graphs as plain values. A
// description says nothing about how it is run; the engine package
// realizes it.
package graph

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

type Kind string

const (
	KindConst Kind = "const"
	KindCycle Kind = "cycle"
	KindADSR  Kind = "adsr"
	KindMul   Kind = "mul"
	KindAdd   Kind = "add"
	KindMeter Kind = "meter"
)

type Node struct {
	Kind Kind

	// Key names a const whose value may change between renders without
	// replacing the running instance.
	Key   string
	Value float64

	// Name is the source reported by meter nodes.
	Name string

	Children []*Node
}

func Const(key string, v float64) *Node {
	return &Node{Kind: KindConst, Key: key, Value: v}
}

func Value(v float64) *Node {
	return &Node{Kind: KindConst, Value: v}
}

// Cycle is a sine oscillator running at freq Hz.
func Cycle(freq *Node) *Node {
	return &Node{Kind: KindCycle, Children: []*Node{freq}}
}

// ADSR is a linear envelope opened while gate is above zero.
func ADSR(attack, decay, sustain, release, gate *Node) *Node {
	return &Node{Kind: KindADSR, Children: []*Node{attack, decay, sustain, release, gate}}
}

func Mul(in ...*Node) *Node {
	return &Node{Kind: KindMul, Children: in}
}

func Add(in ...*Node) *Node {
	return &Node{Kind: KindAdd, Children: in}
}

// Meter passes in through unchanged and reports its level under name.
func Meter(name string, in *Node) *Node {
	return &Node{Kind: KindMeter, Name: name, Children: []*Node{in}}
}

// Hash returns the structural identity of n. Two nodes with the same hash
// describe the same running unit.
func (n *Node) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(n.Kind))
	h.Write([]byte{0})

	if n.Key != "" {
		h.Write([]byte(n.Key))
		return h.Sum64()
	}

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(n.Value))
	h.Write(buf[:])
	h.Write([]byte(n.Name))
	h.Write([]byte{0})

	for _, c := range n.Children {
		binary.LittleEndian.PutUint64(buf[:], c.Hash())
		h.Write(buf[:])
	}
	return h.Sum64()
}

// Walk visits n and its descendants depth first, parents before children.
func Walk(n *Node, fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		Walk(c, fn)
	}
}
