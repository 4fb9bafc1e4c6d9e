package graph

import "testing"

func TestKeyedConstHashIgnoresValue(t *testing.T) {
	a := Const("gain", 0.5)
	b := Const("gain", 0.9)
	if a.Hash() != b.Hash() {
		t.Fatal("keyed consts with the same key should share an identity")
	}

	if Const("gain", 0.5).Hash() == Const("gate:0", 0.5).Hash() {
		t.Fatal("different keys should not collide")
	}
}

func TestUnkeyedConstHashTracksValue(t *testing.T) {
	if Value(440).Hash() == Value(441).Hash() {
		t.Fatal("unkeyed values should hash by value")
	}
	if Value(440).Hash() != Value(440).Hash() {
		t.Fatal("equal values should hash equally")
	}
}

func TestParentHashStableAcrossKeyedUpdates(t *testing.T) {
	env := func(gate float64) *Node {
		return ADSR(Const("a", 0.1), Const("d", 0.2), Const("s", 0.7), Const("r", 0.3), Const("gate", gate))
	}
	if env(0).Hash() != env(1).Hash() {
		t.Fatal("envelope identity should not depend on keyed gate value")
	}

	v1 := Mul(env(1), Cycle(Value(440)))
	v2 := Mul(env(1), Cycle(Value(220)))
	if v1.Hash() == v2.Hash() {
		t.Fatal("voice identity should change with oscillator frequency")
	}
}

func TestChildOrderMatters(t *testing.T) {
	a, b := Value(1), Value(2)
	if Add(a, b).Hash() == Add(b, a).Hash() {
		t.Fatal("child order should be part of the identity")
	}
	if Add(a, b).Hash() == Mul(a, b).Hash() {
		t.Fatal("kind should be part of the identity")
	}
}

func TestMeterName(t *testing.T) {
	in := Value(1)
	if Meter("meter:left", in).Hash() == Meter("meter:right", in).Hash() {
		t.Fatal("meter names should be part of the identity")
	}
}

func TestWalk(t *testing.T) {
	root := Meter("m", Mul(Value(1), Add(Value(2), Value(3))))

	var kinds []Kind
	Walk(root, func(n *Node) {
		kinds = append(kinds, n.Kind)
	})

	want := []Kind{KindMeter, KindMul, KindConst, KindAdd, KindConst, KindConst}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d nodes, got %d", len(want), len(kinds))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("node %d: expected %s, got %s", i, want[i], kinds[i])
		}
	}
}
