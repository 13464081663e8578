package imagevector

import "testing"

func TestParsePathDataBasicShapes(t *testing.T) {
	cmds, err := parsePathData("M1,2L3,4Z")
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds) != 3 {
		t.Fatalf("expected 3 commands, got %d: %+v", len(cmds), cmds)
	}
	if cmds[0].Kind != CommandMoveTo || cmds[0].P1 != (Point{1, 2}) {
		t.Fatalf("unexpected moveto: %+v", cmds[0])
	}
	if cmds[1].Kind != CommandLineTo || cmds[1].P1 != (Point{3, 4}) {
		t.Fatalf("unexpected lineto: %+v", cmds[1])
	}
	if cmds[2].Kind != CommandClose {
		t.Fatalf("unexpected close: %+v", cmds[2])
	}
}

func TestParsePathDataRelativeCommands(t *testing.T) {
	cmds, err := parsePathData("m10,10l5,5")
	if err != nil {
		t.Fatal(err)
	}
	if cmds[1].P1 != (Point{15, 15}) {
		t.Fatalf("expected relative lineto to resolve to (15,15), got %+v", cmds[1].P1)
	}
}

func TestParsePathDataImplicitLineToAfterMoveTo(t *testing.T) {
	cmds, err := parsePathData("M0,0 1,1 2,2")
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds) != 3 {
		t.Fatalf("expected implicit linetos, got %d commands: %+v", len(cmds), cmds)
	}
	if cmds[1].Kind != CommandLineTo || cmds[2].Kind != CommandLineTo {
		t.Fatalf("expected subsequent coordinate pairs to become linetos: %+v", cmds)
	}
}

func TestParsePathDataCompactNumbers(t *testing.T) {
	toks := tokenizePathData("M1.5-2.3.4")
	want := []string{"M", "1.5", "-2.3", ".4"}
	if len(toks) != len(want) {
		t.Fatalf("got %v, want %v", toks, want)
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Fatalf("got %v, want %v", toks, want)
		}
	}
}

func TestParsePathDataCubicCurve(t *testing.T) {
	cmds, err := parsePathData("M0,0C1,1 2,2 3,3")
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds) != 2 || cmds[1].Kind != CommandCurveTo {
		t.Fatalf("expected moveto+curveto, got %+v", cmds)
	}
	if cmds[1].P3 != (Point{3, 3}) {
		t.Fatalf("unexpected curve endpoint: %+v", cmds[1].P3)
	}
}
