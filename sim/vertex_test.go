package sim

import "testing"

func TestVertex_String(t *testing.T) {
	tests := []struct {
		v    Vertex
		want string
	}{
		{A1, "a1"}, {A2, "a2"}, {B1, "b1"}, {B2, "b2"}, {C1, "c1"}, {C2, "c2"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestVertex_Valid(t *testing.T) {
	for v := Vertex(0); v < NumVertexTypes; v++ {
		if !v.Valid() {
			t.Errorf("Vertex(%d).Valid() = false, want true", v)
		}
	}
	if Vertex(6).Valid() {
		t.Error("Vertex(6).Valid() = true, want false")
	}
}

func TestVertex_ContributesHeight(t *testing.T) {
	// a1, b1, c2 contribute +1 to running row height.
	contributing := map[Vertex]bool{A1: true, A2: false, B1: true, B2: false, C1: false, C2: true}
	for v, want := range contributing {
		if got := v.contributesHeight(); got != want {
			t.Errorf("%s.contributesHeight() = %v, want %v", v, got, want)
		}
	}
}

func TestVertex_IsCDensityType(t *testing.T) {
	cTypes := map[Vertex]bool{A1: false, A2: false, B1: false, B2: false, C1: true, C2: true}
	for v, want := range cTypes {
		if got := v.IsCDensityType(); got != want {
			t.Errorf("%s.IsCDensityType() = %v, want %v", v, got, want)
		}
	}
}

func TestRelabel_UpTables(t *testing.T) {
	tests := []struct {
		m    relabelMap
		pre  Vertex
		post Vertex
	}{
		{upBaseRelabel, A1, C1},
		{upBaseRelabel, C2, A2},
		{upUpperRightRelabel, A2, C1},
		{upUpperRightRelabel, C2, A1},
		{upRightRelabel, B2, C2},
		{upRightRelabel, C1, B1},
		{upUpRelabel, B1, C2},
		{upUpRelabel, C1, B2},
	}
	for _, tt := range tests {
		got, ok := relabel(tt.m, tt.pre)
		if !ok || got != tt.post {
			t.Errorf("relabel(%v, %s) = (%s, %v), want (%s, true)", tt.m, tt.pre, got, ok, tt.post)
		}
	}
}

func TestRelabel_DownTables(t *testing.T) {
	tests := []struct {
		m    relabelMap
		pre  Vertex
		post Vertex
	}{
		{downBaseRelabel, C1, A2},
		{downBaseRelabel, A1, C2},
		{downLowerLeftRelabel, C1, A1},
		{downLowerLeftRelabel, A2, C2},
		{downLeftRelabel, C2, B1},
		{downLeftRelabel, B2, C1},
		{downDownRelabel, C2, B2},
		{downDownRelabel, B1, C1},
	}
	for _, tt := range tests {
		got, ok := relabel(tt.m, tt.pre)
		if !ok || got != tt.post {
			t.Errorf("relabel(%v, %s) = (%s, %v), want (%s, true)", tt.m, tt.pre, got, ok, tt.post)
		}
	}
}

func TestRelabel_UnknownPreTypeNotOK(t *testing.T) {
	if _, ok := relabel(upBaseRelabel, B1); ok {
		t.Error("relabel(upBaseRelabel, B1) should not be present in the table")
	}
}
