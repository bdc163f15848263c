package contentstream

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecode(t *testing.T) {
	input := []byte(`BT
/F1 24 Tf
14 TL
1 0 0 1 72 720 Tm
(Title) Tj
0 -14 Td
0 -16 TD
T*
[(Hel) -50 (lo) -250 (World)] TJ
(next) '
1 0.5 (spaced) "
/GS1 gs
0.5 g
ET`)

	ops, err := Decode(input)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	expected := []Operation{
		BeginText{},
		SetFont{Name: "F1", Size: 24},
		SetLeading{Amount: 14},
		SetTextMatrix{A: 1, B: 0, C: 0, D: 1, E: 72, F: 720},
		ShowText{Data: []byte("Title")},
		MoveText{DX: 0, DY: -14},
		MoveTextSetLeading{DX: 0, DY: -16},
		NextLine{},
		ShowTextAdjusted{Elements: []TextElement{
			{Data: []byte("Hel")},
			{Adjustment: -50, IsAdjustment: true},
			{Data: []byte("lo")},
			{Adjustment: -250, IsAdjustment: true},
			{Data: []byte("World")},
		}},
		NextLineShowText{Data: []byte("next")},
		NextLineShowTextSpaced{WordSpacing: 1, CharSpacing: 0.5, Data: []byte("spaced")},
		SetGraphicsState{Name: "GS1"},
		Other{Name: "g", Operands: []Object{Real(0.5)}},
		EndText{},
	}

	if len(ops) != len(expected) {
		t.Fatalf("expected %d operations, got %d", len(expected), len(ops))
	}
	for i := range expected {
		if !reflect.DeepEqual(ops[i], expected[i]) {
			t.Errorf("operation %d = %#v, want %#v", i, ops[i], expected[i])
		}
		if ops[i].Operator() != expected[i].Operator() {
			t.Errorf("operation %d operator = %q, want %q", i, ops[i].Operator(), expected[i].Operator())
		}
	}
}

func TestDecodeSyntaxError(t *testing.T) {
	_, err := Decode([]byte("BT (unterminated Tj ET"))
	if !errors.Is(err, ErrSyntax) {
		t.Errorf("expected ErrSyntax, got %v", err)
	}
}

// TestConvertMalformedOperands tests that operators with unusable operands
// fall back to Other instead of failing
func TestConvertMalformedOperands(t *testing.T) {
	tests := []struct {
		name string
		inst Instruction
	}{
		{"Tf without size", Instruction{Operator: "Tf", Operands: []Object{Name("F1")}}},
		{"Tf with string name", Instruction{Operator: "Tf", Operands: []Object{String("F1"), Int(12)}}},
		{"TL without operand", Instruction{Operator: "TL"}},
		{"Td with name", Instruction{Operator: "Td", Operands: []Object{Int(1), Name("x")}}},
		{"Tm short", Instruction{Operator: "Tm", Operands: []Object{Int(1), Int(0), Int(0), Int(1), Int(0)}}},
		{"Tj with number", Instruction{Operator: "Tj", Operands: []Object{Int(5)}}},
		{"TJ with string", Instruction{Operator: "TJ", Operands: []Object{String("x")}}},
		{"gs with number", Instruction{Operator: "gs", Operands: []Object{Int(1)}}},
		{"quote without string", Instruction{Operator: "'"}},
		{"double quote missing spacing", Instruction{Operator: "\"", Operands: []Object{Int(1), String("x")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := Convert(tt.inst)
			other, ok := op.(Other)
			if !ok {
				t.Fatalf("expected Other, got %T", op)
			}
			if other.Operator() != tt.inst.Operator {
				t.Errorf("operator = %q, want %q", other.Operator(), tt.inst.Operator)
			}
		})
	}
}

func TestConvertUsesTrailingOperands(t *testing.T) {
	op := Convert(Instruction{Operator: "Tf", Operands: []Object{Int(9), Name("F2"), Real(10.5)}})
	want := SetFont{Name: "F2", Size: 10.5}
	if !reflect.DeepEqual(op, want) {
		t.Errorf("Convert = %#v, want %#v", op, want)
	}
}

func TestConvertSkipsForeignTJElements(t *testing.T) {
	op := Convert(Instruction{Operator: "TJ", Operands: []Object{
		Array{String("a"), Name("junk"), Real(-120.5), Null{}, String("b")},
	}})
	want := ShowTextAdjusted{Elements: []TextElement{
		{Data: []byte("a")},
		{Adjustment: -120.5, IsAdjustment: true},
		{Data: []byte("b")},
	}}
	if !reflect.DeepEqual(op, want) {
		t.Errorf("Convert = %#v, want %#v", op, want)
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		obj  Object
		want float64
		ok   bool
	}{
		{Int(3), 3, true},
		{Real(-2.5), -2.5, true},
		{Name("x"), 0, false},
		{String("1"), 0, false},
	}
	for _, tt := range tests {
		got, ok := Number(tt.obj)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Number(%v) = %v, %v, want %v, %v", tt.obj, got, ok, tt.want, tt.ok)
		}
	}
}

func TestObjectString(t *testing.T) {
	tests := []struct {
		obj  Object
		want string
	}{
		{Null{}, "null"},
		{Bool(true), "true"},
		{Int(-4), "-4"},
		{Real(1.25), "1.25"},
		{Name("F1"), "/F1"},
		{String("hi"), `"hi"`},
		{Array{Int(1), Name("A")}, "[1 /A]"},
		{Dict{"B": Int(2), "A": Int(1)}, "<< /A 1 /B 2 >>"},
	}
	for _, tt := range tests {
		if got := tt.obj.String(); got != tt.want {
			t.Errorf("%T.String() = %q, want %q", tt.obj, got, tt.want)
		}
	}
}
