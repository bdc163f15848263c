package contentstream

// Operation is a content stream instruction that matters for text
// extraction. Instructions with any other operator, or with operands that
// do not fit their operator, are returned as Other.
type Operation interface {
	Operator() string
}

// BeginText is BT.
type BeginText struct{}

// EndText is ET.
type EndText struct{}

// SetLeading is TL.
type SetLeading struct {
	Amount float64
}

// SetFont is Tf. Name is the font's key in the page's /Font resources.
type SetFont struct {
	Name string
	Size float64
}

// SetGraphicsState is gs. Name is the key in the page's /ExtGState resources.
type SetGraphicsState struct {
	Name string
}

// MoveText is Td.
type MoveText struct {
	DX, DY float64
}

// MoveTextSetLeading is TD, which also sets the leading to -DY.
type MoveTextSetLeading struct {
	DX, DY float64
}

// SetTextMatrix is Tm.
type SetTextMatrix struct {
	A, B, C, D, E, F float64
}

// NextLine is T*.
type NextLine struct{}

// ShowText is Tj.
type ShowText struct {
	Data []byte
}

// TextElement is one element of a TJ array: a string, or a position
// adjustment in thousandths of text space when IsAdjustment is set.
type TextElement struct {
	Data         []byte
	Adjustment   float64
	IsAdjustment bool
}

// ShowTextAdjusted is TJ.
type ShowTextAdjusted struct {
	Elements []TextElement
}

// NextLineShowText is ', equivalent to T* followed by Tj.
type NextLineShowText struct {
	Data []byte
}

// NextLineShowTextSpaced is ", which sets word and character spacing and
// then behaves like '.
type NextLineShowTextSpaced struct {
	WordSpacing float64
	CharSpacing float64
	Data        []byte
}

// Other is any instruction not listed above.
type Other struct {
	Name     string
	Operands []Object
}

func (BeginText) Operator() string              { return "BT" }
func (EndText) Operator() string                { return "ET" }
func (SetLeading) Operator() string             { return "TL" }
func (SetFont) Operator() string                { return "Tf" }
func (SetGraphicsState) Operator() string       { return "gs" }
func (MoveText) Operator() string               { return "Td" }
func (MoveTextSetLeading) Operator() string     { return "TD" }
func (SetTextMatrix) Operator() string          { return "Tm" }
func (NextLine) Operator() string               { return "T*" }
func (ShowText) Operator() string               { return "Tj" }
func (ShowTextAdjusted) Operator() string       { return "TJ" }
func (NextLineShowText) Operator() string       { return "'" }
func (NextLineShowTextSpaced) Operator() string { return "\"" }
func (o Other) Operator() string                { return o.Name }

// Decode parses a content stream and converts its instructions to
// operations.
func Decode(data []byte) ([]Operation, error) {
	instructions, err := NewParser(data).Parse()
	if err != nil {
		return nil, err
	}
	ops := make([]Operation, len(instructions))
	for i, inst := range instructions {
		ops[i] = Convert(inst)
	}
	return ops, nil
}

// Convert turns a single instruction into an operation. Extra leading
// operands are ignored; missing or mistyped operands yield Other.
func Convert(inst Instruction) Operation {
	other := Other{Name: inst.Operator, Operands: inst.Operands}
	args := inst.Operands

	switch inst.Operator {
	case "BT":
		return BeginText{}
	case "ET":
		return EndText{}
	case "T*":
		return NextLine{}

	case "TL":
		if v, ok := numbers(args, 1); ok {
			return SetLeading{Amount: v[0]}
		}

	case "Tf":
		if len(args) >= 2 {
			name, ok := args[len(args)-2].(Name)
			size, isNum := Number(args[len(args)-1])
			if ok && isNum {
				return SetFont{Name: string(name), Size: size}
			}
		}

	case "gs":
		if len(args) >= 1 {
			if name, ok := args[len(args)-1].(Name); ok {
				return SetGraphicsState{Name: string(name)}
			}
		}

	case "Td":
		if v, ok := numbers(args, 2); ok {
			return MoveText{DX: v[0], DY: v[1]}
		}

	case "TD":
		if v, ok := numbers(args, 2); ok {
			return MoveTextSetLeading{DX: v[0], DY: v[1]}
		}

	case "Tm":
		if v, ok := numbers(args, 6); ok {
			return SetTextMatrix{A: v[0], B: v[1], C: v[2], D: v[3], E: v[4], F: v[5]}
		}

	case "Tj":
		if s, ok := lastString(args); ok {
			return ShowText{Data: s}
		}

	case "'":
		if s, ok := lastString(args); ok {
			return NextLineShowText{Data: s}
		}

	case "\"":
		if len(args) >= 3 {
			s, ok := args[len(args)-1].(String)
			v, isNum := numbers(args[:len(args)-1], 2)
			if ok && isNum {
				return NextLineShowTextSpaced{WordSpacing: v[0], CharSpacing: v[1], Data: s}
			}
		}

	case "TJ":
		if len(args) >= 1 {
			if arr, ok := args[len(args)-1].(Array); ok {
				return ShowTextAdjusted{Elements: textElements(arr)}
			}
		}
	}

	return other
}

// numbers returns the last n operands as float64 values.
func numbers(args []Object, n int) ([]float64, bool) {
	if len(args) < n {
		return nil, false
	}
	out := make([]float64, n)
	for i, obj := range args[len(args)-n:] {
		v, ok := Number(obj)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func lastString(args []Object) ([]byte, bool) {
	if len(args) == 0 {
		return nil, false
	}
	s, ok := args[len(args)-1].(String)
	return s, ok
}

// textElements keeps the strings and numbers of a TJ array in order. Other
// element types are not allowed there and are skipped.
func textElements(arr Array) []TextElement {
	elems := make([]TextElement, 0, len(arr))
	for _, obj := range arr {
		switch v := obj.(type) {
		case String:
			elems = append(elems, TextElement{Data: v})
		case Int, Real:
			n, _ := Number(v)
			elems = append(elems, TextElement{Adjustment: n, IsAdjustment: true})
		}
	}
	return elems
}
