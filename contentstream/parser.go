package contentstream

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// ErrSyntax is wrapped by every error the parser returns.
var ErrSyntax = errors.New("content stream syntax error")

// SyntaxError reports malformed content stream data and where it was found.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("content stream: %s at position %d", e.Msg, e.Pos)
}

// Unwrap lets errors.Is match ErrSyntax.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// Instruction is a single content stream operator with the operands that
// precede it.
type Instruction struct {
	Operator string   // The operator (e.g., "Tj", "Tm", "q")
	Operands []Object // The operands
}

// Parser parses PDF content streams into a sequence of instructions.
type Parser struct {
	data     []byte
	pos      int
	ops      []Instruction
	operands []Object
}

// NewParser returns a parser over data.
func NewParser(data []byte) *Parser {
	return &Parser{
		data: data,
		ops:  make([]Instruction, 0),
	}
}

// Parse parses the content stream and returns all instructions in order.
// Operands left over after the last operator are discarded.
func (p *Parser) Parse() ([]Instruction, error) {
	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			break
		}
		if err := p.parseNext(); err != nil {
			return nil, err
		}
	}
	return p.ops, nil
}

// parseNext reads one token. Operands are collected until an operator
// closes the instruction.
func (p *Parser) parseNext() error {
	c := p.data[p.pos]
	if isLetter(c) || c == '\'' || c == '"' {
		return p.parseOperator()
	}

	operand, err := p.parseOperand()
	if err != nil {
		return err
	}
	p.operands = append(p.operands, operand)
	return nil
}

// parseOperator reads an operator token and records an instruction with the
// current operands. The keywords true, false and null are operands, not
// operators.
func (p *Parser) parseOperator() error {
	start := p.pos
	operator := p.readOperatorToken()

	switch operator {
	case "true":
		p.operands = append(p.operands, Bool(true))
		return nil
	case "false":
		p.operands = append(p.operands, Bool(false))
		return nil
	case "null":
		p.operands = append(p.operands, Null{})
		return nil
	case "BI":
		return p.parseInlineImage(start)
	}

	p.emit(operator)
	return nil
}

func (p *Parser) readOperatorToken() string {
	start := p.pos
	c := p.data[p.pos]
	p.pos++
	if c == '\'' || c == '"' {
		return string(c)
	}
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if !isLetter(c) && !isDigit(c) && c != '*' {
			break
		}
		p.pos++
	}
	return string(p.data[start:p.pos])
}

func (p *Parser) emit(operator string) {
	op := Instruction{
		Operator: operator,
		Operands: make([]Object, len(p.operands)),
	}
	copy(op.Operands, p.operands)
	p.ops = append(p.ops, op)
	p.operands = p.operands[:0]
}

// parseInlineImage reads the key/value pairs of a BI ... ID ... EI block and
// skips over the image data. The block is recorded as a single BI
// instruction whose operand is the parameter dictionary.
func (p *Parser) parseInlineImage(start int) error {
	params := make(Dict)
	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return &SyntaxError{Pos: start, Msg: "unterminated inline image"}
		}
		if p.data[p.pos] != '/' {
			break
		}
		key := p.parseName()
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			return &SyntaxError{Pos: start, Msg: "unterminated inline image"}
		}
		value, err := p.parseOperand()
		if err != nil {
			return err
		}
		params[string(key)] = value
	}

	if !bytes.HasPrefix(p.data[p.pos:], []byte("ID")) {
		return &SyntaxError{Pos: p.pos, Msg: "expected ID in inline image"}
	}
	p.pos += 2
	// A single whitespace byte separates ID from the data.
	if p.pos < len(p.data) && isWhitespace(p.data[p.pos]) {
		p.pos++
	}

	for i := p.pos; i+1 < len(p.data); i++ {
		if p.data[i] != 'E' || p.data[i+1] != 'I' {
			continue
		}
		if i > 0 && !isWhitespace(p.data[i-1]) {
			continue
		}
		if i+2 < len(p.data) && !isWhitespace(p.data[i+2]) && !isDelimiter(p.data[i+2]) {
			continue
		}
		p.pos = i + 2
		p.operands = append(p.operands, params)
		p.emit("BI")
		return nil
	}
	return &SyntaxError{Pos: start, Msg: "inline image without EI"}
}

// parseOperand reads one operand of any type.
func (p *Parser) parseOperand() (Object, error) {
	p.skipWhitespace()
	if p.pos >= len(p.data) {
		return nil, &SyntaxError{Pos: p.pos, Msg: "unexpected end of stream"}
	}

	c := p.data[p.pos]
	switch {
	case c == '-' || c == '+' || c == '.' || isDigit(c):
		return p.parseNumber()
	case c == '(':
		return p.parseString()
	case c == '<' && p.pos+1 < len(p.data) && p.data[p.pos+1] == '<':
		return p.parseDict()
	case c == '<':
		return p.parseHexString()
	case c == '/':
		return p.parseName(), nil
	case c == '[':
		return p.parseArray()
	case isLetter(c):
		start := p.pos
		switch token := p.readOperatorToken(); token {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		case "null":
			return Null{}, nil
		default:
			return nil, &SyntaxError{Pos: start, Msg: fmt.Sprintf("unexpected keyword %q", token)}
		}
	}

	return nil, &SyntaxError{Pos: p.pos, Msg: fmt.Sprintf("unexpected character %q", c)}
}

// parseNumber reads an Int or a Real.
func (p *Parser) parseNumber() (Object, error) {
	start := p.pos
	hasDecimal := false

	if p.data[p.pos] == '+' || p.data[p.pos] == '-' {
		p.pos++
	}

	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isDigit(c) {
			p.pos++
		} else if c == '.' && !hasDecimal {
			hasDecimal = true
			p.pos++
		} else {
			break
		}
	}

	numStr := string(p.data[start:p.pos])

	if hasDecimal {
		val, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			return nil, &SyntaxError{Pos: start, Msg: fmt.Sprintf("invalid real number %q", numStr)}
		}
		return Real(val), nil
	}

	val, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return nil, &SyntaxError{Pos: start, Msg: fmt.Sprintf("invalid integer %q", numStr)}
	}
	return Int(val), nil
}

// parseString reads a literal string, resolving escapes and nested parentheses.
func (p *Parser) parseString() (Object, error) {
	start := p.pos
	p.pos++ // skip '('

	var result bytes.Buffer
	depth := 1

	for p.pos < len(p.data) && depth > 0 {
		c := p.data[p.pos]

		if c == '\\' && p.pos+1 < len(p.data) {
			p.pos++
			next := p.data[p.pos]
			switch next {
			case 'n':
				result.WriteByte('\n')
				p.pos++
			case 'r':
				result.WriteByte('\r')
				p.pos++
			case 't':
				result.WriteByte('\t')
				p.pos++
			case 'b':
				result.WriteByte('\b')
				p.pos++
			case 'f':
				result.WriteByte('\f')
				p.pos++
			case '(', ')', '\\':
				result.WriteByte(next)
				p.pos++
			case '\r':
				// Line continuation
				p.pos++
				if p.pos < len(p.data) && p.data[p.pos] == '\n' {
					p.pos++
				}
			case '\n':
				p.pos++
			case '0', '1', '2', '3', '4', '5', '6', '7':
				// \ddd with one to three octal digits, high-order overflow ignored
				octalVal := int(next - '0')
				p.pos++
				for i := 0; i < 2 && p.pos < len(p.data); i++ {
					digit := p.data[p.pos]
					if digit < '0' || digit > '7' {
						break
					}
					octalVal = octalVal*8 + int(digit-'0')
					p.pos++
				}
				result.WriteByte(byte(octalVal & 0xFF))
			default:
				// Unknown escape: the backslash is ignored
				result.WriteByte(next)
				p.pos++
			}
			continue
		}

		switch c {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth > 0 {
			result.WriteByte(c)
		}
		p.pos++
	}

	if depth != 0 {
		return nil, &SyntaxError{Pos: start, Msg: "unclosed string"}
	}

	return stringObject(&result), nil
}

// parseHexString parses a hexadecimal string <...>. An odd final digit is
// treated as if followed by 0.
func (p *Parser) parseHexString() (Object, error) {
	start := p.pos
	p.pos++ // skip '<'

	var result bytes.Buffer
	var pending byte
	havePending := false

	for {
		if p.pos >= len(p.data) {
			return nil, &SyntaxError{Pos: start, Msg: "unclosed hex string"}
		}
		c := p.data[p.pos]
		p.pos++

		if c == '>' {
			break
		}
		if isWhitespace(c) {
			continue
		}
		if !isHexDigit(c) {
			return nil, &SyntaxError{Pos: p.pos - 1, Msg: fmt.Sprintf("invalid hex digit %q", c)}
		}

		if havePending {
			result.WriteByte(pending<<4 | hexValue(c))
			havePending = false
		} else {
			pending = hexValue(c)
			havePending = true
		}
	}

	if havePending {
		result.WriteByte(pending << 4)
	}

	return stringObject(&result), nil
}

// parseName reads /Name, decoding #xx escapes.
func (p *Parser) parseName() Name {
	p.pos++ // skip '/'

	var result bytes.Buffer

	for p.pos < len(p.data) {
		c := p.data[p.pos]

		if isWhitespace(c) || isDelimiter(c) {
			break
		}

		if c == '#' && p.pos+2 < len(p.data) {
			hex1 := p.data[p.pos+1]
			hex2 := p.data[p.pos+2]
			if isHexDigit(hex1) && isHexDigit(hex2) {
				result.WriteByte((hexValue(hex1) << 4) | hexValue(hex2))
				p.pos += 3
				continue
			}
		}

		result.WriteByte(c)
		p.pos++
	}

	return Name(result.String())
}

// parseArray reads [ ... ].
func (p *Parser) parseArray() (Object, error) {
	start := p.pos
	p.pos++ // skip '['

	arr := Array{}

	for {
		p.skipWhitespace()

		if p.pos >= len(p.data) {
			return nil, &SyntaxError{Pos: start, Msg: "unclosed array"}
		}

		if p.data[p.pos] == ']' {
			p.pos++
			return arr, nil
		}

		obj, err := p.parseOperand()
		if err != nil {
			return nil, err
		}

		arr = append(arr, obj)
	}
}

// parseDict parses a dictionary <<...>>, used by marked-content operators.
func (p *Parser) parseDict() (Object, error) {
	start := p.pos
	p.pos += 2 // skip '<<'

	dict := make(Dict)

	for {
		p.skipWhitespace()

		if p.pos >= len(p.data) {
			return nil, &SyntaxError{Pos: start, Msg: "unclosed dictionary"}
		}

		if p.pos+1 < len(p.data) && p.data[p.pos] == '>' && p.data[p.pos+1] == '>' {
			p.pos += 2
			return dict, nil
		}

		if p.data[p.pos] != '/' {
			return nil, &SyntaxError{Pos: p.pos, Msg: "dictionary key must be a name"}
		}
		key := p.parseName()

		value, err := p.parseOperand()
		if err != nil {
			return nil, err
		}

		dict[string(key)] = value
	}
}

// stringObject copies the buffered bytes into a non-nil String.
func stringObject(b *bytes.Buffer) String {
	out := make([]byte, b.Len())
	copy(out, b.Bytes())
	return String(out)
}

// skipWhitespace advances past PDF whitespace and comments.
func (p *Parser) skipWhitespace() {
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c == '%' {
			for p.pos < len(p.data) && p.data[p.pos] != '\n' && p.data[p.pos] != '\r' {
				p.pos++
			}
			continue
		}
		if !isWhitespace(c) {
			return
		}
		p.pos++
	}
}

// isWhitespace covers the six PDF white-space bytes.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isDelimiter covers the PDF delimiter bytes.
func isDelimiter(c byte) bool {
	return c == '(' || c == ')' || c == '<' || c == '>' ||
		c == '[' || c == ']' || c == '{' || c == '}' ||
		c == '/' || c == '%'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// hexValue assumes isHexDigit(c).
func hexValue(c byte) byte {
	switch {
	case isDigit(c):
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
