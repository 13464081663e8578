package imagevector

import (
	"fmt"
	"strconv"
	"strings"
)

// parsePathData tokenizes an SVG path `d` attribute into Commands. It
// supports M/m, L/l, H/h, V/v, C/c, Q/q, Z/z; A/a (elliptical arc) is
// approximated as a line to the arc's endpoint (see Parse's doc comment).
func parsePathData(d string) ([]Command, error) {
	toks := tokenizePathData(d)
	var commands []Command
	var cur, start Point
	pos := 0

	readPoint := func(relative bool) (Point, error) {
		if pos+1 >= len(toks) {
			return Point{}, fmt.Errorf("imagevector: truncated path data coordinate pair")
		}
		x, err := strconv.ParseFloat(toks[pos], 64)
		if err != nil {
			return Point{}, fmt.Errorf("imagevector: invalid path coordinate %q: %w", toks[pos], err)
		}
		y, err := strconv.ParseFloat(toks[pos+1], 64)
		if err != nil {
			return Point{}, fmt.Errorf("imagevector: invalid path coordinate %q: %w", toks[pos+1], err)
		}
		pos += 2
		p := Point{X: x, Y: y}
		if relative {
			p.X += cur.X
			p.Y += cur.Y
		}
		return p, nil
	}
	readScalar := func(relative bool, axis byte) (float64, error) {
		if pos >= len(toks) {
			return 0, fmt.Errorf("imagevector: truncated path data scalar")
		}
		v, err := strconv.ParseFloat(toks[pos], 64)
		if err != nil {
			return 0, fmt.Errorf("imagevector: invalid path scalar %q: %w", toks[pos], err)
		}
		pos++
		if relative {
			if axis == 'x' {
				v += cur.X
			} else {
				v += cur.Y
			}
		}
		return v, nil
	}

	var cmd byte
	for pos < len(toks) {
		if isPathCommandLetter(toks[pos]) {
			cmd = toks[pos][0]
			pos++
		}
		relative := cmd >= 'a'
		switch cmd {
		case 'M', 'm':
			p, err := readPoint(relative)
			if err != nil {
				return nil, err
			}
			commands = append(commands, Command{Kind: CommandMoveTo, P1: p})
			cur, start = p, p
			if cmd == 'M' {
				cmd = 'L'
			} else {
				cmd = 'l'
			}
		case 'L', 'l':
			p, err := readPoint(relative)
			if err != nil {
				return nil, err
			}
			commands = append(commands, Command{Kind: CommandLineTo, P1: p})
			cur = p
		case 'H', 'h':
			x, err := readScalar(relative, 'x')
			if err != nil {
				return nil, err
			}
			p := Point{X: x, Y: cur.Y}
			commands = append(commands, Command{Kind: CommandLineTo, P1: p})
			cur = p
		case 'V', 'v':
			y, err := readScalar(relative, 'y')
			if err != nil {
				return nil, err
			}
			p := Point{X: cur.X, Y: y}
			commands = append(commands, Command{Kind: CommandLineTo, P1: p})
			cur = p
		case 'C', 'c':
			p1, err := readPoint(relative)
			if err != nil {
				return nil, err
			}
			p2, err := readPoint(relative)
			if err != nil {
				return nil, err
			}
			p3, err := readPoint(relative)
			if err != nil {
				return nil, err
			}
			commands = append(commands, Command{Kind: CommandCurveTo, P1: p1, P2: p2, P3: p3})
			cur = p3
		case 'Q', 'q':
			p1, err := readPoint(relative)
			if err != nil {
				return nil, err
			}
			p2, err := readPoint(relative)
			if err != nil {
				return nil, err
			}
			commands = append(commands, Command{Kind: CommandQuadraticBezierTo, P1: p1, P2: p2})
			cur = p2
		case 'A', 'a':
			// rx ry x-axis-rotation large-arc-flag sweep-flag x y
			if pos+6 >= len(toks) {
				return nil, fmt.Errorf("imagevector: truncated arc command")
			}
			pos += 5
			p, err := readPoint(relative)
			if err != nil {
				return nil, err
			}
			commands = append(commands, Command{Kind: CommandLineTo, P1: p})
			cur = p
		case 'Z', 'z':
			commands = append(commands, Command{Kind: CommandClose})
			cur = start
		default:
			return nil, fmt.Errorf("imagevector: unsupported path command %q", string(cmd))
		}
	}
	return commands, nil
}

func isPathCommandLetter(tok string) bool {
	if len(tok) != 1 {
		return false
	}
	switch tok[0] {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'Q', 'q', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

// tokenizePathData splits path data into command letters and numbers,
// handling the SVG grammar's permissive separators (commas, whitespace, and
// numbers packed with no separator at all, e.g. "1.5-2" meaning "1.5" then
// "-2").
func tokenizePathData(d string) []string {
	var toks []string
	var num strings.Builder
	flushNum := func() {
		if num.Len() > 0 {
			toks = append(toks, num.String())
			num.Reset()
		}
	}
	seenDot := false
	for i := 0; i < len(d); i++ {
		c := d[i]
		switch {
		case isPathCommandLetter(string(c)):
			flushNum()
			seenDot = false
			toks = append(toks, string(c))
		case c == ',' || c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flushNum()
			seenDot = false
		case c == '-' || c == '+':
			// A sign starts a new number unless it's immediately after
			// an 'e'/'E' exponent marker.
			if num.Len() > 0 && num.String()[num.Len()-1] != 'e' && num.String()[num.Len()-1] != 'E' {
				flushNum()
				seenDot = false
			}
			num.WriteByte(c)
		case c == '.':
			if seenDot {
				flushNum()
				seenDot = false
			}
			seenDot = true
			num.WriteByte(c)
		default:
			num.WriteByte(c)
		}
	}
	flushNum()
	return toks
}
