package font

import (
	"strconv"
	"strings"
)

// GlyphToUnicode maps a glyph name from an /Encoding /Differences array to
// the text it represents. It understands the common Adobe Glyph List names,
// the "uniXXXX" and "uXXXX[XX]" forms, and single-character names such as
// "A" or "z". Suffixes after a period ("a.sc", "one.oldstyle") are ignored.
func GlyphToUnicode(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if i := strings.IndexByte(name, '.'); i > 0 {
		name = name[:i]
	}

	if r, ok := glyphNames[name]; ok {
		return string(r), true
	}

	// Ligature names joined by underscore, e.g. "f_f_i"
	if strings.Contains(name, "_") {
		var b strings.Builder
		for _, part := range strings.Split(name, "_") {
			s, ok := GlyphToUnicode(part)
			if !ok {
				return "", false
			}
			b.WriteString(s)
		}
		return b.String(), true
	}

	if strings.HasPrefix(name, "uni") && len(name) >= 7 && (len(name)-3)%4 == 0 {
		var b strings.Builder
		for i := 3; i < len(name); i += 4 {
			v, err := strconv.ParseUint(name[i:i+4], 16, 16)
			if err != nil || (v >= 0xD800 && v <= 0xDFFF) {
				return "", false
			}
			b.WriteRune(rune(v))
		}
		return b.String(), true
	}

	if strings.HasPrefix(name, "u") && len(name) >= 5 && len(name) <= 7 {
		v, err := strconv.ParseUint(name[1:], 16, 32)
		if err == nil && v <= 0x10FFFF && (v < 0xD800 || v > 0xDFFF) {
			return string(rune(v)), true
		}
	}

	if len(name) == 1 {
		c := name[0]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
			return name, true
		}
	}

	return "", false
}

// glyphNames is the subset of the Adobe Glyph List covering the glyphs of
// the four base encodings plus the common ligatures.
var glyphNames = map[string]rune{
	// ASCII punctuation and digits
	"space":        ' ',
	"exclam":       '!',
	"quotedbl":     '"',
	"numbersign":   '#',
	"dollar":       '$',
	"percent":      '%',
	"ampersand":    '&',
	"quotesingle":  '\'',
	"quoteright":   0x2019,
	"parenleft":    '(',
	"parenright":   ')',
	"asterisk":     '*',
	"plus":         '+',
	"comma":        ',',
	"hyphen":       '-',
	"minus":        0x2212,
	"period":       '.',
	"slash":        '/',
	"zero":         '0',
	"one":          '1',
	"two":          '2',
	"three":        '3',
	"four":         '4',
	"five":         '5',
	"six":          '6',
	"seven":        '7',
	"eight":        '8',
	"nine":         '9',
	"colon":        ':',
	"semicolon":    ';',
	"less":         '<',
	"equal":        '=',
	"greater":      '>',
	"question":     '?',
	"at":           '@',
	"bracketleft":  '[',
	"backslash":    '\\',
	"bracketright": ']',
	"asciicircum":  '^',
	"underscore":   '_',
	"grave":        '`',
	"quoteleft":    0x2018,
	"braceleft":    '{',
	"bar":          '|',
	"braceright":   '}',
	"asciitilde":   '~',

	// Typographic punctuation
	"exclamdown":     0x00A1,
	"cent":           0x00A2,
	"sterling":       0x00A3,
	"fraction":       0x2044,
	"yen":            0x00A5,
	"florin":         0x0192,
	"section":        0x00A7,
	"currency":       0x00A4,
	"quotedblleft":   0x201C,
	"quotedblright":  0x201D,
	"guillemotleft":  0x00AB,
	"guillemotright": 0x00BB,
	"guilsinglleft":  0x2039,
	"guilsinglright": 0x203A,
	"endash":         0x2013,
	"emdash":         0x2014,
	"dagger":         0x2020,
	"daggerdbl":      0x2021,
	"periodcentered": 0x00B7,
	"paragraph":      0x00B6,
	"bullet":         0x2022,
	"quotesinglbase": 0x201A,
	"quotedblbase":   0x201E,
	"ellipsis":       0x2026,
	"perthousand":    0x2030,
	"questiondown":   0x00BF,
	"acute":          0x00B4,
	"circumflex":     0x02C6,
	"tilde":          0x02DC,
	"macron":         0x00AF,
	"breve":          0x02D8,
	"dotaccent":      0x02D9,
	"dieresis":       0x00A8,
	"ring":           0x02DA,
	"cedilla":        0x00B8,
	"hungarumlaut":   0x02DD,
	"ogonek":         0x02DB,
	"caron":          0x02C7,
	"ordfeminine":    0x00AA,
	"ordmasculine":   0x00BA,
	"Euro":           0x20AC,
	"trademark":      0x2122,
	"copyright":      0x00A9,
	"registered":     0x00AE,
	"degree":         0x00B0,
	"plusminus":      0x00B1,
	"multiply":       0x00D7,
	"divide":         0x00F7,
	"mu":             0x00B5,
	"brokenbar":      0x00A6,
	"logicalnot":     0x00AC,
	"onehalf":        0x00BD,
	"onequarter":     0x00BC,
	"threequarters":  0x00BE,
	"onesuperior":    0x00B9,
	"twosuperior":    0x00B2,
	"threesuperior":  0x00B3,
	"nbspace":        0x00A0,
	"sfthyphen":      0x00AD,

	// Ligatures
	"fi":  0xFB01,
	"fl":  0xFB02,
	"ff":  0xFB00,
	"ffi": 0xFB03,
	"ffl": 0xFB04,

	// Latin letters outside ASCII
	"AE":          0x00C6,
	"ae":          0x00E6,
	"OE":          0x0152,
	"oe":          0x0153,
	"Oslash":      0x00D8,
	"oslash":      0x00F8,
	"Lslash":      0x0141,
	"lslash":      0x0142,
	"dotlessi":    0x0131,
	"germandbls":  0x00DF,
	"Eth":         0x00D0,
	"eth":         0x00F0,
	"Thorn":       0x00DE,
	"thorn":       0x00FE,
	"Aacute":      0x00C1,
	"Acircumflex": 0x00C2,
	"Adieresis":   0x00C4,
	"Agrave":      0x00C0,
	"Aring":       0x00C5,
	"Atilde":      0x00C3,
	"Ccedilla":    0x00C7,
	"Eacute":      0x00C9,
	"Ecircumflex": 0x00CA,
	"Edieresis":   0x00CB,
	"Egrave":      0x00C8,
	"Iacute":      0x00CD,
	"Icircumflex": 0x00CE,
	"Idieresis":   0x00CF,
	"Igrave":      0x00CC,
	"Ntilde":      0x00D1,
	"Oacute":      0x00D3,
	"Ocircumflex": 0x00D4,
	"Odieresis":   0x00D6,
	"Ograve":      0x00D2,
	"Otilde":      0x00D5,
	"Scaron":      0x0160,
	"Uacute":      0x00DA,
	"Ucircumflex": 0x00DB,
	"Udieresis":   0x00DC,
	"Ugrave":      0x00D9,
	"Yacute":      0x00DD,
	"Ydieresis":   0x0178,
	"Zcaron":      0x017D,
	"aacute":      0x00E1,
	"acircumflex": 0x00E2,
	"adieresis":   0x00E4,
	"agrave":      0x00E0,
	"aring":       0x00E5,
	"atilde":      0x00E3,
	"ccedilla":    0x00E7,
	"eacute":      0x00E9,
	"ecircumflex": 0x00EA,
	"edieresis":   0x00EB,
	"egrave":      0x00E8,
	"iacute":      0x00ED,
	"icircumflex": 0x00EE,
	"idieresis":   0x00EF,
	"igrave":      0x00EC,
	"ntilde":      0x00F1,
	"oacute":      0x00F3,
	"ocircumflex": 0x00F4,
	"odieresis":   0x00F6,
	"ograve":      0x00F2,
	"otilde":      0x00F5,
	"scaron":      0x0161,
	"uacute":      0x00FA,
	"ucircumflex": 0x00FB,
	"udieresis":   0x00FC,
	"ugrave":      0x00F9,
	"yacute":      0x00FD,
	"ydieresis":   0x00FF,
	"zcaron":      0x017E,

	// Greek (Symbol font)
	"Alpha":   0x0391,
	"Beta":    0x0392,
	"Gamma":   0x0393,
	"Delta":   0x0394,
	"Epsilon": 0x0395,
	"Zeta":    0x0396,
	"Eta":     0x0397,
	"Theta":   0x0398,
	"Iota":    0x0399,
	"Kappa":   0x039A,
	"Lambda":  0x039B,
	"Mu":      0x039C,
	"Nu":      0x039D,
	"Xi":      0x039E,
	"Omicron": 0x039F,
	"Pi":      0x03A0,
	"Rho":     0x03A1,
	"Sigma":   0x03A3,
	"Tau":     0x03A4,
	"Upsilon": 0x03A5,
	"Phi":     0x03A6,
	"Chi":     0x03A7,
	"Psi":     0x03A8,
	"Omega":   0x03A9,
	"alpha":   0x03B1,
	"beta":    0x03B2,
	"gamma":   0x03B3,
	"delta":   0x03B4,
	"epsilon": 0x03B5,
	"zeta":    0x03B6,
	"eta":     0x03B7,
	"theta":   0x03B8,
	"iota":    0x03B9,
	"kappa":   0x03BA,
	"lambda":  0x03BB,
	"nu":      0x03BD,
	"xi":      0x03BE,
	"omicron": 0x03BF,
	"pi":      0x03C0,
	"rho":     0x03C1,
	"sigma1":  0x03C2,
	"sigma":   0x03C3,
	"tau":     0x03C4,
	"upsilon": 0x03C5,
	"phi":     0x03C6,
	"chi":     0x03C7,
	"psi":     0x03C8,
	"omega":   0x03C9,

	// Math
	"infinity":     0x221E,
	"lessequal":    0x2264,
	"greaterequal": 0x2265,
	"notequal":     0x2260,
	"approxequal":  0x2248,
	"summation":    0x2211,
	"product":      0x220F,
	"radical":      0x221A,
	"integral":     0x222B,
	"partialdiff":  0x2202,
	"universal":    0x2200,
	"existential":  0x2203,
	"element":      0x2208,
	"arrowleft":    0x2190,
	"arrowup":      0x2191,
	"arrowright":   0x2192,
	"arrowdown":    0x2193,
	"arrowboth":    0x2194,
	"lozenge":      0x25CA,
}
