//go:build rp2040 || rp2350

package fmtx

import (
	"io"

	"servocode-go/x/conv"
)

// MCU builds carry a tiny formatter instead of fmt. Supported verbs:
// %s %q %d %v %t %%. Anything else is written literally so misuse shows up
// in the output rather than disappearing.

func Sprintf(format string, a ...any) string {
	var b buf
	b.format(format, a...)
	return string(b.p)
}

func Fprintf(w io.Writer, format string, a ...any) (int, error) {
	return w.Write([]byte(Sprintf(format, a...)))
}

func Errorf(format string, a ...any) error {
	return strErr(Sprintf(format, a...))
}

type strErr string

func (e strErr) Error() string { return string(e) }

type buf struct{ p []byte }

func (b *buf) str(s string) { b.p = append(b.p, s...) }

func (b *buf) val(v any) {
	switch x := v.(type) {
	case string:
		b.str(x)
	case []byte:
		b.p = append(b.p, x...)
	case bool:
		if x {
			b.str("true")
		} else {
			b.str("false")
		}
	case int:
		b.str(conv.Itoa(int64(x)))
	case int8:
		b.str(conv.Itoa(int64(x)))
	case int16:
		b.str(conv.Itoa(int64(x)))
	case int32:
		b.str(conv.Itoa(int64(x)))
	case int64:
		b.str(conv.Itoa(x))
	case uint:
		b.str(conv.Utoa(uint64(x)))
	case uint8:
		b.str(conv.Utoa(uint64(x)))
	case uint16:
		b.str(conv.Utoa(uint64(x)))
	case uint32:
		b.str(conv.Utoa(uint64(x)))
	case uint64:
		b.str(conv.Utoa(x))
	case error:
		b.str(x.Error())
	default:
		b.str("<?>")
	}
}

func (b *buf) format(format string, args ...any) {
	ai := 0
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			b.p = append(b.p, c)
			continue
		}
		i++
		verb := format[i]
		if verb == '%' {
			b.p = append(b.p, '%')
			continue
		}
		if ai >= len(args) {
			b.str("%!")
			b.p = append(b.p, verb)
			continue
		}
		arg := args[ai]
		ai++
		switch verb {
		case 's', 'd', 'v', 't':
			b.val(arg)
		case 'q':
			b.p = append(b.p, '"')
			b.val(arg)
			b.p = append(b.p, '"')
		default:
			b.p = append(b.p, '%', verb)
		}
	}
}
