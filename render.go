package xbridge

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"time"
	"unicode/utf8"
)

const digits = "0123456789abcdef"

// appendValue renders v the way it reads inside a message: strings verbatim,
// numbers in shortest form, times as RFC3339Nano.
func appendValue(buf *buffer, v any) {
	if v == nil {
		buf.writeString("<nil>")
		return
	}
	switch vv := v.(type) {
	case string:
		buf.writeString(vv)
	case []byte:
		appendBytes(buf, vv)
	case bool:
		buf.b = strconv.AppendBool(buf.b, vv)
	case int:
		buf.b = strconv.AppendInt(buf.b, int64(vv), 10)
	case int8:
		buf.b = strconv.AppendInt(buf.b, int64(vv), 10)
	case int16:
		buf.b = strconv.AppendInt(buf.b, int64(vv), 10)
	case int32:
		buf.b = strconv.AppendInt(buf.b, int64(vv), 10)
	case int64:
		buf.b = strconv.AppendInt(buf.b, vv, 10)
	case uint:
		buf.b = strconv.AppendUint(buf.b, uint64(vv), 10)
	case uint8:
		buf.b = strconv.AppendUint(buf.b, uint64(vv), 10)
	case uint16:
		buf.b = strconv.AppendUint(buf.b, uint64(vv), 10)
	case uint32:
		buf.b = strconv.AppendUint(buf.b, uint64(vv), 10)
	case uint64:
		buf.b = strconv.AppendUint(buf.b, vv, 10)
	case float32:
		appendFloat64(buf, float64(vv))
	case float64:
		appendFloat64(buf, vv)
	case time.Time:
		buf.b = vv.AppendFormat(buf.b, time.RFC3339Nano)
	case time.Duration:
		buf.writeString(vv.String())
	case Level:
		buf.writeString(vv.String())
	default:
		// Errors and Stringers go through fmt, which prints <nil> for nil
		// receivers and %!v(PANIC=...) for panicking methods.
		buf.b = fmt.Append(buf.b, vv)
	}
}

// appendRepr renders v unambiguously: strings and errors quoted, everything
// else as appendValue does.
func appendRepr(buf *buffer, v any) {
	switch vv := v.(type) {
	case string:
		appendQuoted(buf, vv)
	case error:
		appendQuoted(buf, fmt.Sprint(vv))
	case []byte:
		buf.writeString("b")
		appendQuoted(buf, string(vv))
	default:
		appendValue(buf, v)
	}
}

func appendFloat64(buf *buffer, f float64) {
	switch {
	case math.IsNaN(f):
		buf.writeString("NaN")
	case math.IsInf(f, 1):
		buf.writeString("+Inf")
	case math.IsInf(f, -1):
		buf.writeString("-Inf")
	default:
		buf.b = strconv.AppendFloat(buf.b, f, 'g', -1, 64)
	}
}

// appendBytes writes valid UTF-8 as text and anything else as base64.
func appendBytes(buf *buffer, data []byte) {
	if utf8.Valid(data) {
		buf.writeBytes(data)
		return
	}
	buf.writeString("base64:")
	buf.writeString(base64.StdEncoding.EncodeToString(data))
}

func appendQuoted(buf *buffer, s string) {
	buf.writeByte('"')
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c >= 0x20 && c != '\\' && c != '"' && c < 0x80 {
			i++
			continue
		}
		if c >= 0x80 {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r != utf8.RuneError || size != 1 {
				i += size
				continue
			}
		}
		if start < i {
			buf.writeString(s[start:i])
		}
		switch c {
		case '\\', '"':
			buf.writeByte('\\')
			buf.writeByte(c)
		case '\n':
			buf.writeString(`\n`)
		case '\r':
			buf.writeString(`\r`)
		case '\t':
			buf.writeString(`\t`)
		default:
			if c >= 0x80 {
				buf.writeString(`\uFFFD`)
				break
			}
			buf.writeString(`\u00`)
			buf.writeByte(digits[c>>4])
			buf.writeByte(digits[c&0xF])
		}
		i++
		start = i
	}
	if start < len(s) {
		buf.writeString(s[start:])
	}
	buf.writeByte('"')
}
