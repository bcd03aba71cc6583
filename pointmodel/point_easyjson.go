package pointmodel

import (
	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

func (l PointList) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	l.MarshalEasyJSON(&w)
	return w.Buffer.BuildBytes(), w.Error
}

func (l PointList) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawByte('[')
	for i, p := range l {
		if i > 0 {
			w.RawByte(',')
		}
		w.RawString(`{"x":`)
		w.Float64(p.X)
		w.RawString(`,"y":`)
		w.Float64(p.Y)
		w.RawString(`,"polygon_id":`)
		w.Int64(p.PolygonID)
		w.RawByte('}')
	}
	w.RawByte(']')
}

func (l *PointList) UnmarshalJSON(data []byte) error {
	r := jlexer.Lexer{Data: data}
	l.UnmarshalEasyJSON(&r)
	return r.Error()
}

func (l *PointList) UnmarshalEasyJSON(in *jlexer.Lexer) {
	in.Delim('[')
	*l = (*l)[:0]
	for !in.IsDelim(']') {
		var p Point
		in.Delim('{')
		for !in.IsDelim('}') {
			key := in.UnsafeFieldName(false)
			in.WantColon()
			switch key {
			case "x":
				p.X = in.Float64()
			case "y":
				p.Y = in.Float64()
			case "polygon_id":
				p.PolygonID = in.Int64()
			default:
				in.SkipRecursive()
			}
			in.WantComma()
		}
		in.Delim('}')
		*l = append(*l, p)
		in.WantComma()
	}
	in.Delim(']')
}
