package extrapolate

import "strconv"

// These flags define which values to include in a serialized output.
const (
	SerializeSequence   = 1 << iota // input sequence
	SerializeTable                  // derived rows
	SerializeCandidates             // distinct predictions
)

const (
	serializerBasePrefix       = '{'
	serializerSequencePrefix   = `"sequence":`
	serializerTablePrefix      = `"table":`
	serializerCandidatesPrefix = `"candidates":`
	serializerFieldSuffix      = ','
	serializerBaseSuffix       = '}'
)

// A Report gathers the results computed for a sequence.
type Report struct {
	Sequence   []int64
	Table      Table
	Candidates *Candidates
}

// serialize returns a JSON encoding of r using flag to define which values to
// include in the output. A nil table or candidate set is encoded as null.
func serialize(r Report, flag int) []byte {
	approxSize := 2
	if flag&SerializeSequence != 0 {
		approxSize += len(serializerSequencePrefix) + 4*len(r.Sequence)
	}
	if flag&SerializeTable != 0 {
		for _, row := range r.Table {
			approxSize += 2 + 4*len(row)
		}
	}
	buf := make([]byte, 0, approxSize)
	buf = append(buf, serializerBasePrefix)
	if flag&SerializeSequence != 0 {
		buf = append(buf, serializerSequencePrefix...)
		buf = appendInts(buf, r.Sequence)
		buf = append(buf, serializerFieldSuffix)
	}
	if flag&SerializeTable != 0 {
		buf = append(buf, serializerTablePrefix...)
		if r.Table == nil {
			buf = append(buf, "null"...)
		} else {
			buf = append(buf, '[')
			for i, row := range r.Table {
				if i > 0 {
					buf = append(buf, ',')
				}
				buf = appendInts(buf, row)
			}
			buf = append(buf, ']')
		}
		buf = append(buf, serializerFieldSuffix)
	}
	if flag&SerializeCandidates != 0 {
		buf = append(buf, serializerCandidatesPrefix...)
		if r.Candidates == nil {
			buf = append(buf, "null"...)
		} else {
			buf = appendInts(buf, r.Candidates.Values())
		}
		buf = append(buf, serializerFieldSuffix)
	}
	if buf[len(buf)-1] == serializerFieldSuffix {
		buf[len(buf)-1] = serializerBaseSuffix
	} else {
		buf = append(buf, serializerBaseSuffix)
	}
	return buf
}

// appendInts appends s to buf as a JSON array.
func appendInts(buf []byte, s []int64) []byte {
	buf = append(buf, '[')
	for i, v := range s {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, v, 10)
	}
	return append(buf, ']')
}

// Serialize is a convenience method that returns a JSON encoding of the report
// using flag to define which values to include in the serialized output.
func (r Report) Serialize(flag int) []byte {
	return serialize(r, flag)
}
