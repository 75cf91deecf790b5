package snapshot

import (
	"strconv"
	"strings"
)

// FormatArray encodes a as "[a0,a1,...]".
func FormatArray(a []int) string {
	var b strings.Builder
	b.WriteByte('[')
	writeInts(&b, a)
	b.WriteByte(']')
	return b.String()
}

// FormatMatrix encodes m as "[[..],[..]]".
func FormatMatrix(m Matrix) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, row := range m {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('[')
		writeInts(&b, row)
		b.WriteByte(']')
	}
	b.WriteByte(']')
	return b.String()
}

// FormatNodeList encodes l as "[v:h:b,...]".
func FormatNodeList(l NodeList) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range l {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(e.Value))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(e.Height))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(e.Balance))
	}
	b.WriteByte(']')
	return b.String()
}

// FormatBuckets encodes bs as "[[t,t],[],...]".
func FormatBuckets(bs Buckets) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, bucket := range bs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('[')
		b.WriteString(strings.Join(bucket, ","))
		b.WriteByte(']')
	}
	b.WriteByte(']')
	return b.String()
}

// FormatEdges encodes es as "[u-v:w,...]".
func FormatEdges(es []Edge) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range es {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(e.U))
		b.WriteByte('-')
		b.WriteString(strconv.Itoa(e.V))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(e.Weight))
	}
	b.WriteByte(']')
	return b.String()
}

func writeInts(b *strings.Builder, vals []int) {
	for i, v := range vals {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
}
