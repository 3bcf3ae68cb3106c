// Package testutil builds fixtures shared by the GeoFoto tests.
package testutil

import "encoding/binary"

// RawTag is one TIFF directory entry before layout.
type RawTag struct {
	ID    uint16
	Type  uint16
	Count uint32
	Data  []byte
}

const (
	tiffASCII    = 2
	tiffShort    = 3
	tiffLong     = 4
	tiffRational = 5
)

// Rat is an unsigned TIFF rational {numerator, denominator}.
type Rat [2]uint32

func ASCIITag(id uint16, s string) RawTag {
	b := append([]byte(s), 0)
	return RawTag{ID: id, Type: tiffASCII, Count: uint32(len(b)), Data: b}
}

func RationalTag(id uint16, vals ...Rat) RawTag {
	var b []byte
	for _, v := range vals {
		b = binary.LittleEndian.AppendUint32(b, v[0])
		b = binary.LittleEndian.AppendUint32(b, v[1])
	}
	return RawTag{ID: id, Type: tiffRational, Count: uint32(len(vals)), Data: b}
}

func OrientationTag() RawTag {
	return RawTag{ID: 0x0112, Type: tiffShort, Count: 1, Data: []byte{1, 0}}
}

// BuildTIFF lays out a little-endian TIFF with IFD0 and, when gps is
// non-nil, a GPS sub-IFD referenced from IFD0.
func BuildTIFF(ifd0, gps []RawTag) []byte {
	le := binary.LittleEndian
	ifd0 = append([]RawTag(nil), ifd0...)
	if gps != nil {
		ifd0 = append(ifd0, RawTag{ID: 0x8825, Type: tiffLong, Count: 1})
	}
	ifdSize := func(n int) int { return 2 + 12*n + 4 }

	off0 := 8
	offGPS := off0 + ifdSize(len(ifd0))
	dataStart := offGPS
	if gps != nil {
		dataStart += ifdSize(len(gps))
		ifd0[len(ifd0)-1].Data = le.AppendUint32(nil, uint32(offGPS))
	}

	var data []byte
	writeIFD := func(tags []RawTag) []byte {
		b := le.AppendUint16(nil, uint16(len(tags)))
		for _, t := range tags {
			b = le.AppendUint16(b, t.ID)
			b = le.AppendUint16(b, t.Type)
			b = le.AppendUint32(b, t.Count)
			if len(t.Data) <= 4 {
				v := make([]byte, 4)
				copy(v, t.Data)
				b = append(b, v...)
				continue
			}
			b = le.AppendUint32(b, uint32(dataStart+len(data)))
			data = append(data, t.Data...)
		}
		return le.AppendUint32(b, 0)
	}

	out := []byte{'I', 'I', 42, 0}
	out = le.AppendUint32(out, uint32(off0))
	out = append(out, writeIFD(ifd0)...)
	if gps != nil {
		out = append(out, writeIFD(gps)...)
	}
	return append(out, data...)
}

// WrapJPEG puts a TIFF block into the APP1 segment of a minimal JPEG.
func WrapJPEG(tiff []byte) []byte {
	app1 := append([]byte("Exif\x00\x00"), tiff...)
	out := []byte{0xFF, 0xD8, 0xFF, 0xE1}
	out = binary.BigEndian.AppendUint16(out, uint16(len(app1)+2))
	out = append(out, app1...)
	return append(out, 0xFF, 0xD9)
}

// GPSJPEG returns a JPEG whose EXIF block carries the given position as
// degrees/minutes/seconds rationals plus hemisphere refs.
func GPSJPEG(lat [3]Rat, latRef string, lon [3]Rat, lonRef string) []byte {
	gps := []RawTag{
		ASCIITag(0x0001, latRef),
		RationalTag(0x0002, lat[0], lat[1], lat[2]),
		ASCIITag(0x0003, lonRef),
		RationalTag(0x0004, lon[0], lon[1], lon[2]),
	}
	return WrapJPEG(BuildTIFF([]RawTag{OrientationTag()}, gps))
}

// PlainJPEG is a JPEG with an EXIF block but no GPS data.
func PlainJPEG() []byte {
	return WrapJPEG(BuildTIFF([]RawTag{OrientationTag()}, nil))
}

// BarcelonaJPEG is tagged 41°23'0"N 2°10'0"E.
func BarcelonaJPEG() []byte {
	return GPSJPEG(
		[3]Rat{{41, 1}, {23, 1}, {0, 1}}, "N",
		[3]Rat{{2, 1}, {10, 1}, {0, 1}}, "E",
	)
}
