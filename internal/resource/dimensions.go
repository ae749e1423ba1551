package resource

import "encoding/binary"

// decodeDimensions reads image dimensions straight out of the byte
// signatures for PNG, JPEG, GIF, and WebP. It returns ok=false on
// signature mismatch or truncation; callers tolerate this and leave
// dimensions at 0.
func decodeDimensions(data []byte) (width, height int, ok bool) {
	switch {
	case isPNG(data):
		return decodePNG(data)
	case isGIF(data):
		return decodeGIF(data)
	case isJPEG(data):
		return decodeJPEG(data)
	case isWebP(data):
		return decodeWebP(data)
	}
	return 0, 0, false
}

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func isPNG(data []byte) bool {
	if len(data) < 24 {
		return false
	}
	for i, b := range pngSignature {
		if data[i] != b {
			return false
		}
	}
	return true
}

// decodePNG reads the IHDR chunk's width/height, big-endian, at byte
// offsets 16-19 and 20-23.
func decodePNG(data []byte) (int, int, bool) {
	if len(data) < 24 {
		return 0, 0, false
	}
	w := binary.BigEndian.Uint32(data[16:20])
	h := binary.BigEndian.Uint32(data[20:24])
	return int(w), int(h), true
}

func isGIF(data []byte) bool {
	if len(data) < 10 {
		return false
	}
	return (string(data[0:6]) == "GIF87a" || string(data[0:6]) == "GIF89a")
}

// decodeGIF reads the logical screen width/height, little-endian, at byte
// offsets 6-7 and 8-9.
func decodeGIF(data []byte) (int, int, bool) {
	if len(data) < 10 {
		return 0, 0, false
	}
	w := binary.LittleEndian.Uint16(data[6:8])
	h := binary.LittleEndian.Uint16(data[8:10])
	return int(w), int(h), true
}

func isJPEG(data []byte) bool {
	return len(data) >= 4 && data[0] == 0xFF && data[1] == 0xD8
}

// decodeJPEG walks the marker segments looking for an SOF0-SOF3 (0xC0-0xC3)
// frame header. SOF segments layout after the marker and 2-byte
// length: 1 byte precision, 2 bytes height, 2 bytes width.
func decodeJPEG(data []byte) (int, int, bool) {
	i := 2
	for i+4 <= len(data) {
		if data[i] != 0xFF {
			i++
			continue
		}
		marker := data[i+1]
		// Skip standalone markers with no length/payload.
		if marker == 0xD8 || marker == 0xD9 || (marker >= 0xD0 && marker <= 0xD7) {
			i += 2
			continue
		}
		if i+4 > len(data) {
			break
		}
		segLen := int(data[i+2])<<8 | int(data[i+3])
		isSOF := marker == 0xC0 || marker == 0xC1 || marker == 0xC2 || marker == 0xC3
		if isSOF {
			if i+9 > len(data) {
				return 0, 0, false
			}
			height := int(data[i+5])<<8 | int(data[i+6])
			width := int(data[i+7])<<8 | int(data[i+8])
			return width, height, true
		}
		i += 2 + segLen
	}
	return 0, 0, false
}

func isWebP(data []byte) bool {
	return len(data) >= 16 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP"
}

// decodeWebP handles both the VP8 (lossy) and VP8L (lossless) chunk
// layouts.
func decodeWebP(data []byte) (int, int, bool) {
	if len(data) < 30 {
		return 0, 0, false
	}
	chunk := string(data[12:16])
	switch chunk {
	case "VP8 ":
		// Lossy: 3-byte frame tag follows a start code at offset 23
		// (0x9d 0x01 0x2a), then 2-byte width/height with 14-bit values
		// packed little-endian in the low bits.
		if len(data) < 30 {
			return 0, 0, false
		}
		w := int(binary.LittleEndian.Uint16(data[26:28])) & 0x3FFF
		h := int(binary.LittleEndian.Uint16(data[28:30])) & 0x3FFF
		return w, h, true
	case "VP8L":
		// Lossless: byte 20 is a 0x2F signature; width/height are packed
		// into the following 4 bytes as 14-bit fields, little-endian,
		// width first (stored as value-1).
		if len(data) < 25 || data[20] != 0x2F {
			return 0, 0, false
		}
		b := data[21:25]
		bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
		w := int(bits&0x3FFF) + 1
		h := int((bits>>14)&0x3FFF) + 1
		return w, h, true
	}
	return 0, 0, false
}
