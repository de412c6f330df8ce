package videosink

import (
	"unsafe"

	"github.com/giorgisio/goav/avutil"
)

// planarYUV copies the Y/U/V planes of a decoded AVFrame into one
// contiguous IYUV-ordered byte slice, as used by the display's IYUV
// texture, the V4L2 sink and yuvToRGBX (VNC).
// goav hands back raw C pointers and per-plane strides (frame.Data(i),
// frame.Linesize(i)); this walks them row by row via unsafe.Slice rather
// than trusting the stride to equal the width, since codecs routinely
// pad linesize for alignment.
func planarYUV(frame *avutil.Frame) []byte {
	w, h := frame.Width(), frame.Height()
	cw, ch := (w+1)/2, (h+1)/2

	out := make([]byte, w*h+2*cw*ch)
	off := 0
	off = copyPlane(out, off, frame, 0, w, h)
	off = copyPlane(out, off, frame, 1, cw, ch)
	copyPlane(out, off, frame, 2, cw, ch)
	return out
}

// yuvToRGBX converts a decoded frame's planar YUV420 into packed
// RGBX32, the pixel format vnc.go's writeServerInit advertises. Uses the
// standard BT.601 full-range conversion.
func yuvToRGBX(frame *avutil.Frame, w, h int) []byte {
	yuv := planarYUV(frame)
	cw := (w + 1) / 2
	uOff := w * h
	vOff := uOff + cw*((h+1)/2)

	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			Y := int(yuv[y*w+x])
			U := int(yuv[uOff+(y/2)*cw+x/2]) - 128
			V := int(yuv[vOff+(y/2)*cw+x/2]) - 128

			r := clamp8(Y + (91881*V)>>16)
			g := clamp8(Y - (22554*U+46802*V)>>16)
			b := clamp8(Y + (116130*U)>>16)

			i := (y*w + x) * 4
			out[i] = b
			out[i+1] = g
			out[i+2] = r
			out[i+3] = 0
		}
	}
	return out
}

func clamp8(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

func copyPlane(dst []byte, off int, frame *avutil.Frame, plane, width, height int) int {
	stride := frame.Linesize(plane)
	src := frame.Data(plane)
	if src == nil || stride <= 0 {
		return off + width*height
	}
	row := unsafe.Slice((*byte)(unsafe.Pointer(src)), stride*height)
	for y := 0; y < height; y++ {
		copy(dst[off:off+width], row[y*stride:y*stride+width])
		off += width
	}
	return off
}
