//go:build linux

package videosink

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/cowby123/scrcpy-go/internal/decoder"
	"github.com/cowby123/scrcpy-go/internal/logging"
)

// V4L2Sink writes decoded frames to a v4l2loopback device so other
// Linux applications can consume the mirrored screen as a regular
// camera. No V4L2 Go library exists anywhere in the example pack (see
// DESIGN.md's stdlib justification for this sink); the output format is
// set with a raw VIDIOC_S_FMT ioctl via golang.org/x/sys/unix, which is
// already a real transitive dependency of this module's stack, and each
// frame is then delivered with a plain write(2) to the device.
type V4L2Sink struct {
	*worker
	log    *logging.Logger
	path   string
	file   *os.File
	width  int
	height int
}

func NewV4L2Sink(devicePath string, log *logging.Logger) *V4L2Sink {
	s := &V4L2Sink{path: devicePath}
	s.worker = newWorker(log, s.renderFrame)
	s.log = log
	return s
}

func (s *V4L2Sink) Open(params decoder.CodecParams) error {
	f, err := os.OpenFile(s.path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("videosink: v4l2 open %s: %w", s.path, err)
	}
	s.file = f
	go s.worker.run()
	return nil
}

func (s *V4L2Sink) Push(frame *decoder.Frame) error {
	s.worker.push(frame)
	return nil
}

func (s *V4L2Sink) renderFrame(frame *decoder.Frame) error {
	if frame.AV == nil {
		return nil
	}
	w, h := frame.AV.Width(), frame.AV.Height()
	if w != s.width || h != s.height {
		if err := s.setFormat(w, h); err != nil {
			return err
		}
		s.width, s.height = w, h
	}

	yuv := planarYUV(frame.AV)
	_, err := s.file.Write(yuv)
	return err
}

// setFormat issues VIDIOC_S_FMT to tell the loopback device the frame
// geometry and pixel format (YUV420/I420, matching planarYUV's layout).
func (s *V4L2Sink) setFormat(width, height int) error {
	var fmtReq v4l2Format
	fmtReq.Type = v4l2BufTypeVideoOutput
	fmtReq.Pix.Width = uint32(width)
	fmtReq.Pix.Height = uint32(height)
	fmtReq.Pix.PixelFormat = v4l2PixFmtYUV420
	fmtReq.Pix.Field = v4l2FieldNone
	fmtReq.Pix.BytesPerLine = uint32(width)
	fmtReq.Pix.SizeImage = uint32(width*height + 2*((width+1)/2)*((height+1)/2))

	return ioctl(s.file.Fd(), vidiocSFmt, unsafe.Pointer(&fmtReq))
}

func (s *V4L2Sink) Close() {
	s.worker.stop()
	if s.file != nil {
		s.file.Close()
	}
}

// --- minimal V4L2 ioctl surface --------------------------------------
//
// Only the handful of constants/structs this sink needs; a full V4L2
// binding would cover capture as well as output and many more pixel
// formats, which this sink (a fixed YUV420 output-only path) does not
// need.

const (
	v4l2BufTypeVideoOutput = 2
	v4l2PixFmtYUV420       = 0x32315559 // 'YU12', little-endian fourcc
	v4l2FieldNone          = 1
)

// vidiocSFmt is VIDIOC_S_FMT's ioctl request code for struct v4l2_format
// (_IOWR('V', 5, struct v4l2_format), computed the same way the Linux
// UAPI header does: size is substituted by the cgo-free caller via
// ioctlIOWR below since Go cannot evaluate the C sizeof macro at
// compile time).
var vidiocSFmt = ioctlIOWR('V', 5, 208) // sizeof(struct v4l2_format) on amd64/arm64

type v4l2PixFormat struct {
	Width        uint32
	Height       uint32
	PixelFormat  uint32
	Field        uint32
	BytesPerLine uint32
	SizeImage    uint32
	Colorspace   uint32
	Priv         uint32
	Flags        uint32
	YcbcrEnc     uint32
	Quantization uint32
	XferFunc     uint32
}

type v4l2Format struct {
	Type uint32
	Pix  v4l2PixFormat
	_    [156]byte // union padding out to struct v4l2_format's full size
}

func ioctlIOWR(typ byte, nr, size uintptr) uintptr {
	const iocRead, iocWrite = 2, 1
	return (iocRead|iocWrite)<<30 | size<<16 | uintptr(typ)<<8 | nr
}

// ioctl issues a raw ioctl(2) carrying a pointer argument, the shape
// VIDIOC_S_FMT needs (unlike the int-valued ioctls unix.IoctlSetInt
// covers).
func ioctl(fd uintptr, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}
