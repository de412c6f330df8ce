//go:build linux

package videosink

import "testing"

func TestIoctlIOWRMatchesKnownVIDIOCSFmt(t *testing.T) {
	// VIDIOC_S_FMT is a fixed, well-known constant on 64-bit Linux
	// (_IOWR('V', 5, sizeof(struct v4l2_format)) with sizeof == 208):
	// 0xc0d05605. Cross-checking against it catches a typo in the
	// direction/size/type/nr packing without needing the real kernel
	// header.
	const wantVidiocSFmt = 0xc0d05605
	if vidiocSFmt != wantVidiocSFmt {
		t.Fatalf("vidiocSFmt = %#x, want %#x", vidiocSFmt, wantVidiocSFmt)
	}
}
