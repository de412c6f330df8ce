package videosink

import (
	"encoding/binary"
	"fmt"
	"net"
	"sync"

	"github.com/cowby123/scrcpy-go/internal/decoder"
	"github.com/cowby123/scrcpy-go/internal/logging"
)

// VNCSink serves decoded frames to RFB 3.8 clients as raw-encoded
// updates. No RFB/VNC library exists anywhere in the example pack (see
// DESIGN.md's stdlib justification), so this hand-rolls the handshake
// and update framing directly over net.Listener/net.Conn.
type VNCSink struct {
	*worker
	log      *logging.Logger
	listener net.Listener
	name     string

	mu      sync.Mutex
	clients map[net.Conn]struct{}
	width   int
	height  int
}

func NewVNCSink(addr, name string, log *logging.Logger) (*VNCSink, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("videosink: vnc listen %s: %w", addr, err)
	}
	s := &VNCSink{listener: ln, name: name, clients: make(map[net.Conn]struct{})}
	s.worker = newWorker(log, s.renderFrame)
	s.log = log
	return s, nil
}

func (s *VNCSink) Open(params decoder.CodecParams) error {
	go s.acceptLoop()
	go s.worker.run()
	return nil
}

func (s *VNCSink) Push(frame *decoder.Frame) error {
	s.worker.push(frame)
	return nil
}

func (s *VNCSink) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.handleClient(conn)
	}
}

// handleClient performs the RFB 3.8 handshake: ProtocolVersion,
// no-security handshake, ClientInit, then a single ServerInit carrying
// the current frame geometry (or 0x0 until the first frame arrives).
func (s *VNCSink) handleClient(conn net.Conn) {
	if _, err := conn.Write([]byte("RFB 003.008\n")); err != nil {
		conn.Close()
		return
	}
	clientVersion := make([]byte, 12)
	if _, err := conn.Read(clientVersion); err != nil {
		conn.Close()
		return
	}

	// Security types: offer exactly one, "None" (type 1).
	if _, err := conn.Write([]byte{1, 1}); err != nil {
		conn.Close()
		return
	}
	secChoice := make([]byte, 1)
	if _, err := conn.Read(secChoice); err != nil {
		conn.Close()
		return
	}
	// SecurityResult: OK.
	if err := binary.Write(conn, binary.BigEndian, uint32(0)); err != nil {
		conn.Close()
		return
	}

	clientInit := make([]byte, 1)
	if _, err := conn.Read(clientInit); err != nil {
		conn.Close()
		return
	}

	s.mu.Lock()
	w, h := s.width, s.height
	s.mu.Unlock()
	if err := s.writeServerInit(conn, w, h); err != nil {
		conn.Close()
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	// Discard further client messages (pointer/key events, encodings,
	// framebuffer update requests): this sink is push-only display
	// mirroring, not a remote-control surface (that is C12's job over
	// the scrcpy control channel, not VNC).
	go s.drainClient(conn)
}

func (s *VNCSink) drainClient(conn net.Conn) {
	buf := make([]byte, 4096)
	for {
		if _, err := conn.Read(buf); err != nil {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
			return
		}
	}
}

func (s *VNCSink) writeServerInit(conn net.Conn, w, h int) error {
	if err := binary.Write(conn, binary.BigEndian, uint16(w)); err != nil {
		return err
	}
	if err := binary.Write(conn, binary.BigEndian, uint16(h)); err != nil {
		return err
	}
	// PIXEL_FORMAT: 32 bpp, depth 24, big-endian=0, true-color=1,
	// max R/G/B = 255, shifts 16/8/0 (standard RGBX32), 3 bytes padding.
	pixelFormat := []byte{32, 24, 0, 1, 0, 255, 0, 255, 0, 255, 16, 8, 0, 0, 0, 0}
	if _, err := conn.Write(pixelFormat); err != nil {
		return err
	}
	nameBytes := []byte(s.name)
	if err := binary.Write(conn, binary.BigEndian, uint32(len(nameBytes))); err != nil {
		return err
	}
	_, err := conn.Write(nameBytes)
	return err
}

func (s *VNCSink) renderFrame(frame *decoder.Frame) error {
	if frame.AV == nil {
		return nil
	}
	w, h := frame.AV.Width(), frame.AV.Height()
	s.mu.Lock()
	s.width, s.height = w, h
	clients := make([]net.Conn, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()
	if len(clients) == 0 {
		return nil
	}

	rgba := yuvToRGBX(frame.AV, w, h)
	update := encodeRawFramebufferUpdate(w, h, rgba)

	for _, c := range clients {
		if _, err := c.Write(update); err != nil {
			s.mu.Lock()
			delete(s.clients, c)
			s.mu.Unlock()
			c.Close()
		}
	}
	return nil
}

// encodeRawFramebufferUpdate wraps pixel data in an RFB
// FramebufferUpdate message with a single raw-encoded rectangle covering
// the whole frame.
func encodeRawFramebufferUpdate(w, h int, rgba []byte) []byte {
	header := make([]byte, 4)
	header[0] = 0 // message-type: FramebufferUpdate
	binary.BigEndian.PutUint16(header[2:4], 1) // number-of-rectangles

	rect := make([]byte, 12)
	binary.BigEndian.PutUint16(rect[0:2], 0)        // x
	binary.BigEndian.PutUint16(rect[2:4], 0)        // y
	binary.BigEndian.PutUint16(rect[4:6], uint16(w))
	binary.BigEndian.PutUint16(rect[6:8], uint16(h))
	binary.BigEndian.PutUint32(rect[8:12], 0) // encoding-type: Raw

	out := make([]byte, 0, len(header)+len(rect)+len(rgba))
	out = append(out, header...)
	out = append(out, rect...)
	out = append(out, rgba...)
	return out
}

func (s *VNCSink) Close() {
	s.worker.stop()
	s.listener.Close()
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.Close()
		delete(s.clients, c)
	}
}
