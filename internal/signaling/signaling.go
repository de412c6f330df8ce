// Package signaling implements the HTTP offer/answer exchange the
// WebRTC sink needs, grounded on
// _examples/cowby123-scrcpy/goapp/handlers_gin.go's handleOfferGin:
// gin.Engine, a POST /offer handler that registers an H.264 codec on a
// fresh MediaEngine, builds a PeerConnection, and waits for ICE
// gathering to complete before replying with the answer SDP as JSON.
package signaling

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pion/webrtc/v4"

	"github.com/cowby123/scrcpy-go/internal/logging"
	"github.com/cowby123/scrcpy-go/internal/videosink"
)

// Server exposes the WebRTC signaling endpoint over HTTP.
type Server struct {
	engine *gin.Engine
	sink   *videosink.WebRTCSink
	log    *logging.Logger
}

func NewServer(sink *videosink.WebRTCSink, log *logging.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{engine: gin.New(), sink: sink, log: log}
	s.engine.Use(gin.Recovery())
	s.engine.POST("/offer", s.handleOffer)
	return s
}

// Handler returns the http.Handler to mount on an http.Server, so the
// caller owns listen/serve/shutdown (mirrors the teacher keeping gin's
// engine separate from the http.Server that runs it).
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleOffer(c *gin.Context) {
	var offer webrtc.SessionDescription
	if err := c.ShouldBindJSON(&offer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offer"})
		return
	}

	m := webrtc.MediaEngine{}
	if err := m.RegisterCodec(webrtc.RTPCodecParameters{
		RTPCodecCapability: webrtc.RTPCodecCapability{
			MimeType:    webrtc.MimeTypeH264,
			ClockRate:   90000,
			SDPFmtpLine: "level-asymmetry-allowed=1;packetization-mode=1;profile-level-id=42e01f",
			RTCPFeedback: []webrtc.RTCPFeedback{
				{Type: "nack"}, {Type: "nack", Parameter: "pli"}, {Type: "ccm", Parameter: "fir"},
			},
		},
		PayloadType: 96,
	}, webrtc.RTPCodecTypeVideo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "register codec failed"})
		return
	}

	api := webrtc.NewAPI(webrtc.WithMediaEngine(&m))
	pc, err := api.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "peer connection failed"})
		return
	}

	id := uuid.NewString()
	if _, err := s.sink.AddPeer(id, pc); err != nil {
		_ = pc.Close()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "add track failed"})
		return
	}

	pc.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		if state == webrtc.PeerConnectionStateFailed || state == webrtc.PeerConnectionStateClosed {
			s.sink.RemovePeer(id)
		}
	})

	if err := pc.SetRemoteDescription(offer); err != nil {
		s.sink.RemovePeer(id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "set remote description failed"})
		return
	}

	answer, err := pc.CreateAnswer(nil)
	if err != nil {
		s.sink.RemovePeer(id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create answer failed"})
		return
	}
	if err := pc.SetLocalDescription(answer); err != nil {
		s.sink.RemovePeer(id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "set local description failed"})
		return
	}

	<-webrtc.GatheringCompletePromise(pc)

	c.JSON(http.StatusOK, pc.LocalDescription())
}
